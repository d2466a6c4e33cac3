package domain

// Intent - внутреннее событие симуляции. Интенты копятся в очередях
// фазы разрешения и применяются в строго фиксированном порядке шагов.
type Intent interface {
	intent()
}

// CreatureStep - намерение шагнуть в направлении (вход из Action-фазы).
type CreatureStep struct {
	Entity EntityID
	Dir    OrdDir
}

// TeleportEntity - намерение переместить существо на клетку.
type TeleportEntity struct {
	Entity EntityID
	Dest   Position
	Slide  bool // true - презентация ведет плавную анимацию
}

// CreatureCollision - осязаемое существо преградило путь.
// Возникает только если одна из сторон - игрок.
type CreatureCollision struct {
	Culprit  EntityID
	Collided EntityID
	Dir      OrdDir
}

// AlterMomentum - смена направления взгляда.
type AlterMomentum struct {
	Entity EntityID
	Dir    OrdDir
}

// HarmCreature - изменение здоровья. Damage > 0 ранит, < 0 лечит.
type HarmCreature struct {
	Victim  EntityID
	Culprit EntityID
	Damage  int
}

// OpenDoor - открыть дверь (существо становится неосязаемым).
type OpenDoor struct {
	Entity EntityID
}

// ApplyStatusIntent - наложить статус-эффект.
type ApplyStatusIntent struct {
	Entity   EntityID
	Effect   StatusKind
	Potency  int
	Duration EffectDuration
}

// TransformCreature - сменить вид существа.
type TransformCreature struct {
	Entity  EntityID
	Species string
}

// SummonIntent - призвать существо вида Species на клетку.
// StepProgram, если задана, вешается на призванного как
// контингенция "когда наступили" (ловушки).
type SummonIntent struct {
	Species     string
	Pos         Position
	Summoner    EntityID
	StepProgram []Axiom
}

// CastSpellIntent - запрос каста заклинания.
type CastSpellIntent struct {
	Caster EntityID
	Spell  Spell
}

// InstallContingencyIntent - подвесить программу на триггер существа.
type InstallContingencyIntent struct {
	Entity  EntityID
	Trigger TriggerKind
	Program []Axiom
}

// PlaceMagicVfx - визуальный эффект для презентационного слоя.
type PlaceMagicVfx struct {
	Positions  []Position
	Sequence   string // "simultaneous" | "sequential"
	Kind       string
	Decay      float64
	StartDelay float64
}

// ClearMagicVfx - убрать подвешенные визуальные эффекты.
type ClearMagicVfx struct{}

func (CreatureStep) intent()             {}
func (TeleportEntity) intent()           {}
func (CreatureCollision) intent()        {}
func (AlterMomentum) intent()            {}
func (HarmCreature) intent()             {}
func (OpenDoor) intent()                 {}
func (ApplyStatusIntent) intent()        {}
func (TransformCreature) intent()        {}
func (SummonIntent) intent()             {}
func (CastSpellIntent) intent()          {}
func (InstallContingencyIntent) intent() {}
func (PlaceMagicVfx) intent()            {}
func (ClearMagicVfx) intent()            {}
