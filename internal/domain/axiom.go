package domain

import "fmt"

// Axiom - одна инструкция программы заклинания. Закрытый sum-type:
// набор инструкций фиксирован на этапе компиляции, диспетчеризация
// делается исчерпывающим type switch в интерпретаторе.
//
// Три роли:
//   - Form: добавляет позиции в список целей кадра;
//   - Function: читает список целей и излучает мировые события;
//   - Mutator: меняет поток управления кадра.
type Axiom interface {
	axiom()
	fmt.Stringer
}

// --- FORMS ---

// Ego целится в клетку самого кастера.
type Ego struct{}

// Plus целится в клетку кастера и 4 соседние.
type Plus struct{}

// Touch целится в клетку прямо перед кастером (по его моментуму).
type Touch struct{}

// MomentumBeam - луч в направлении моментума кастера.
type MomentumBeam struct{}

// PlusBeam - лучи во все 4 кардинальных направления.
type PlusBeam struct{}

// XBeam - лучи во все 4 диагональных направления.
type XBeam struct{}

// Halo - кольцо радиуса Radius вокруг кастера.
type Halo struct {
	Radius int
}

// Spread добавляет к каждой текущей цели 4 соседние клетки.
type Spread struct{}

// --- FUNCTIONS ---

// Dash - каждое существо на целевой клетке скользит по моментуму
// кастера до MaxDistance клеток, останавливаясь за клетку до первой
// непроходимой (неосязаемые игнорируют препятствия).
type Dash struct {
	MaxDistance int
}

// SummonCreature призывает существо вида Species на каждой цели.
type SummonCreature struct {
	Species string
}

// RepressionDamage наносит Damage урона каждому существу на целях.
type RepressionDamage struct {
	Damage int
}

// HealOrHarm меняет здоровье на Amount (плюс лечит, минус ранит).
type HealOrHarm struct {
	Amount int
}

// RandomCasterTeleport телепортирует кастера на случайную проходимую цель.
type RandomCasterTeleport struct{}

// ApplyStatus накладывает статус-эффект на существ на целях.
type ApplyStatus struct {
	Effect   StatusKind
	Potency  int
	Duration EffectDuration
}

// Transform меняет вид каждого существа на целях на Species.
type Transform struct {
	Species string
}

// PlaceStepTrap ставит ловушку на каждой цели. Остаток программы
// после этой инструкции становится зарядом ловушки и кастуется,
// когда на нее наступают. Текущий кадр завершается.
type PlaceStepTrap struct{}

// --- MUTATORS ---

// PurgeTargets очищает список целей.
type PurgeTargets struct{}

// KeepOneRandom оставляет одну случайную цель, отбрасывая остальные.
type KeepOneRandom struct{}

// LoopBack удаляет сам себя из копии программы кадра и откатывает
// счетчик инструкций на Steps назад (не ниже 0). Каждое вхождение
// срабатывает максимум один раз за каст.
type LoopBack struct {
	Steps int
}

// ForceCast передает остаток программы каждому существу на целях
// как новый каст от его имени и завершает текущий кадр.
type ForceCast struct{}

// WhenDealingDamage устанавливает остаток программы как триггер
// "при нанесении урона" и завершает кадр.
type WhenDealingDamage struct{}

// WhenTakingDamage устанавливает остаток программы как триггер
// "при получении урона" и завершает кадр.
type WhenTakingDamage struct{}

// WhenMoved устанавливает остаток программы как триггер
// "при перемещении" и завершает кадр.
type WhenMoved struct{}

func (Ego) axiom()                  {}
func (Plus) axiom()                 {}
func (Touch) axiom()                {}
func (MomentumBeam) axiom()         {}
func (PlusBeam) axiom()             {}
func (XBeam) axiom()                {}
func (Halo) axiom()                 {}
func (Spread) axiom()               {}
func (Dash) axiom()                 {}
func (SummonCreature) axiom()       {}
func (RepressionDamage) axiom()     {}
func (HealOrHarm) axiom()           {}
func (RandomCasterTeleport) axiom() {}
func (ApplyStatus) axiom()          {}
func (Transform) axiom()            {}
func (PlaceStepTrap) axiom()        {}
func (PurgeTargets) axiom()         {}
func (KeepOneRandom) axiom()        {}
func (LoopBack) axiom()             {}
func (ForceCast) axiom()            {}
func (WhenDealingDamage) axiom()    {}
func (WhenTakingDamage) axiom()     {}
func (WhenMoved) axiom()            {}

func (Ego) String() string                  { return "EGO" }
func (Plus) String() string                 { return "PLUS" }
func (Touch) String() string                { return "TOUCH" }
func (MomentumBeam) String() string         { return "MOMENTUM_BEAM" }
func (PlusBeam) String() string             { return "PLUS_BEAM" }
func (XBeam) String() string                { return "X_BEAM" }
func (a Halo) String() string               { return fmt.Sprintf("HALO(%d)", a.Radius) }
func (Spread) String() string               { return "SPREAD" }
func (a Dash) String() string               { return fmt.Sprintf("DASH(%d)", a.MaxDistance) }
func (a SummonCreature) String() string     { return "SUMMON(" + a.Species + ")" }
func (a RepressionDamage) String() string   { return fmt.Sprintf("REPRESSION_DAMAGE(%d)", a.Damage) }
func (a HealOrHarm) String() string         { return fmt.Sprintf("HEAL_OR_HARM(%d)", a.Amount) }
func (RandomCasterTeleport) String() string { return "RANDOM_CASTER_TELEPORT" }
func (a ApplyStatus) String() string        { return "STATUS(" + a.Effect.String() + ")" }
func (a Transform) String() string          { return "TRANSFORM(" + a.Species + ")" }
func (PlaceStepTrap) String() string        { return "PLACE_STEP_TRAP" }
func (PurgeTargets) String() string         { return "PURGE_TARGETS" }
func (KeepOneRandom) String() string        { return "KEEP_ONE_RANDOM" }
func (a LoopBack) String() string           { return fmt.Sprintf("LOOP_BACK(%d)", a.Steps) }
func (ForceCast) String() string            { return "FORCE_CAST" }
func (WhenDealingDamage) String() string    { return "WHEN_DEALING_DAMAGE" }
func (WhenTakingDamage) String() string     { return "WHEN_TAKING_DAMAGE" }
func (WhenMoved) String() string            { return "WHEN_MOVED" }

// CloneAxioms копирует программу. Кадр интерпретатора мутирует свою
// копию (LoopBack удаляет инструкции), оригинал в книге заклинаний
// трогать нельзя.
func CloneAxioms(axioms []Axiom) []Axiom {
	out := make([]Axiom, len(axioms))
	copy(out, axioms)
	return out
}
