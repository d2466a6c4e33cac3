package domain

// SpeciesFlags - врожденный набор способностей вида. Пересчитывается
// целиком при создании и при любой смене вида (Transform), а не
// точечными вставками/удалениями.
type SpeciesFlags struct {
	Intangible bool `json:"intangible,omitempty"` // не занимает клетку на карте
	MeleeProof bool `json:"meleeProof,omitempty"` // иммунитет к ближнему бою
	SpellProof bool `json:"spellProof,omitempty"`  // иммунитет к заклинаниям
	Pushable   bool `json:"pushable,omitempty"`   // можно толкать (ящики)
	Door       bool `json:"door,omitempty"`       // открывается при столкновении
	Immobile   bool `json:"immobile,omitempty"`   // не перемещается
}

// SpeciesDef - описание вида, загружается из Lua-контента.
type SpeciesDef struct {
	Name           string
	Glyph          rune
	MaxHP          int
	Soul           Soul
	Flags          SpeciesFlags
	Behavior       string // "player", "hunt", "wander", "spawner", "none"
	ActionsPerTurn int    // сколько действий за ход (минимум 1)
	WaitTurns      int    // медлительность: действует раз в WaitTurns+1 ходов
	Spellbook      []Spell
	Contingencies  map[TriggerKind][]Axiom
}

// Поведения видов.
const (
	BehaviorPlayer  = "player"
	BehaviorHunt    = "hunt"
	BehaviorWander  = "wander"
	BehaviorSpawner = "spawner"
	BehaviorNone    = "none"
)

// SoulWheelSlots - размер колеса душ игрока.
const SoulWheelSlots = 8

// SoulWheel - колесо душ: слоты с ресурсами для каста и стопка добора.
type SoulWheel struct {
	Slots [SoulWheelSlots]Soul
	Pile  []Soul
}

// Draw заполняет первый пустой слот из стопки.
// false - колесо полно или стопка пуста.
func (w *SoulWheel) Draw() (Soul, bool) {
	if len(w.Pile) == 0 {
		return SoulEmpty, false
	}
	for i := range w.Slots {
		if w.Slots[i] == SoulEmpty {
			soul := w.Pile[0]
			w.Pile = w.Pile[1:]
			w.Slots[i] = soul
			return soul, true
		}
	}
	return SoulEmpty, false
}

// Spend забирает душу из слота, возвращая ее в конец стопки.
// false - слот пуст.
func (w *SoulWheel) Spend(index int) (Soul, bool) {
	if index < 0 || index >= SoulWheelSlots {
		return SoulEmpty, false
	}
	soul := w.Slots[index]
	if soul == SoulEmpty {
		return SoulEmpty, false
	}
	w.Slots[index] = SoulEmpty
	w.Pile = append(w.Pile, soul)
	return soul, true
}

// Creature - существо мира. Все данные принадлежат World;
// Map держит только слабую ссылку позиция -> ID.
type Creature struct {
	ID       EntityID  `json:"id"`
	Species  string    `json:"species"`
	Pos      Position  `json:"pos"`
	Momentum OrdDir    `json:"momentum"`
	HP       int       `json:"hp"`
	MaxHP    int       `json:"maxHp"`
	Soul     Soul      `json:"soul"`
	Flags    SpeciesFlags `json:"flags"`
	Statuses StatusSet `json:"-"`

	Behavior       string `json:"-"`
	ActionsPerTurn int    `json:"-"`
	WaitTurns      int    `json:"-"`

	Spellbook *Spellbook `json:"-"`
	Library   []Spell    `json:"-"` // только у игрока: скрафченные спеллы
	Wheel     *SoulWheel `json:"-"` // только у игрока

	// Контингенции: программы, кастуемые автоматически по триггеру.
	Contingencies map[TriggerKind][][]Axiom `json:"-"`

	// Слабая ссылка на призвавшего (NilEntity, если никто).
	Summoner EntityID `json:"-"`

	// Двухфазное удаление: помечено здесь, зачищается после
	// затишья стека заклинаний.
	Doomed bool `json:"-"`

	IsPlayer bool `json:"isPlayer"`
}

// Tangible - занимает ли существо клетку в индексе коллизий.
// Учитывает и врожденную неосязаемость, и статус.
func (c *Creature) Tangible() bool {
	return !c.Flags.Intangible && !c.Statuses.Has(StatusIntangible)
}

// Immobile - запрещено ли существу перемещаться.
func (c *Creature) Immobile() bool {
	return c.Flags.Immobile || c.Statuses.Has(StatusImmobile)
}

// ApplySpecies применяет вид к существу: чистая функция
// "вид -> набор способностей", одинаковая для создания и Transform.
func (c *Creature) ApplySpecies(def *SpeciesDef) {
	c.Species = def.Name
	c.Flags = def.Flags
	c.Behavior = def.Behavior
	c.ActionsPerTurn = def.ActionsPerTurn
	if c.ActionsPerTurn < 1 {
		c.ActionsPerTurn = 1
	}
	c.WaitTurns = def.WaitTurns
	c.MaxHP = def.MaxHP
	if c.HP > c.MaxHP || c.HP == 0 {
		c.HP = c.MaxHP
	}
	if c.Soul == SoulEmpty {
		c.Soul = def.Soul
	}
	if c.Spellbook == nil {
		c.Spellbook = NewSpellbook()
	}
	for _, spell := range def.Spellbook {
		c.Spellbook.Equip(spell)
	}
	for trigger, program := range def.Contingencies {
		c.InstallContingency(trigger, CloneAxioms(program))
	}
}

// InstallContingency добавляет программу под триггер.
func (c *Creature) InstallContingency(trigger TriggerKind, program []Axiom) {
	if len(program) == 0 {
		return
	}
	if c.Contingencies == nil {
		c.Contingencies = make(map[TriggerKind][][]Axiom)
	}
	c.Contingencies[trigger] = append(c.Contingencies[trigger], program)
}

// TriggeredPrograms возвращает программы, подвешенные на триггер.
func (c *Creature) TriggeredPrograms(trigger TriggerKind) [][]Axiom {
	if c.Contingencies == nil {
		return nil
	}
	return c.Contingencies[trigger]
}
