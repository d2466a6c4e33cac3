package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Spell - упорядоченная программа из аксиом плюс метаданные.
// Неизменяем после создания: исполняющий кадр работает со своей
// копией списка инструкций.
type Spell struct {
	ID          uuid.UUID `json:"id"`
	Caste       Soul      `json:"caste"`
	Icon        int       `json:"icon"`
	Description string    `json:"description,omitempty"`
	Axioms      []Axiom   `json:"-"`
}

// NewSpell создает заклинание со свежим ID.
func NewSpell(caste Soul, icon int, axioms []Axiom) Spell {
	return Spell{
		ID:     uuid.New(),
		Caste:  caste,
		Icon:   icon,
		Axioms: axioms,
	}
}

// Spellbook - экипированные заклинания существа, по одному на касту.
type Spellbook struct {
	Spells map[Soul]Spell
}

func NewSpellbook() *Spellbook {
	return &Spellbook{Spells: make(map[Soul]Spell)}
}

// Equip кладет заклинание в слот его касты, возвращая вытесненное.
func (b *Spellbook) Equip(spell Spell) (Spell, bool) {
	old, had := b.Spells[spell.Caste]
	b.Spells[spell.Caste] = spell
	return old, had
}

// Get возвращает заклинание касты.
func (b *Spellbook) Get(caste Soul) (Spell, bool) {
	s, ok := b.Spells[caste]
	return s, ok
}

// TriggerKind - условие автокаста (контингенция).
type TriggerKind uint8

const (
	TriggerUnknown TriggerKind = iota
	OnMoved
	OnSteppedOn
	OnDealtDamage
	OnTakenDamage
	OnRemoved
)

var triggerStringToCmd = map[string]TriggerKind{
	"ON_MOVED":        OnMoved,
	"ON_STEPPED_ON":   OnSteppedOn,
	"ON_DEALT_DAMAGE": OnDealtDamage,
	"ON_TAKEN_DAMAGE": OnTakenDamage,
	"ON_REMOVED":      OnRemoved,
}

var triggerCmdToString = map[TriggerKind]string{
	OnMoved:       "ON_MOVED",
	OnSteppedOn:   "ON_STEPPED_ON",
	OnDealtDamage: "ON_DEALT_DAMAGE",
	OnTakenDamage: "ON_TAKEN_DAMAGE",
	OnRemoved:     "ON_REMOVED",
}

// ParseTrigger конвертирует строку контента в TriggerKind.
func ParseTrigger(s string) (TriggerKind, bool) {
	val, ok := triggerStringToCmd[strings.ToUpper(s)]
	return val, ok
}

func (t TriggerKind) String() string {
	if val, ok := triggerCmdToString[t]; ok {
		return val
	}
	return "UNKNOWN"
}
