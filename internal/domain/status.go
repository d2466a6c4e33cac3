package domain

import "strings"

// StatusKind - вид статус-эффекта.
type StatusKind uint8

const (
	StatusUnknown StatusKind = iota
	StatusInvincible
	StatusStab
	StatusHaste
	StatusSlow
	StatusIntangible
	StatusImmobile
)

var statusStringToCmd = map[string]StatusKind{
	"INVINCIBLE": StatusInvincible,
	"STAB":       StatusStab,
	"HASTE":      StatusHaste,
	"SLOW":       StatusSlow,
	"INTANGIBLE": StatusIntangible,
	"IMMOBILE":   StatusImmobile,
}

var statusCmdToString = map[StatusKind]string{
	StatusInvincible: "INVINCIBLE",
	StatusStab:       "STAB",
	StatusHaste:      "HASTE",
	StatusSlow:       "SLOW",
	StatusIntangible: "INTANGIBLE",
	StatusImmobile:   "IMMOBILE",
}

// ParseStatus конвертирует строку контента в StatusKind.
func ParseStatus(s string) (StatusKind, bool) {
	val, ok := statusStringToCmd[strings.ToUpper(s)]
	return val, ok
}

func (k StatusKind) String() string {
	if val, ok := statusCmdToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// EffectDuration - длительность эффекта: бесконечная или N ходов.
type EffectDuration struct {
	Infinite bool `json:"infinite,omitempty"`
	Stacks   int  `json:"stacks,omitempty"`
}

// Finite создает конечную длительность.
func Finite(stacks int) EffectDuration {
	return EffectDuration{Stacks: stacks}
}

// Infinite создает бесконечную длительность.
func Infinite() EffectDuration {
	return EffectDuration{Infinite: true}
}

// StatusInstance - один активный эффект на существе.
type StatusInstance struct {
	Potency  int            `json:"potency"`
	Duration EffectDuration `json:"duration"`
}

// StatusSet - набор активных эффектов существа.
type StatusSet map[StatusKind]*StatusInstance

func NewStatusSet() StatusSet {
	return make(StatusSet)
}

// Has - активен ли эффект.
func (s StatusSet) Has(kind StatusKind) bool {
	_, ok := s[kind]
	return ok
}

// Potency возвращает силу эффекта (0, если эффекта нет).
func (s StatusSet) Potency(kind StatusKind) int {
	if inst, ok := s[kind]; ok {
		return inst.Potency
	}
	return 0
}

// Apply накладывает эффект. Более сильный (или равный) эффект
// перезаписывает существующий; более слабый лишь обновляет длительность.
func (s StatusSet) Apply(kind StatusKind, potency int, duration EffectDuration) {
	existing, ok := s[kind]
	if !ok || potency >= existing.Potency {
		s[kind] = &StatusInstance{Potency: potency, Duration: duration}
		return
	}
	existing.Duration = duration
}

// Remove снимает эффект.
func (s StatusSet) Remove(kind StatusKind) {
	delete(s, kind)
}

// Tick уменьшает длительность всех конечных эффектов на 1 и возвращает
// список эффектов, истекших на этом ходу.
func (s StatusSet) Tick() []StatusKind {
	var expired []StatusKind
	for kind, inst := range s {
		if inst.Duration.Infinite {
			continue
		}
		inst.Duration.Stacks--
		if inst.Duration.Stacks <= 0 {
			expired = append(expired, kind)
		}
	}
	for _, kind := range expired {
		delete(s, kind)
	}
	return expired
}
