package content

import (
	"fmt"
	"sort"

	"synapse-server/internal/crafting"
	"synapse-server/internal/domain"
)

// Defs - неизменяемый скомпилированный контент сессии: виды существ,
// рецепты крафта, стартовая стопка душ игрока. Lua VM выбрасывается
// после загрузки.
type Defs struct {
	Species map[string]*domain.SpeciesDef
	Recipes []crafting.Entry

	// PlayerPile - стартовая стопка душ игрока.
	PlayerPile []domain.Soul

	// MaxActionsPerTurn - максимум действий за ход среди всех видов.
	// Ограничивает цикл скоростных уровней NPC.
	MaxActionsPerTurn int

	kinds map[string]uint16
}

// SpeciesDef возвращает описание вида.
func (d *Defs) SpeciesDef(name string) (*domain.SpeciesDef, error) {
	def, ok := d.Species[name]
	if !ok {
		return nil, fmt.Errorf("unknown species %q", name)
	}
	return def, nil
}

// Kind возвращает стабильный числовой индекс вида для упаковки
// EntityID (виды нумеруются по алфавиту на момент компиляции).
func (d *Defs) Kind(name string) uint16 {
	return d.kinds[name]
}

// finalize считает производные данные после компиляции.
func (d *Defs) finalize() {
	names := make([]string, 0, len(d.Species))
	for name := range d.Species {
		names = append(names, name)
	}
	sort.Strings(names)

	d.kinds = make(map[string]uint16, len(names))
	for i, name := range names {
		d.kinds[name] = uint16(i + 1)
	}

	d.MaxActionsPerTurn = 1
	for _, def := range d.Species {
		if def.ActionsPerTurn > d.MaxActionsPerTurn {
			d.MaxActionsPerTurn = def.ActionsPerTurn
		}
	}
}
