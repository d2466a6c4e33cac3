package crafting

import (
	"fmt"
	"strings"

	"synapse-server/internal/domain"
)

// Recipe - паттерн размещения душ одной касты, дающий аксиому.
// Позиции хранятся относительно первой встреченной души (якоря),
// ось Y перевернута из порядка чтения в координаты сетки (Y вверх).
type Recipe struct {
	Dimensions domain.Position
	Souls      []domain.Position
	SoulType   domain.Soul
}

// ParseRecipe разбирает ASCII-паттерн вида "F\nF". Буква задает касту,
// '.' - пустая клетка. Все буквы паттерна должны быть одной касты.
func ParseRecipe(pattern string) (Recipe, error) {
	lines := strings.Split(pattern, "\n")
	height := len(lines)
	width := 0
	if height > 0 {
		width = len(lines[0])
	}

	var positions []domain.Position
	var soul domain.Soul
	var anchor domain.Position
	found := false

	for y, line := range lines {
		for x := 0; x < len(line); x++ {
			ch := line[x]
			if ch == '.' || ch == ' ' {
				continue
			}
			parsed, ok := domain.SoulFromLetter(ch)
			if !ok {
				return Recipe{}, fmt.Errorf("invalid crafting pattern char %q", ch)
			}
			if !found {
				soul = parsed
				anchor = domain.NewPosition(x, y)
				found = true
			} else if parsed != soul {
				return Recipe{}, fmt.Errorf("mixed souls in pattern: %v and %v", soul, parsed)
			}
			positions = append(positions, domain.NewPosition(
				x-anchor.X,
				-(y - anchor.Y),
			))
		}
	}

	if !found {
		return Recipe{}, fmt.Errorf("empty crafting pattern")
	}
	return Recipe{
		Dimensions: domain.NewPosition(width, height),
		Souls:      positions,
		SoulType:   soul,
	}, nil
}
