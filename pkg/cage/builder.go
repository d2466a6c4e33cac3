package cage

import (
	"fmt"

	"synapse-server/internal/domain"
)

// Template - ASCII-раскладка клетки.
type Template struct {
	Name string
	Rows []string
}

// Spawn - одно существо раскладки.
type Spawn struct {
	Species string
	Pos     domain.Position
}

// Parse переводит раскладку в список призывов. Строки шаблона идут
// сверху вниз, мир считает Y вверх, поэтому строки переворачиваются.
func (t Template) Parse() ([]Spawn, error) {
	var spawns []Spawn
	height := len(t.Rows)

	for rowIdx, row := range t.Rows {
		y := height - 1 - rowIdx
		for x := 0; x < len(row); x++ {
			ch := row[x]
			if ch == '.' || ch == ' ' {
				continue
			}
			species, ok := GlyphSpecies[ch]
			if !ok {
				return nil, fmt.Errorf("cage %s: unknown glyph %q at (%d,%d)", t.Name, ch, x, y)
			}
			spawns = append(spawns, Spawn{
				Species: species,
				Pos:     domain.NewPosition(x, y),
			})
		}
	}
	return spawns, nil
}
