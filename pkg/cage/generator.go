package cage

import (
	"math/rand"

	"synapse-server/internal/domain"
)

// Параметры генерируемых пристроек
const (
	annexMinSize = 4
	annexMaxSize = 7
)

// Generate выбирает шаблон по rng и пристраивает к нему случайную
// комнату-пристройку за случайным шлюзом. Детерминирован при
// фиксированном seed.
func Generate(rng *rand.Rand) ([]Spawn, error) {
	tmpl := Catalog[rng.Intn(len(Catalog))]
	spawns, err := tmpl.Parse()
	if err != nil {
		return nil, err
	}

	spawns = append(spawns, generateAnnex(rng, tmpl)...)
	return spawns, nil
}

// generateAnnex строит комнату справа от клетки: прямоугольник стен
// со шлюзом в сторону арены и охотником внутри.
func generateAnnex(rng *rand.Rand, tmpl Template) []Spawn {
	width := annexMinSize + rng.Intn(annexMaxSize-annexMinSize+1)
	height := annexMinSize + rng.Intn(annexMaxSize-annexMinSize+1)

	baseX := 0
	for _, row := range tmpl.Rows {
		if len(row) > baseX {
			baseX = len(row)
		}
	}
	baseY := rng.Intn(len(tmpl.Rows) - height + 1)

	var spawns []Spawn
	doorY := baseY + 1 + rng.Intn(height-2)
	for y := baseY; y < baseY+height; y++ {
		for x := baseX; x < baseX+width; x++ {
			onEdge := y == baseY || y == baseY+height-1 || x == baseX+width-1
			switch {
			case x == baseX && y == doorY:
				spawns = append(spawns, Spawn{Species: "airlock", Pos: domain.NewPosition(x, y)})
			case x == baseX || onEdge:
				spawns = append(spawns, Spawn{Species: "wall", Pos: domain.NewPosition(x, y)})
			}
		}
	}

	spawns = append(spawns, Spawn{
		Species: "hunter",
		Pos:     domain.NewPosition(baseX+width/2, baseY+height/2),
	})
	return spawns
}
