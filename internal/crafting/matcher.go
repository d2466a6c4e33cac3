package crafting

import (
	"sort"

	"synapse-server/internal/domain"
)

// Entry - рецепт и аксиома, которую он дает.
type Entry struct {
	Recipe Recipe
	Axiom  domain.Axiom
}

// Match - найденный рецепт: занятые позиции и полученная аксиома.
type Match struct {
	Positions []domain.Position
	Axiom     domain.Axiom
}

// Matcher ищет рецепты в наборе размещенных душ. Рецепты
// отсортированы по убыванию числа ингредиентов: крупные и
// специфичные паттерны забирают души первыми.
type Matcher struct {
	sorted []Entry
}

func NewMatcher(entries []Entry) *Matcher {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Recipe.Souls) > len(sorted[j].Recipe.Souls)
	})
	return &Matcher{sorted: sorted}
}

// FindAll находит все рецепты в ingredients. Обход душ идет сверху
// вниз, в ряду слева направо; каждая душа участвует максимум в одном
// рецепте.
func (m *Matcher) FindAll(ingredients map[domain.Position]domain.Soul) []Match {
	var matches []Match
	used := make(map[domain.Position]bool)

	positions := make([]domain.Position, 0, len(ingredients))
	for pos := range ingredients {
		positions = append(positions, pos)
	}
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].Y != positions[j].Y {
			return positions[i].Y > positions[j].Y
		}
		return positions[i].X < positions[j].X
	})

	cageW, cageH := cageDimensions(positions)

	for _, pos := range positions {
		if used[pos] {
			continue
		}
		soul := ingredients[pos]

		for _, entry := range m.sorted {
			if entry.Recipe.SoulType != soul {
				continue
			}
			// Рецепты крупнее клетки не рассматриваются.
			if entry.Recipe.Dimensions.X > cageW || entry.Recipe.Dimensions.Y > cageH {
				continue
			}

			matched := true
			var claimed []domain.Position
			for _, rel := range entry.Recipe.Souls {
				abs := domain.NewPosition(pos.X+rel.X, pos.Y+rel.Y)
				// Душа не та или уже занята другим рецептом.
				if used[abs] || ingredients[abs] != soul {
					matched = false
					break
				}
				claimed = append(claimed, abs)
			}

			if matched {
				matches = append(matches, Match{Positions: claimed, Axiom: entry.Axiom})
				for _, p := range claimed {
					used[p] = true
				}
				break
			}
		}
	}

	return matches
}

func cageDimensions(positions []domain.Position) (int, int) {
	if len(positions) == 0 {
		return 0, 0
	}
	minX, maxX := positions[0].X, positions[0].X
	minY, maxY := positions[0].Y, positions[0].Y
	for _, p := range positions[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return maxX - minX + 1, maxY - minY + 1
}
