package crafting

import (
	"math/rand"
	"sort"

	"synapse-server/internal/domain"
)

// CraftedSpellIcon - иконка скрафченных заклинаний.
const CraftedSpellIcon = 160

// MostCommonSoul возвращает самую многочисленную касту набора.
// Ничья разрешается случайно (детерминированно при заданном rng).
func MostCommonSoul(souls []domain.Soul, rng *rand.Rand) (domain.Soul, bool) {
	if len(souls) == 0 {
		return domain.SoulEmpty, false
	}

	counts := make(map[domain.Soul]int)
	for _, soul := range souls {
		counts[soul]++
	}

	max := 0
	for _, n := range counts {
		if n > max {
			max = n
		}
	}

	var candidates []domain.Soul
	for soul, n := range counts {
		if n == max {
			candidates = append(candidates, soul)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

	return candidates[rng.Intn(len(candidates))], true
}

// BuildSpell собирает заклинание из найденных рецептов: аксиомы в
// порядке находок, каста - по самой многочисленной душе. Пустые
// заклинания не создаются.
func BuildSpell(matches []Match, souls []domain.Soul, rng *rand.Rand) (domain.Spell, bool) {
	if len(matches) == 0 {
		return domain.Spell{}, false
	}
	caste, ok := MostCommonSoul(souls, rng)
	if !ok {
		return domain.Spell{}, false
	}

	axioms := make([]domain.Axiom, 0, len(matches))
	for _, m := range matches {
		axioms = append(axioms, m.Axiom)
	}
	return domain.NewSpell(caste, CraftedSpellIcon, axioms), true
}
