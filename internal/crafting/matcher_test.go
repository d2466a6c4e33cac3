package crafting

import (
	"math/rand"
	"testing"

	"synapse-server/internal/domain"
)

func mustParse(t *testing.T, pattern string) Recipe {
	t.Helper()
	r, err := ParseRecipe(pattern)
	if err != nil {
		t.Fatalf("ParseRecipe(%q): %v", pattern, err)
	}
	return r
}

func TestParseRecipeRelativePositions(t *testing.T) {
	// Вертикальная пара: нижняя буква на строку ниже в порядке
	// чтения, то есть на единицу НИЖЕ по оси Y сетки.
	r := mustParse(t, "F\nF")
	if r.SoulType != domain.SoulFeral {
		t.Errorf("soul = %v, want FERAL", r.SoulType)
	}
	if r.Dimensions != domain.NewPosition(1, 2) {
		t.Errorf("dimensions = %v, want (1,2)", r.Dimensions)
	}
	if len(r.Souls) != 2 || r.Souls[0] != domain.NewPosition(0, 0) || r.Souls[1] != domain.NewPosition(0, -1) {
		t.Errorf("relative souls = %v", r.Souls)
	}

	// Якорь - первая буква в порядке чтения, не обязательно (0,0).
	r = mustParse(t, ".U\nU.")
	if r.Souls[0] != domain.NewPosition(0, 0) || r.Souls[1] != domain.NewPosition(-1, -1) {
		t.Errorf("diagonal souls = %v", r.Souls)
	}
}

func TestParseRecipeRejectsBadPatterns(t *testing.T) {
	if _, err := ParseRecipe("FV"); err == nil {
		t.Error("mixed-caste pattern must fail")
	}
	if _, err := ParseRecipe("..."); err == nil {
		t.Error("empty pattern must fail")
	}
	if _, err := ParseRecipe("FXF"); err == nil {
		t.Error("unknown letter must fail")
	}
}

func testEntries(t *testing.T) []Entry {
	t.Helper()
	return []Entry{
		{Recipe: mustParse(t, "F"), Axiom: domain.Ego{}},
		{Recipe: mustParse(t, "F\nF"), Axiom: domain.MomentumBeam{}},
		{Recipe: mustParse(t, "FF"), Axiom: domain.Dash{MaxDistance: 5}},
		{Recipe: mustParse(t, "U"), Axiom: domain.HealOrHarm{Amount: -1}},
	}
}

func TestMatcherPrefersLargerRecipes(t *testing.T) {
	m := NewMatcher(testEntries(t))

	// Одна вертикальная пара Feral: должен сработать MomentumBeam,
	// а не два одиночных Ego.
	ingredients := map[domain.Position]domain.Soul{
		domain.NewPosition(0, 1): domain.SoulFeral,
		domain.NewPosition(0, 0): domain.SoulFeral,
	}
	matches := m.FindAll(ingredients)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1: %+v", len(matches), matches)
	}
	if _, ok := matches[0].Axiom.(domain.MomentumBeam); !ok {
		t.Errorf("axiom = %v, want MOMENTUM_BEAM", matches[0].Axiom)
	}
}

func TestMatcherClaimsSoulsOnce(t *testing.T) {
	m := NewMatcher(testEntries(t))

	// Три души в столбик: пара уходит в MomentumBeam, остаток - Ego.
	ingredients := map[domain.Position]domain.Soul{
		domain.NewPosition(0, 2): domain.SoulFeral,
		domain.NewPosition(0, 1): domain.SoulFeral,
		domain.NewPosition(0, 0): domain.SoulFeral,
	}
	matches := m.FindAll(ingredients)
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2: %+v", len(matches), matches)
	}
	if _, ok := matches[0].Axiom.(domain.MomentumBeam); !ok {
		t.Errorf("first axiom = %v, want MOMENTUM_BEAM", matches[0].Axiom)
	}
	if _, ok := matches[1].Axiom.(domain.Ego); !ok {
		t.Errorf("second axiom = %v, want EGO", matches[1].Axiom)
	}

	total := 0
	seen := make(map[domain.Position]bool)
	for _, match := range matches {
		for _, p := range match.Positions {
			if seen[p] {
				t.Fatalf("position %v claimed twice", p)
			}
			seen[p] = true
			total++
		}
	}
	if total != 3 {
		t.Errorf("claimed %d souls, want 3", total)
	}
}

func TestBuildSpell(t *testing.T) {
	rng := rand.New(rand.NewSource(9))

	if _, ok := BuildSpell(nil, nil, rng); ok {
		t.Fatal("empty match list must not craft a spell")
	}

	matches := []Match{
		{Axiom: domain.MomentumBeam{}},
		{Axiom: domain.Dash{MaxDistance: 5}},
	}
	souls := []domain.Soul{domain.SoulFeral, domain.SoulFeral, domain.SoulVile}
	spell, ok := BuildSpell(matches, souls, rng)
	if !ok {
		t.Fatal("craft failed")
	}
	if spell.Caste != domain.SoulFeral {
		t.Errorf("caste = %v, want FERAL (most common)", spell.Caste)
	}
	if len(spell.Axioms) != 2 {
		t.Errorf("axioms = %v", spell.Axioms)
	}
	if spell.ID == (domain.Spell{}).ID {
		t.Error("crafted spell must carry a fresh id")
	}
}

func TestMostCommonSoulTieIsDeterministic(t *testing.T) {
	souls := []domain.Soul{domain.SoulFeral, domain.SoulVile}
	a, _ := MostCommonSoul(souls, rand.New(rand.NewSource(3)))
	b, _ := MostCommonSoul(souls, rand.New(rand.NewSource(3)))
	if a != b {
		t.Errorf("same seed gave different souls: %v vs %v", a, b)
	}
}
