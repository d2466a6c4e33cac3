package domain

import "testing"

func testSpecies(name string, flags SpeciesFlags) *SpeciesDef {
	return &SpeciesDef{
		Name:           name,
		MaxHP:          6,
		Flags:          flags,
		Behavior:       BehaviorNone,
		ActionsPerTurn: 1,
	}
}

func TestStatusApplyOverwriteRule(t *testing.T) {
	s := NewStatusSet()

	s.Apply(StatusStab, 5, Finite(20))
	s.Apply(StatusStab, 2, Finite(3))
	if s.Potency(StatusStab) != 5 {
		t.Errorf("weaker status overwrote potency: %d", s.Potency(StatusStab))
	}
	if s[StatusStab].Duration.Stacks != 3 {
		t.Errorf("weaker status must still refresh duration, got %d", s[StatusStab].Duration.Stacks)
	}

	s.Apply(StatusStab, 7, Finite(1))
	if s.Potency(StatusStab) != 7 {
		t.Errorf("stronger status must overwrite, got %d", s.Potency(StatusStab))
	}
}

func TestStatusTickExpiry(t *testing.T) {
	s := NewStatusSet()
	s.Apply(StatusInvincible, 1, Finite(2))
	s.Apply(StatusIntangible, 1, Infinite())

	if expired := s.Tick(); len(expired) != 0 {
		t.Fatalf("nothing should expire on first tick, got %v", expired)
	}
	expired := s.Tick()
	if len(expired) != 1 || expired[0] != StatusInvincible {
		t.Fatalf("expected INVINCIBLE to expire, got %v", expired)
	}
	if !s.Has(StatusIntangible) {
		t.Error("infinite status must never expire")
	}
}

func TestApplySpeciesIsUniform(t *testing.T) {
	w := NewWorld()
	c := w.Spawn(testSpecies("crate", SpeciesFlags{Pushable: true}), 1, NewPosition(0, 0))

	if !c.Flags.Pushable || c.Flags.Intangible {
		t.Fatalf("spawn flags wrong: %+v", c.Flags)
	}

	// Смена вида пересчитывает весь набор способностей, а не точечно.
	c.ApplySpecies(testSpecies("ghost", SpeciesFlags{Intangible: true}))
	if c.Flags.Pushable {
		t.Error("transform must drop flags of the old species")
	}
	if c.Tangible() {
		t.Error("intangible species must not be tangible")
	}
}

func TestSoulWheel(t *testing.T) {
	w := &SoulWheel{Pile: []Soul{SoulFeral, SoulVile}}

	soul, ok := w.Draw()
	if !ok || soul != SoulFeral {
		t.Fatalf("draw = %v/%v, want FERAL", soul, ok)
	}

	if _, ok := w.Spend(3); ok {
		t.Error("spending an empty slot must fail")
	}
	soul, ok = w.Spend(0)
	if !ok || soul != SoulFeral {
		t.Fatalf("spend = %v/%v, want FERAL", soul, ok)
	}
	// Потраченная душа возвращается в конец стопки.
	if len(w.Pile) != 2 || w.Pile[1] != SoulFeral {
		t.Errorf("pile after spend = %v", w.Pile)
	}
}

func TestSoulWheelFull(t *testing.T) {
	w := &SoulWheel{Pile: []Soul{SoulVile}}
	for i := range w.Slots {
		w.Slots[i] = SoulOrdered
	}
	if _, ok := w.Draw(); ok {
		t.Error("draw into a full wheel must fail")
	}
}

func TestWorldRemoveKeepsOrder(t *testing.T) {
	w := NewWorld()
	a := w.Spawn(testSpecies("wall", SpeciesFlags{Immobile: true}), 1, NewPosition(0, 0))
	b := w.Spawn(testSpecies("wall", SpeciesFlags{Immobile: true}), 1, NewPosition(1, 0))
	c := w.Spawn(testSpecies("wall", SpeciesFlags{Immobile: true}), 1, NewPosition(2, 0))

	w.Remove(b.ID)

	got := w.Creatures()
	if len(got) != 2 || got[0].ID != a.ID || got[1].ID != c.ID {
		t.Fatalf("iteration order broken after removal: %v", got)
	}
}
