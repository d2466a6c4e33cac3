package systems

import (
	"math/rand"
	"testing"

	"synapse-server/internal/domain"
)

func TestDecideNPCHunt(t *testing.T) {
	m := domain.NewMap()
	hunter := makeCreature(1, domain.NewPosition(0, 0), domain.SpeciesFlags{})
	hunter.Behavior = domain.BehaviorHunt

	rng := rand.New(rand.NewSource(1))
	dec := DecideNPC(m, hunter, domain.NewPosition(4, 0), rng)
	if dec.Kind != DecideStep || dec.Dir != domain.DirRight {
		t.Errorf("hunt decision = %+v, want step RIGHT", dec)
	}
}

func TestDecideNPCWanderOnlyPassable(t *testing.T) {
	m := domain.NewMap()
	c := makeCreature(1, domain.NewPosition(0, 0), domain.SpeciesFlags{})
	c.Behavior = domain.BehaviorWander

	// Оставляем единственный выход - влево.
	m.Insert(domain.NewPosition(0, 1), domain.PackEntityID(1, 10))
	m.Insert(domain.NewPosition(0, -1), domain.PackEntityID(1, 11))
	m.Insert(domain.NewPosition(1, 0), domain.PackEntityID(1, 12))

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		dec := DecideNPC(m, c, domain.NewPosition(5, 5), rng)
		if dec.Kind != DecideStep || dec.Dir != domain.DirLeft {
			t.Fatalf("wander picked blocked direction: %+v", dec)
		}
	}
}

func TestDecideNPCSpawner(t *testing.T) {
	m := domain.NewMap()
	c := makeCreature(1, domain.NewPosition(0, 0), domain.SpeciesFlags{})
	c.Behavior = domain.BehaviorSpawner
	c.Spellbook = domain.NewSpellbook()
	spell := domain.NewSpell(domain.SoulVile, 0, []domain.Axiom{
		domain.Plus{}, domain.SummonCreature{Species: "hunter"},
	})
	c.Spellbook.Equip(spell)

	rng := rand.New(rand.NewSource(1))
	dec := DecideNPC(m, c, domain.NewPosition(5, 5), rng)
	if dec.Kind != DecideCast || dec.Spell.ID != spell.ID {
		t.Errorf("spawner decision = %+v, want cast", dec)
	}
}
