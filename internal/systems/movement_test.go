package systems

import (
	"testing"

	"synapse-server/internal/domain"
)

func makeCreature(id uint64, pos domain.Position, flags domain.SpeciesFlags) *domain.Creature {
	return &domain.Creature{
		ID:       domain.PackEntityID(1, id),
		Pos:      pos,
		Statuses: domain.NewStatusSet(),
		Flags:    flags,
	}
}

func TestCalculateDashStopsBeforeWall(t *testing.T) {
	m := domain.NewMap()
	m.Insert(domain.NewPosition(4, 0), domain.PackEntityID(1, 99))

	dasher := makeCreature(1, domain.NewPosition(2, 0), domain.SpeciesFlags{})
	m.Insert(dasher.Pos, dasher.ID)

	res := CalculateDash(m, dasher, 1, 0, 5)
	if !res.Moved {
		t.Fatal("dash must move")
	}
	// Остановка за клетку до стены.
	if res.Dest != domain.NewPosition(3, 0) {
		t.Errorf("dash dest = %v, want (3,0)", res.Dest)
	}
}

func TestCalculateDashMaxDistance(t *testing.T) {
	m := domain.NewMap()
	dasher := makeCreature(1, domain.NewPosition(0, 0), domain.SpeciesFlags{})

	res := CalculateDash(m, dasher, 0, 1, 3)
	if res.Dest != domain.NewPosition(0, 3) {
		t.Errorf("dash dest = %v, want (0,3)", res.Dest)
	}
}

func TestCalculateDashIntangibleIgnoresBlockers(t *testing.T) {
	m := domain.NewMap()
	m.Insert(domain.NewPosition(1, 0), domain.PackEntityID(1, 99))

	ghost := makeCreature(1, domain.NewPosition(0, 0), domain.SpeciesFlags{Intangible: true})
	res := CalculateDash(m, ghost, 1, 0, 4)
	if res.Dest != domain.NewPosition(4, 0) {
		t.Errorf("intangible dash dest = %v, want (4,0)", res.Dest)
	}
}

func TestResolveCollisionOrder(t *testing.T) {
	m := domain.NewMap()
	player := makeCreature(1, domain.NewPosition(0, 0), domain.SpeciesFlags{})

	door := makeCreature(2, domain.NewPosition(1, 0), domain.SpeciesFlags{Door: true, Immobile: true})
	if got := ResolveCollision(m, player, door, domain.DirRight); got.Verdict != VerdictOpenDoor {
		t.Errorf("door collision verdict = %v, want open", got.Verdict)
	}

	crate := makeCreature(3, domain.NewPosition(1, 0), domain.SpeciesFlags{Pushable: true})
	m.Insert(crate.Pos, crate.ID)
	got := ResolveCollision(m, player, crate, domain.DirRight)
	if got.Verdict != VerdictPush || got.CrateDest != domain.NewPosition(2, 0) {
		t.Errorf("push verdict = %+v", got)
	}

	// Клетка за ящиком занята - толчок невозможен, идет удар.
	m.Insert(domain.NewPosition(2, 0), domain.PackEntityID(1, 98))
	if got := ResolveCollision(m, player, crate, domain.DirRight); got.Verdict != VerdictAttack {
		t.Errorf("blocked crate verdict = %v, want attack", got.Verdict)
	}

	wall := makeCreature(4, domain.NewPosition(1, 0), domain.SpeciesFlags{MeleeProof: true, Immobile: true})
	if got := ResolveCollision(m, player, wall, domain.DirRight); got.Verdict != VerdictBounce {
		t.Errorf("wall verdict = %v, want bounce", got.Verdict)
	}
}

func TestMeleeStrikeStabResets(t *testing.T) {
	attacker := makeCreature(1, domain.NewPosition(0, 0), domain.SpeciesFlags{})
	if dmg := MeleeStrike(attacker); dmg != 1 {
		t.Errorf("base strike = %d, want 1", dmg)
	}

	attacker.Statuses.Apply(domain.StatusStab, 5, domain.Finite(20))
	if dmg := MeleeStrike(attacker); dmg != 6 {
		t.Errorf("stab strike = %d, want 6", dmg)
	}
	// Использованный Stab сбрасывается.
	if attacker.Statuses.Has(domain.StatusStab) {
		t.Error("stab must reset after use")
	}
	if dmg := MeleeStrike(attacker); dmg != 1 {
		t.Errorf("strike after reset = %d, want 1", dmg)
	}
}
