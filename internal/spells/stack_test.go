package spells

import (
	"math/rand"
	"testing"

	"synapse-server/internal/domain"
)

func testEnv() (Env, *domain.World) {
	w := domain.NewWorld()
	return Env{World: w, Rng: rand.New(rand.NewSource(42))}, w
}

func spawn(w *domain.World, name string, pos domain.Position, flags domain.SpeciesFlags) *domain.Creature {
	def := &domain.SpeciesDef{
		Name:           name,
		MaxHP:          10,
		Flags:          flags,
		Behavior:       domain.BehaviorNone,
		ActionsPerTurn: 1,
	}
	return w.Spawn(def, 1, pos)
}

// drain гонит стек до затишья, собирая все интенты.
func drain(t *testing.T, s *Stack, env Env) []domain.Intent {
	t.Helper()
	var all []domain.Intent
	for i := 0; !s.Quiescent(); i++ {
		if i > 1000 {
			t.Fatal("stack did not reach quiescence")
		}
		all = append(all, s.Advance(env)...)
	}
	return all
}

func countVfx(intents []domain.Intent) int {
	n := 0
	for _, in := range intents {
		if _, ok := in.(domain.PlaceMagicVfx); ok {
			n++
		}
	}
	return n
}

func TestLoopBackRunsFormExactlyTwice(t *testing.T) {
	env, w := testEnv()
	caster := spawn(w, "caster", domain.NewPosition(0, 0), domain.SpeciesFlags{})

	s := NewStack()
	s.Cast(caster.ID, domain.NewSpell(domain.SoulFeral, 0, []domain.Axiom{
		domain.Ego{}, domain.LoopBack{Steps: 1},
	}))

	intents := drain(t, s, env)

	// Ego излучает ровно один визуальный интент за исполнение.
	if got := countVfx(intents); got != 2 {
		t.Errorf("Ego executed %d times, want exactly 2", got)
	}
}

func TestLoopBackDoesNotCorruptSpellbookCopy(t *testing.T) {
	env, w := testEnv()
	caster := spawn(w, "caster", domain.NewPosition(0, 0), domain.SpeciesFlags{})

	spell := domain.NewSpell(domain.SoulFeral, 0, []domain.Axiom{
		domain.Ego{}, domain.LoopBack{Steps: 1},
	})

	s := NewStack()
	s.Cast(caster.ID, spell)
	drain(t, s, env)

	// LoopBack удалился из копии кадра, не из заклинания.
	if len(spell.Axioms) != 2 {
		t.Fatalf("spell program mutated: %v", spell.Axioms)
	}

	// Повторный каст ведет себя так же.
	s.Cast(caster.ID, spell)
	if got := countVfx(drain(t, s, env)); got != 2 {
		t.Errorf("second cast executed Ego %d times, want 2", got)
	}
}

func TestForceCastHandsRemainderToTargets(t *testing.T) {
	env, w := testEnv()
	caster := spawn(w, "caster", domain.NewPosition(0, 0), domain.SpeciesFlags{})
	caster.Momentum = domain.DirRight
	victim := spawn(w, "victim", domain.NewPosition(1, 0), domain.SpeciesFlags{})

	s := NewStack()
	s.Cast(caster.ID, domain.NewSpell(domain.SoulVile, 0, []domain.Axiom{
		domain.Touch{}, domain.ForceCast{},
		domain.Ego{}, domain.RepressionDamage{Damage: 1},
	}))

	intents := drain(t, s, env)

	var harms []domain.HarmCreature
	for _, in := range intents {
		if h, ok := in.(domain.HarmCreature); ok {
			harms = append(harms, h)
		}
	}
	if len(harms) != 1 {
		t.Fatalf("got %d harm intents, want 1", len(harms))
	}
	// Остаток программы кастует ЦЕЛЬ от своего имени: Ego жертвы
	// целится в жертву, и она же числится виновником.
	if harms[0].Victim != victim.ID || harms[0].Culprit != victim.ID {
		t.Errorf("harm = %+v, want victim and culprit both %v", harms[0], victim.ID)
	}
}

func TestNestedCastPreemptsOuterFrame(t *testing.T) {
	env, w := testEnv()
	outer := spawn(w, "outer", domain.NewPosition(0, 0), domain.SpeciesFlags{})
	inner := spawn(w, "inner", domain.NewPosition(5, 5), domain.SpeciesFlags{})
	inner.Momentum = domain.DirRight

	s := NewStack()
	s.Cast(outer.ID, domain.NewSpell(domain.SoulFeral, 0, []domain.Axiom{
		domain.Ego{}, domain.Ego{},
	}))

	// Первая инструкция внешнего кадра.
	first := s.Advance(env)
	if countVfx(first) != 1 {
		t.Fatal("outer frame did not run its first instruction")
	}

	// Вложенный каст, запрошенный между инструкциями, ложится поверх.
	s.Cast(inner.ID, domain.NewSpell(domain.SoulVile, 0, []domain.Axiom{domain.Touch{}}))

	second := s.Advance(env)
	vfx, ok := second[0].(domain.PlaceMagicVfx)
	if !ok || len(vfx.Positions) != 1 || vfx.Positions[0] != domain.NewPosition(6, 5) {
		t.Fatalf("nested cast did not run first: %+v", second)
	}

	// Внешний кадр возобновляется после полного отыгрыша вложенного.
	third := s.Advance(env)
	vfx, ok = third[0].(domain.PlaceMagicVfx)
	if !ok || vfx.Positions[0] != domain.NewPosition(0, 0) {
		t.Fatalf("outer frame did not resume: %+v", third)
	}
	if !s.Quiescent() {
		t.Error("stack must be quiescent after both casts")
	}
}

func TestBeamAndDashScenario(t *testing.T) {
	env, w := testEnv()
	caster := spawn(w, "caster", domain.NewPosition(0, 0), domain.SpeciesFlags{})
	caster.Momentum = domain.DirRight
	dasher := spawn(w, "dasher", domain.NewPosition(2, 0), domain.SpeciesFlags{})
	spawn(w, "wall", domain.NewPosition(4, 0), domain.SpeciesFlags{
		MeleeProof: true, SpellProof: true, Immobile: true,
	})

	s := NewStack()
	s.Cast(caster.ID, domain.NewSpell(domain.SoulFeral, 0, []domain.Axiom{
		domain.MomentumBeam{}, domain.Dash{MaxDistance: 5},
	}))

	beamIntents := s.Advance(env)
	vfx := beamIntents[0].(domain.PlaceMagicVfx)
	// Луч останавливается на первой непроходимой клетке и включает ее:
	// осязаемый бегун на (2,0) обрывает трассировку до стены.
	want := []domain.Position{
		domain.NewPosition(1, 0), domain.NewPosition(2, 0),
	}
	if len(vfx.Positions) != len(want) {
		t.Fatalf("beam targeted %d tiles, want %d", len(vfx.Positions), len(want))
	}
	for i := range want {
		if vfx.Positions[i] != want[i] {
			t.Errorf("beam tile %d = %v, want %v", i, vfx.Positions[i], want[i])
		}
	}

	dashIntents := s.Advance(env)
	var teleports []domain.TeleportEntity
	for _, in := range dashIntents {
		if tp, ok := in.(domain.TeleportEntity); ok {
			teleports = append(teleports, tp)
		}
	}
	if len(teleports) != 1 {
		t.Fatalf("got %d teleports, want 1 (only the dasher stands on a targeted tile)", len(teleports))
	}
	if teleports[0].Entity != dasher.ID || teleports[0].Dest != domain.NewPosition(3, 0) {
		t.Errorf("dash = %+v, want dasher to (3,0)", teleports[0])
	}
}

func TestKeepOneRandomAndPurge(t *testing.T) {
	env, w := testEnv()
	caster := spawn(w, "caster", domain.NewPosition(0, 0), domain.SpeciesFlags{})

	s := NewStack()
	s.Cast(caster.ID, domain.NewSpell(domain.SoulOrdered, 0, []domain.Axiom{
		domain.Plus{}, domain.KeepOneRandom{}, domain.PurgeTargets{}, domain.Ego{},
	}))

	s.Advance(env) // Plus
	if dump := s.Dump(); len(dump) != 1 || len(dump[0].Targets) != 5 {
		t.Fatalf("after Plus: %+v", dump)
	}

	s.Advance(env) // KeepOneRandom
	if dump := s.Dump(); len(dump[0].Targets) != 1 {
		t.Fatalf("KeepOneRandom kept %d targets, want 1", len(dump[0].Targets))
	}

	purge := s.Advance(env) // PurgeTargets
	if dump := s.Dump(); len(dump[0].Targets) != 0 {
		t.Fatalf("PurgeTargets left %d targets", len(dump[0].Targets))
	}
	foundClear := false
	for _, in := range purge {
		if _, ok := in.(domain.ClearMagicVfx); ok {
			foundClear = true
		}
	}
	if !foundClear {
		t.Error("PurgeTargets must emit a visual-clear intent")
	}

	drain(t, s, env)
}

func TestPlaceStepTrapTerminatesAndCarriesCharge(t *testing.T) {
	env, w := testEnv()
	caster := spawn(w, "caster", domain.NewPosition(0, 0), domain.SpeciesFlags{})
	caster.Momentum = domain.DirRight

	s := NewStack()
	s.Cast(caster.ID, domain.NewSpell(domain.SoulArtistic, 0, []domain.Axiom{
		domain.Touch{}, domain.PlaceStepTrap{},
		domain.Ego{}, domain.RepressionDamage{Damage: 2},
	}))

	intents := drain(t, s, env)

	var summons []domain.SummonIntent
	for _, in := range intents {
		if sm, ok := in.(domain.SummonIntent); ok {
			summons = append(summons, sm)
		}
	}
	if len(summons) != 1 {
		t.Fatalf("got %d summons, want 1", len(summons))
	}
	sm := summons[0]
	if sm.Species != "trap" || sm.Pos != domain.NewPosition(1, 0) {
		t.Errorf("summon = %+v", sm)
	}
	// Заряд - остаток программы после PlaceStepTrap.
	if len(sm.StepProgram) != 2 {
		t.Errorf("trap charge = %v, want 2 axioms", sm.StepProgram)
	}
}

func TestDropCaster(t *testing.T) {
	env, w := testEnv()
	a := spawn(w, "a", domain.NewPosition(0, 0), domain.SpeciesFlags{})
	b := spawn(w, "b", domain.NewPosition(1, 1), domain.SpeciesFlags{})

	s := NewStack()
	s.Cast(a.ID, domain.NewSpell(domain.SoulFeral, 0, []domain.Axiom{domain.Ego{}, domain.Ego{}}))
	s.Cast(b.ID, domain.NewSpell(domain.SoulFeral, 0, []domain.Axiom{domain.Ego{}, domain.Ego{}}))
	s.Advance(env)

	s.DropCaster(b.ID)

	// Остался только кадр a: два Ego до затишья.
	if got := countVfx(drain(t, s, env)); got != 2 {
		t.Errorf("remaining frame emitted %d vfx, want 2", got)
	}
}
