package spells

import (
	"synapse-server/internal/domain"
	"synapse-server/internal/systems"
)

// execute диспетчеризует инструкцию исчерпывающим type switch.
// Формы дописывают цели, функции излучают интенты, мутаторы меняют
// поток управления кадра.
func (s *Stack) execute(env Env, frame *SynapseData, axiom domain.Axiom) []domain.Intent {
	caster := env.World.MustGet(frame.Caster)
	var out []domain.Intent

	switch ax := axiom.(type) {

	// --- FORMS ---

	case domain.Ego:
		out = form(frame, out, "simultaneous", caster.Pos)

	case domain.Plus:
		adj := env.World.Map.Adjacent(caster.Pos)
		out = form(frame, out, "simultaneous", caster.Pos, adj[0], adj[1], adj[2], adj[3])

	case domain.Touch:
		dx, dy := caster.Momentum.Offset()
		out = form(frame, out, "simultaneous", caster.Pos.Shift(dx, dy))

	case domain.MomentumBeam:
		dx, dy := caster.Momentum.Offset()
		beam := env.World.Map.TraceBeam(caster.Pos, dx, dy, domain.DefaultBeamRange)
		out = form(frame, out, "sequential", beam...)

	case domain.PlusBeam:
		for _, dir := range domain.CardinalDirs {
			dx, dy := dir.Offset()
			beam := env.World.Map.TraceBeam(caster.Pos, dx, dy, domain.DefaultBeamRange)
			out = form(frame, out, "sequential", beam...)
		}

	case domain.XBeam:
		for _, delta := range [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}} {
			beam := env.World.Map.TraceBeam(caster.Pos, delta[0], delta[1], domain.DefaultBeamRange)
			out = form(frame, out, "sequential", beam...)
		}

	case domain.Halo:
		ring := env.World.Map.Ring(caster.Pos, ax.Radius)
		out = form(frame, out, "sequential", ring...)

	case domain.Spread:
		var grown []domain.Position
		for _, target := range frame.Targets {
			adj := env.World.Map.Adjacent(target)
			grown = append(grown, adj[0], adj[1], adj[2], adj[3])
		}
		out = form(frame, out, "simultaneous", grown...)

	// --- FUNCTIONS ---

	case domain.Dash:
		dx, dy := caster.Momentum.Offset()
		for _, dasher := range s.targetedCreatures(env, frame) {
			res := systems.CalculateDash(env.World.Map, dasher, dx, dy, ax.MaxDistance)
			if res.Moved {
				out = append(out, domain.TeleportEntity{
					Entity: dasher.ID,
					Dest:   res.Dest,
					Slide:  true,
				})
			}
		}

	case domain.SummonCreature:
		for _, pos := range frame.Targets {
			out = append(out, domain.SummonIntent{
				Species:  ax.Species,
				Pos:      pos,
				Summoner: frame.Caster,
			})
		}

	case domain.RepressionDamage:
		for _, victim := range s.targetedCreatures(env, frame) {
			out = append(out, domain.HarmCreature{
				Victim:  victim.ID,
				Culprit: frame.Caster,
				Damage:  ax.Damage,
			})
		}

	case domain.HealOrHarm:
		for _, victim := range s.targetedCreatures(env, frame) {
			out = append(out, domain.HarmCreature{
				Victim:  victim.ID,
				Culprit: frame.Caster,
				Damage:  -ax.Amount,
			})
		}

	case domain.RandomCasterTeleport:
		var open []domain.Position
		for _, pos := range frame.Targets {
			if env.World.Map.IsPassable(pos) {
				open = append(open, pos)
			}
		}
		if len(open) > 0 {
			out = append(out, domain.TeleportEntity{
				Entity: frame.Caster,
				Dest:   open[env.Rng.Intn(len(open))],
			})
		}

	case domain.ApplyStatus:
		for _, victim := range s.targetedCreatures(env, frame) {
			out = append(out, domain.ApplyStatusIntent{
				Entity:   victim.ID,
				Effect:   ax.Effect,
				Potency:  ax.Potency,
				Duration: ax.Duration,
			})
		}

	case domain.Transform:
		for _, victim := range s.targetedCreatures(env, frame) {
			out = append(out, domain.TransformCreature{
				Entity:  victim.ID,
				Species: ax.Species,
			})
		}

	case domain.PlaceStepTrap:
		// Остаток программы становится зарядом ловушки.
		charge := frame.remainder()
		for _, pos := range frame.Targets {
			out = append(out, domain.SummonIntent{
				Species:     "trap",
				Pos:         pos,
				Summoner:    frame.Caster,
				StepProgram: domain.CloneAxioms(charge),
			})
		}
		frame.Terminate = true

	// --- MUTATORS ---

	case domain.PurgeTargets:
		frame.Targets = nil
		out = append(out, domain.ClearMagicVfx{})

	case domain.KeepOneRandom:
		if len(frame.Targets) > 0 {
			kept := frame.Targets[env.Rng.Intn(len(frame.Targets))]
			frame.Targets = []domain.Position{kept}
		}

	case domain.LoopBack:
		// Инструкция удаляет сама себя из копии программы: каждое
		// вхождение прыгает максимум один раз за каст.
		frame.Axioms = append(frame.Axioms[:frame.Step], frame.Axioms[frame.Step+1:]...)
		next := frame.Step - ax.Steps
		if next < 0 {
			next = 0
		}
		frame.Step = next
		frame.SkipAdvance = true

	case domain.ForceCast:
		program := frame.remainder()
		for _, target := range s.targetedCreatures(env, frame) {
			s.CastProgram(target.ID, domain.CloneAxioms(program))
		}
		frame.Terminate = true

	case domain.WhenDealingDamage:
		out = s.installTrigger(env, frame, domain.OnDealtDamage, out)

	case domain.WhenTakingDamage:
		out = s.installTrigger(env, frame, domain.OnTakenDamage, out)

	case domain.WhenMoved:
		out = s.installTrigger(env, frame, domain.OnMoved, out)

	default:
		// Закрытый sum-type: сюда попадает только новый, не
		// подключенный к диспетчеру вариант.
		panic("synapse: no handler for axiom " + axiom.String())
	}

	return out
}

// form дописывает цели формы и излучает визуальный интент.
func form(frame *SynapseData, out []domain.Intent, sequence string, positions ...domain.Position) []domain.Intent {
	if len(positions) == 0 {
		return out
	}
	frame.appendTargets(positions)
	return append(out, domain.PlaceMagicVfx{
		Positions:  positions,
		Sequence:   sequence,
		Kind:       "targeting",
		Decay:      0.5,
		StartDelay: 0,
	})
}

// targetedCreatures возвращает существ, стоящих на целевых клетках,
// в порядке списка целей (клетка с дублем дает существо дважды).
// Существа с иммунитетом к заклинаниям пропускаются.
func (s *Stack) targetedCreatures(env Env, frame *SynapseData) []*domain.Creature {
	var out []*domain.Creature
	for _, pos := range frame.Targets {
		id, ok := env.World.Map.OccupantAt(pos)
		if !ok {
			continue
		}
		c := env.World.MustGet(id)
		if c.Flags.SpellProof {
			continue
		}
		out = append(out, c)
	}
	return out
}

// installTrigger вешает остаток программы на существ на целях
// (или на кастера, если целей нет) и завершает кадр.
func (s *Stack) installTrigger(env Env, frame *SynapseData, trigger domain.TriggerKind, out []domain.Intent) []domain.Intent {
	program := frame.remainder()
	owners := s.targetedCreatures(env, frame)
	if len(owners) == 0 {
		owners = []*domain.Creature{env.World.MustGet(frame.Caster)}
	}
	for _, owner := range owners {
		out = append(out, domain.InstallContingencyIntent{
			Entity:  owner.ID,
			Trigger: trigger,
			Program: domain.CloneAxioms(program),
		})
	}
	frame.Terminate = true
	return out
}
