package engine

import (
	"synapse-server/internal/domain"
	"synapse-server/internal/spells"
	"synapse-server/internal/systems"
	"synapse-server/pkg/api"
	"synapse-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// resolve гоняет фазу разрешения до полного затишья: очереди интентов
// дренируются в фиксированном порядке, затем стек заклинаний
// продвигается на инструкцию, и так по кругу. В конце - зачистка
// помеченных на удаление.
func (s *Session) resolve() {
	s.drainToQuiescence()
	s.sweepDoomed()
}

func (s *Session) drainToQuiescence() {
	for {
		s.drainQueues()
		if s.stack.Quiescent() {
			if s.queuesEmpty() {
				return
			}
			continue
		}
		s.dispatch(s.stack.Advance(s.env()))
	}
}

func (s *Session) env() spells.Env {
	return spells.Env{World: s.world, Rng: s.rng}
}

func (s *Session) queuesEmpty() bool {
	return len(s.teleports) == 0 && len(s.collisions) == 0 &&
		len(s.momenta) == 0 && len(s.harms) == 0 &&
		len(s.doors) == 0 && len(s.statuses) == 0 &&
		len(s.transforms) == 0 && len(s.summons) == 0 &&
		len(s.contingencies) == 0 && len(s.casts) == 0
}

// drainQueues делает один полный проход по очередям. Поздние шаги
// могут пополнить ранние очереди; внешний цикл повторит проход.
func (s *Session) drainQueues() {
	for !s.queuesEmpty() {
		for len(s.teleports) > 0 {
			t := s.teleports[0]
			s.teleports = s.teleports[1:]
			s.applyTeleport(t)
		}
		for len(s.collisions) > 0 {
			c := s.collisions[0]
			s.collisions = s.collisions[1:]
			s.applyCollision(c)
		}
		for len(s.momenta) > 0 {
			m := s.momenta[0]
			s.momenta = s.momenta[1:]
			s.applyMomentum(m)
		}
		for len(s.harms) > 0 {
			h := s.harms[0]
			s.harms = s.harms[1:]
			s.applyHarm(h)
		}
		for len(s.doors) > 0 {
			d := s.doors[0]
			s.doors = s.doors[1:]
			s.applyOpenDoor(d)
		}
		for len(s.statuses) > 0 {
			st := s.statuses[0]
			s.statuses = s.statuses[1:]
			s.applyStatus(st)
		}
		for len(s.transforms) > 0 {
			tr := s.transforms[0]
			s.transforms = s.transforms[1:]
			s.applyTransform(tr)
		}
		for len(s.summons) > 0 {
			sm := s.summons[0]
			s.summons = s.summons[1:]
			s.applySummon(sm)
		}
		for len(s.contingencies) > 0 {
			ct := s.contingencies[0]
			s.contingencies = s.contingencies[1:]
			s.world.MustGet(ct.Entity).InstallContingency(ct.Trigger, ct.Program)
		}
		for len(s.casts) > 0 {
			c := s.casts[0]
			s.casts = s.casts[1:]
			s.stack.Cast(c.Caster, c.Spell)
		}
	}
}

// dispatch раскладывает интенты стека по очередям.
func (s *Session) dispatch(intents []domain.Intent) {
	for _, in := range intents {
		switch iv := in.(type) {
		case domain.TeleportEntity:
			s.teleports = append(s.teleports, iv)
		case domain.CreatureCollision:
			s.collisions = append(s.collisions, iv)
		case domain.AlterMomentum:
			s.momenta = append(s.momenta, iv)
		case domain.HarmCreature:
			s.harms = append(s.harms, iv)
		case domain.OpenDoor:
			s.doors = append(s.doors, iv)
		case domain.ApplyStatusIntent:
			s.statuses = append(s.statuses, iv)
		case domain.TransformCreature:
			s.transforms = append(s.transforms, iv)
		case domain.SummonIntent:
			s.summons = append(s.summons, iv)
		case domain.CastSpellIntent:
			s.casts = append(s.casts, iv)
		case domain.InstallContingencyIntent:
			s.contingencies = append(s.contingencies, iv)
		case domain.CreatureStep:
			if c, ok := s.world.Get(iv.Entity); ok {
				s.enqueueStep(c, iv.Dir)
			}
		case domain.PlaceMagicVfx:
			views := make([]api.PositionView, len(iv.Positions))
			for i, p := range iv.Positions {
				views[i] = api.PositionView{X: p.X, Y: p.Y}
			}
			s.event(api.GameEvent{
				Kind:      "MAGIC_VFX",
				Positions: views,
				Sequence:  iv.Sequence,
				VfxKind:   iv.Kind,
				Decay:     iv.Decay,
			})
		case domain.ClearMagicVfx:
			s.event(api.GameEvent{Kind: "MAGIC_VFX_CLEARED"})
		default:
			panic("engine: unroutable intent")
		}
	}
}

// --- ШАГИ РАЗРЕШЕНИЯ ---

// applyTeleport перемещает существо. Неосязаемые проходят сквозь все;
// занятая клетка дает столкновение, но только с участием игрока.
func (s *Session) applyTeleport(t domain.TeleportEntity) {
	c := s.world.MustGet(t.Entity)
	if c.Doomed || c.Immobile() || t.Dest == c.Pos {
		return
	}

	from := c.Pos
	if c.Tangible() {
		if id, ok := s.world.Map.OccupantAt(t.Dest); ok {
			occ := s.world.MustGet(id)
			if !c.IsPlayer && !occ.IsPlayer {
				return
			}
			if dir, ok := domain.DirFromDelta(sign(t.Dest.X-from.X), sign(t.Dest.Y-from.Y)); ok {
				s.collisions = append(s.collisions, domain.CreatureCollision{
					Culprit: c.ID, Collided: id, Dir: dir,
				})
			}
			return
		}
		s.world.Map.MoveOccupant(from, t.Dest)
	}
	c.Pos = t.Dest

	s.event(api.GameEvent{
		Kind:   "ENTITY_MOVED",
		Entity: c.ID.String(),
		From:   posView(from),
		To:     posView(t.Dest),
		Slide:  t.Slide,
	})
	s.afterMove(c)
}

// afterMove стреляет триггерами перемещения: ON_MOVED у ходока и
// ON_STEPPED_ON у бесплотных (ловушек) на новой клетке. Сработавшая
// ловушка одноразова.
func (s *Session) afterMove(c *domain.Creature) {
	s.fireTriggers(c, domain.OnMoved)
	if !c.Tangible() {
		return
	}
	for _, other := range s.world.Creatures() {
		if other.ID == c.ID || other.Tangible() || other.Doomed || other.Pos != c.Pos {
			continue
		}
		if s.fireTriggers(other, domain.OnSteppedOn) {
			other.Doomed = true
		}
	}
}

// applyCollision разбирает столкновение: дверь, толчок, ближний бой
// или отскок.
func (s *Session) applyCollision(col domain.CreatureCollision) {
	culprit := s.world.MustGet(col.Culprit)
	collided := s.world.MustGet(col.Collided)
	if culprit.Doomed || collided.Doomed {
		return
	}

	res := systems.ResolveCollision(s.world.Map, culprit, collided, col.Dir)
	switch res.Verdict {
	case systems.VerdictOpenDoor:
		s.doors = append(s.doors, domain.OpenDoor{Entity: collided.ID})

	case systems.VerdictPush:
		// Толкаемое уезжает первым, толкач занимает его клетку.
		s.teleports = append(s.teleports,
			domain.TeleportEntity{Entity: collided.ID, Dest: res.CrateDest, Slide: true},
			domain.TeleportEntity{Entity: culprit.ID, Dest: collided.Pos, Slide: true},
		)

	case systems.VerdictAttack:
		damage := systems.MeleeStrike(culprit)
		s.harms = append(s.harms, domain.HarmCreature{
			Victim: collided.ID, Culprit: culprit.ID, Damage: damage,
		})

	case systems.VerdictBounce:
		if culprit.IsPlayer {
			s.turns.Invalidate()
			s.invalidatedSteps[culprit.ID] = true
		}
	}
}

// applyMomentum меняет направление взгляда. Аннулированный шаг не
// разворачивает существо.
func (s *Session) applyMomentum(m domain.AlterMomentum) {
	if s.invalidatedSteps[m.Entity] {
		return
	}
	c := s.world.MustGet(m.Entity)
	if c.Doomed || c.Momentum == m.Dir {
		return
	}
	c.Momentum = m.Dir
	s.event(api.GameEvent{Kind: "MOMENTUM_CHANGED", Entity: c.ID.String(), Direction: m.Dir.String()})
}

// applyHarm меняет здоровье с клампом в [0, MaxHP]. Неуязвимость
// блокирует урон, но не лечение. Смертельный урон лишь помечает
// жертву: удаление происходит после затишья.
func (s *Session) applyHarm(h domain.HarmCreature) {
	victim := s.world.MustGet(h.Victim)
	if victim.Doomed {
		return
	}

	damage := h.Damage
	if damage > 0 && victim.Statuses.Has(domain.StatusInvincible) {
		damage = 0
	}

	before := victim.HP
	after := before - damage
	if after < 0 {
		after = 0
	}
	if after > victim.MaxHP {
		after = victim.MaxHP
	}
	if after == before {
		return
	}
	victim.HP = after

	s.event(api.GameEvent{
		Kind:   "HEALTH_CHANGED",
		Entity: victim.ID.String(),
		Amount: after - before,
	})

	if after < before {
		if culprit, ok := s.world.Get(h.Culprit); ok && !culprit.Doomed {
			s.fireTriggers(culprit, domain.OnDealtDamage)
		}
		s.fireTriggers(victim, domain.OnTakenDamage)
	}

	if victim.HP == 0 {
		victim.Doomed = true
	}
}

// applyOpenDoor делает дверь бесплотной навсегда.
func (s *Session) applyOpenDoor(d domain.OpenDoor) {
	c := s.world.MustGet(d.Entity)
	if c.Doomed || !c.Tangible() {
		return
	}
	s.world.Map.Remove(c.Pos, c.ID)
	c.Statuses.Apply(domain.StatusIntangible, 0, domain.Infinite())
	s.event(api.GameEvent{Kind: "DOOR_OPENED", Entity: c.ID.String(), To: posView(c.Pos)})
}

// applyStatus накладывает статус-эффект и переиндексирует карту,
// если поменялась осязаемость.
func (s *Session) applyStatus(st domain.ApplyStatusIntent) {
	c := s.world.MustGet(st.Entity)
	if c.Doomed {
		return
	}

	wasTangible := c.Tangible()
	c.Statuses.Apply(st.Effect, st.Potency, st.Duration)
	s.reindexTangibility(c, wasTangible)

	s.event(api.GameEvent{
		Kind:   "STATUS_APPLIED",
		Entity: c.ID.String(),
		Status: st.Effect.String(),
		Amount: st.Potency,
	})
}

// applyTransform меняет вид существа. Набор способностей
// пересчитывается целиком, статусы переживают превращение.
func (s *Session) applyTransform(tr domain.TransformCreature) {
	c := s.world.MustGet(tr.Entity)
	if c.Doomed {
		return
	}
	def, err := s.defs.SpeciesDef(tr.Species)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"component": "resolution",
			"species":   tr.Species,
		}).Warn("transform into unknown species dropped")
		return
	}

	wasTangible := c.Tangible()
	c.ApplySpecies(def)
	s.reindexTangibility(c, wasTangible)

	s.event(api.GameEvent{Kind: "TRANSFORMED", Entity: c.ID.String(), Species: tr.Species})
}

// applySummon призывает существо. Осязаемый вид не встает на занятую
// клетку; заряд ловушки вешается как контингенция "когда наступили".
func (s *Session) applySummon(sm domain.SummonIntent) {
	def, err := s.defs.SpeciesDef(sm.Species)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"component": "resolution",
			"species":   sm.Species,
		}).Warn("summon of unknown species dropped")
		return
	}
	if !def.Flags.Intangible && !s.world.Map.IsPassable(sm.Pos) {
		return
	}

	c := s.world.Spawn(def, s.defs.Kind(sm.Species), sm.Pos)
	c.Summoner = sm.Summoner
	if len(sm.StepProgram) > 0 {
		c.InstallContingency(domain.OnSteppedOn, sm.StepProgram)
	}

	s.event(api.GameEvent{
		Kind:    "ENTITY_SPAWNED",
		Entity:  c.ID.String(),
		Species: sm.Species,
		To:      posView(sm.Pos),
	})
}

// fireTriggers кастует программы, подвешенные на триггер существа.
// Бюджет на существо за действие гарантирует завершение циклов
// "урон -> триггер -> урон". true - хотя бы одна программа ушла на стек.
func (s *Session) fireTriggers(c *domain.Creature, trigger domain.TriggerKind) bool {
	programs := c.TriggeredPrograms(trigger)
	if len(programs) == 0 {
		return false
	}
	if s.triggerBudget[c.ID] >= domain.MaxContingencyDepth {
		logger.Log.WithFields(logrus.Fields{
			"component": "resolution",
			"entity":    c.ID,
			"trigger":   trigger.String(),
		}).Warn("contingency budget exhausted")
		return false
	}
	s.triggerBudget[c.ID]++

	for _, program := range programs {
		s.stack.CastProgram(c.ID, domain.CloneAxioms(program))
	}
	return true
}

// sweepDoomed зачищает помеченных: сперва их предсмертные программы
// (ON_REMOVED) отыгрывают до затишья, затем существа снимаются с
// карты, со стека и из мира. Запись на карте снимается с проверкой
// принадлежности: клетку мог уже занять кто-то живой.
func (s *Session) sweepDoomed() {
	for {
		fired := false
		for _, c := range s.world.Creatures() {
			if c.Doomed && !s.deathFired[c.ID] {
				s.deathFired[c.ID] = true
				if s.fireTriggers(c, domain.OnRemoved) {
					fired = true
				}
			}
		}
		if !fired {
			break
		}
		s.drainToQuiescence()
	}

	for _, c := range s.world.Creatures() {
		if !c.Doomed {
			continue
		}
		if c.Tangible() {
			s.world.Map.Remove(c.Pos, c.ID)
		}
		s.stack.DropCaster(c.ID)
		s.world.Remove(c.ID)
		delete(s.deathFired, c.ID)

		s.event(api.GameEvent{Kind: "ENTITY_REMOVED", Entity: c.ID.String(), From: posView(c.Pos)})
		if c.IsPlayer {
			s.log("Игрок погиб.", "COMBAT")
		}
	}
}

// reindexTangibility чинит индекс занятости после смены осязаемости.
func (s *Session) reindexTangibility(c *domain.Creature, wasTangible bool) {
	switch {
	case wasTangible && !c.Tangible():
		s.world.Map.Remove(c.Pos, c.ID)
	case !wasTangible && c.Tangible():
		if s.world.Map.IsPassable(c.Pos) {
			s.world.Map.Insert(c.Pos, c.ID)
		} else {
			// Клетка занята: материализация откладывается на ход.
			c.Statuses.Apply(domain.StatusIntangible, 0, domain.Finite(1))
		}
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
