package engine

import (
	"synapse-server/internal/domain"
	"synapse-server/internal/systems"
)

// runNPCTurn отдает ход NPC. Существа действуют по скоростным
// уровням: на уровне N действуют все, кому положено N и более
// действий за ход. Потолок уровней задан контентом, чтобы эхо
// быстрых существ оставалось конечным.
func (s *Session) runNPCTurn() {
	turn := s.turns.Turn()
	ids := s.creatureIDs()

	for level := 1; level <= s.defs.MaxActionsPerTurn; level++ {
		for _, id := range ids {
			c, ok := s.world.Get(id)
			if !ok || c.IsPlayer || c.Doomed {
				continue
			}
			if level > s.effectiveActions(c) {
				continue
			}
			if wait := s.effectiveWait(c); wait > 0 && turn%(wait+1) != 0 {
				continue
			}
			s.runNPCAction(c)
		}
	}
}

// creatureIDs снимает порядок существ до начала хода NPC: призванные
// по ходу дела действуют только со следующего хода.
func (s *Session) creatureIDs() []domain.EntityID {
	creatures := s.world.Creatures()
	ids := make([]domain.EntityID, len(creatures))
	for i, c := range creatures {
		ids[i] = c.ID
	}
	return ids
}

// effectiveActions - действий за ход с учетом ускорения. Потолок
// контента не превышается.
func (s *Session) effectiveActions(c *domain.Creature) int {
	n := c.ActionsPerTurn + c.Statuses.Potency(domain.StatusHaste)
	if n > s.defs.MaxActionsPerTurn {
		n = s.defs.MaxActionsPerTurn
	}
	return n
}

// effectiveWait - медлительность с учетом замедления.
func (s *Session) effectiveWait(c *domain.Creature) int {
	return c.WaitTurns + c.Statuses.Potency(domain.StatusSlow)
}

// runNPCAction исполняет одно действие существа и доводит его
// последствия до затишья.
func (s *Session) runNPCAction(c *domain.Creature) {
	playerPos := c.Pos
	if player := s.world.Player(); player != nil {
		playerPos = player.Pos
	}

	decision := systems.DecideNPC(s.world.Map, c, playerPos, s.rng)
	switch decision.Kind {
	case systems.DecideStep:
		s.enqueueStep(c, decision.Dir)
	case systems.DecideCast:
		s.stack.Cast(c.ID, decision.Spell)
	default:
		return
	}

	s.triggerBudget = make(map[domain.EntityID]int)
	s.resolve()
}
