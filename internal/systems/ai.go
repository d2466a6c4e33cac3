package systems

import (
	"math/rand"

	"synapse-server/internal/domain"
	"synapse-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// DecisionKind - тип решения NPC
type DecisionKind uint8

const (
	DecideNothing DecisionKind = iota
	DecideStep
	DecideCast
)

// NPCDecision - решение NPC на этот ход. Чистые данные, мир не трогаем.
type NPCDecision struct {
	Kind  DecisionKind
	Dir   domain.OrdDir
	Spell domain.Spell
}

// DecideNPC выбирает действие существа по его поведению.
// Не меняет состояние мира!
//
//   - hunt: шаг к игроку через ClosestStepToward;
//   - wander: равновероятный шаг в случайную проходимую сторону;
//   - spawner: каст своего заклинания призыва (первый слот книги);
//   - none/player: ничего.
func DecideNPC(m *domain.Map, c *domain.Creature, playerPos domain.Position, rng *rand.Rand) NPCDecision {
	switch c.Behavior {
	case domain.BehaviorHunt:
		if dir, ok := m.ClosestStepToward(c.Pos, playerPos); ok {
			return NPCDecision{Kind: DecideStep, Dir: dir}
		}

	case domain.BehaviorWander:
		var open []domain.OrdDir
		for _, dir := range domain.CardinalDirs {
			dx, dy := dir.Offset()
			if m.IsPassable(c.Pos.Shift(dx, dy)) {
				open = append(open, dir)
			}
		}
		if len(open) > 0 {
			return NPCDecision{Kind: DecideStep, Dir: open[rng.Intn(len(open))]}
		}

	case domain.BehaviorSpawner:
		spell, ok := firstSpell(c)
		if !ok {
			logger.Log.WithFields(logrus.Fields{
				"component": "ai_system",
				"entity":    c.ID,
				"species":   c.Species,
			}).Warn("spawner has no spell to cast")
			break
		}
		return NPCDecision{Kind: DecideCast, Spell: spell}
	}

	return NPCDecision{Kind: DecideNothing}
}

// firstSpell достает заклинание из книги в фиксированном порядке каст.
func firstSpell(c *domain.Creature) (domain.Spell, bool) {
	if c.Spellbook == nil {
		return domain.Spell{}, false
	}
	for _, caste := range []domain.Soul{
		domain.SoulSaintly, domain.SoulOrdered, domain.SoulArtistic,
		domain.SoulUnhinged, domain.SoulFeral, domain.SoulVile,
	} {
		if spell, ok := c.Spellbook.Get(caste); ok {
			return spell, true
		}
	}
	return domain.Spell{}, false
}
