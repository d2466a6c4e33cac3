package engine

import (
	"fmt"
	"math/rand"
	"time"

	"synapse-server/internal/content"
	"synapse-server/internal/crafting"
	"synapse-server/internal/domain"
	"synapse-server/internal/spells"
	"synapse-server/pkg/api"
	"synapse-server/pkg/cage"
	"synapse-server/pkg/logger"
	"synapse-server/pkg/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Session - одна игровая сессия: мир, стек заклинаний, счетчик ходов
// и очереди интентов фазы разрешения. Все методы должны вызываться из
// одной горутины (цикл команд GameService).
type Session struct {
	defs    *content.Defs
	world   *domain.World
	stack   *spells.Stack
	turns   *TurnManager
	matcher *crafting.Matcher

	rng  *rand.Rand
	seed int64

	// Очереди интентов. Дренируются в фиксированном порядке:
	// перемещения, столкновения, momentum, урон, прочее, касты.
	teleports     []domain.TeleportEntity
	collisions    []domain.CreatureCollision
	momenta       []domain.AlterMomentum
	harms         []domain.HarmCreature
	doors         []domain.OpenDoor
	statuses      []domain.ApplyStatusIntent
	transforms    []domain.TransformCreature
	summons       []domain.SummonIntent
	contingencies []domain.InstallContingencyIntent
	casts         []domain.CastSpellIntent

	// Сбрасываются в начале каждого действия.
	invalidatedSteps map[domain.EntityID]bool
	triggerBudget    map[domain.EntityID]int
	deathFired       map[domain.EntityID]bool

	events []api.GameEvent
	logs   []api.LogEntry
}

// NewSession генерирует клетку и заселяет мир. Детерминирована при
// фиксированном seed.
func NewSession(defs *content.Defs, seed int64) (*Session, error) {
	s := &Session{
		defs:             defs,
		world:            domain.NewWorld(),
		stack:            spells.NewStack(),
		turns:            NewTurnManager(),
		matcher:          crafting.NewMatcher(defs.Recipes),
		rng:              rand.New(rand.NewSource(seed)),
		seed:             seed,
		invalidatedSteps: make(map[domain.EntityID]bool),
		triggerBudget:    make(map[domain.EntityID]int),
		deathFired:       make(map[domain.EntityID]bool),
	}

	if err := s.populate(); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "session",
		"seed":      seed,
		"creatures": s.world.Len(),
	}).Info("Session created")

	return s, nil
}

// populate генерирует клетку и заселяет мир существами из шаблона.
func (s *Session) populate() error {
	spawns, err := cage.Generate(s.rng)
	if err != nil {
		return fmt.Errorf("generate cage: %w", err)
	}
	for _, sp := range spawns {
		def, err := s.defs.SpeciesDef(sp.Species)
		if err != nil {
			return fmt.Errorf("cage spawn: %w", err)
		}
		c := s.world.Spawn(def, s.defs.Kind(sp.Species), sp.Pos)
		if c.IsPlayer {
			c.Wheel.Pile = append([]domain.Soul(nil), s.defs.PlayerPile...)
		}
	}
	if s.world.Player() == nil {
		return fmt.Errorf("generated cage has no player")
	}
	return nil
}

// Seed возвращает зерно сессии.
func (s *Session) Seed() int64 {
	return s.seed
}

// Turn возвращает номер текущего хода.
func (s *Session) Turn() int {
	return s.turns.Turn()
}

// World открывает мир для построения снимков и отладки.
func (s *Session) World() *domain.World {
	return s.world
}

// StackDump возвращает снимок стека заклинаний.
func (s *Session) StackDump() []spells.FrameView {
	return s.stack.Dump()
}

// TurnsDump возвращает снимок счетчика ходов.
func (s *Session) TurnsDump() TurnDump {
	return s.turns.DebugDump()
}

// TakeEvents забирает накопленные события фазы анимации.
func (s *Session) TakeEvents() []api.GameEvent {
	out := s.events
	s.events = nil
	return out
}

// TakeLogs забирает накопленные записи лога.
func (s *Session) TakeLogs() []api.LogEntry {
	out := s.logs
	s.logs = nil
	return out
}

// --- ДЕЙСТВИЯ ИГРОКА ---

// PlayerStep - шаг игрока в направлении dir.
func (s *Session) PlayerStep(dir domain.OrdDir) error {
	return s.runPlayerAction(func(player *domain.Creature) error {
		s.enqueueStep(player, dir)
		return nil
	})
}

// PlayerCastSlot тратит душу из слота колеса и кастует заклинание ее
// касты из книги. Пустой слот или каста без заклинания - ошибка,
// ход не тратится.
func (s *Session) PlayerCastSlot(slot int) error {
	return s.runPlayerAction(func(player *domain.Creature) error {
		if slot < 0 || slot >= domain.SoulWheelSlots {
			return fmt.Errorf("slot %d out of range", slot)
		}
		caste := player.Wheel.Slots[slot]
		if caste == domain.SoulEmpty {
			return fmt.Errorf("slot %d is empty", slot)
		}
		spell, ok := player.Spellbook.Get(caste)
		if !ok {
			return fmt.Errorf("no spell equipped for caste %s", caste)
		}
		player.Wheel.Spend(slot)
		s.stack.Cast(player.ID, spell)
		return nil
	})
}

// PlayerDraw добирает душу из стопки в первый пустой слот.
func (s *Session) PlayerDraw() error {
	return s.runPlayerAction(func(player *domain.Creature) error {
		if _, ok := player.Wheel.Draw(); !ok {
			return fmt.Errorf("wheel is full or pile is empty")
		}
		return nil
	})
}

// PlayerWait - пропуск хода.
func (s *Session) PlayerWait() error {
	return s.runPlayerAction(func(*domain.Creature) error {
		return nil
	})
}

// Craft раскладывает души по верстаку, ищет рецепты и кладет
// получившееся заклинание в библиотеку. Души совпавших рецептов
// уходят в заклинание, остальные возвращаются в стопку. Ход тратится
// только если что-то скрафтилось.
func (s *Session) Craft(placements map[domain.Position]domain.Soul) error {
	return s.runPlayerAction(func(player *domain.Creature) error {
		if err := takeSoulsFromPile(player.Wheel, placements); err != nil {
			return err
		}

		matches := s.matcher.FindAll(placements)
		spent := make(map[domain.Position]bool)
		var spentSouls []domain.Soul
		for _, m := range matches {
			for _, pos := range m.Positions {
				spent[pos] = true
				spentSouls = append(spentSouls, placements[pos])
			}
		}

		// Несовпавшие души возвращаются в стопку.
		for pos, soul := range placements {
			if !spent[pos] {
				player.Wheel.Pile = append(player.Wheel.Pile, soul)
			}
		}

		spell, ok := crafting.BuildSpell(matches, spentSouls, s.rng)
		if !ok {
			return fmt.Errorf("no recipe matches the layout")
		}

		player.Library = append(player.Library, spell)
		s.log(fmt.Sprintf("Выковано заклинание касты %s (%d аксиом).", spell.Caste, len(spell.Axioms)), "INFO")
		return nil
	})
}

// Equip экипирует заклинание из библиотеки в книгу; вытесненное
// возвращается в библиотеку. Ход не тратится.
func (s *Session) Equip(spellID uuid.UUID) error {
	player := s.world.Player()
	if player == nil {
		return fmt.Errorf("player is dead")
	}
	for i, spell := range player.Library {
		if spell.ID != spellID {
			continue
		}
		player.Library = append(player.Library[:i], player.Library[i+1:]...)
		if old, had := player.Spellbook.Equip(spell); had {
			player.Library = append(player.Library, old)
		}
		return nil
	}
	return fmt.Errorf("spell %s is not in the library", spellID)
}

// Respawn - перезапуск сессии после гибели игрока: мир и карта
// строятся заново из генератора клетки, счетчик ходов обнуляется.
// Поток rng не пересеивается, реплей воспроизводит и перерождения.
func (s *Session) Respawn() error {
	if s.world.Player() != nil {
		return fmt.Errorf("player is alive")
	}
	s.world = domain.NewWorld()
	s.stack = spells.NewStack()
	s.turns = NewTurnManager()
	s.resetTransient()
	s.deathFired = make(map[domain.EntityID]bool)
	if err := s.populate(); err != nil {
		return err
	}
	s.log("Игрок возродился. Клетка собралась заново.", "INFO")
	return nil
}

// runPlayerAction оборачивает действие игрока: ошибка не тратит ход,
// аннулированное действие не продвигает счетчик и не дает ход NPC.
func (s *Session) runPlayerAction(fn func(*domain.Creature) error) error {
	player := s.world.Player()
	if player == nil {
		return fmt.Errorf("player is dead")
	}

	s.turns.Begin()
	s.resetTransient()

	if err := fn(player); err != nil {
		return err
	}

	s.resolve()
	s.finishTurn()
	return nil
}

// finishTurn закрывает ход: продвигает счетчик, тикает статусы и
// отдает ход NPC. Аннулированный ход откатывается целиком.
func (s *Session) finishTurn() {
	if !s.turns.Valid() {
		s.event(api.GameEvent{Kind: "TURN_REJECTED", Turn: s.turns.Turn()})
		return
	}

	s.turns.Advance()
	s.tickStatuses()
	s.runNPCTurn()
	s.event(api.GameEvent{Kind: "TURN_ADVANCED", Turn: s.turns.Turn()})
}

// resetTransient сбрасывает состояние, живущее в пределах одного действия.
func (s *Session) resetTransient() {
	s.invalidatedSteps = make(map[domain.EntityID]bool)
	s.triggerBudget = make(map[domain.EntityID]int)
}

// enqueueStep ставит интенты одиночного шага существа. Занятая
// осязаемым существом клетка дает столкновение, но только если одна
// из сторон - игрок: NPC друг о друга просто застревают.
func (s *Session) enqueueStep(c *domain.Creature, dir domain.OrdDir) {
	if !c.Immobile() {
		dest := c.Pos.Shift(dir.Offset())
		if id, ok := s.world.Map.OccupantAt(dest); ok {
			occ := s.world.MustGet(id)
			if c.IsPlayer || occ.IsPlayer {
				s.collisions = append(s.collisions, domain.CreatureCollision{
					Culprit: c.ID, Collided: id, Dir: dir,
				})
			}
		} else {
			s.teleports = append(s.teleports, domain.TeleportEntity{Entity: c.ID, Dest: dest, Slide: true})
		}
	}
	s.momenta = append(s.momenta, domain.AlterMomentum{Entity: c.ID, Dir: dir})
}

// tickStatuses уменьшает длительность конечных эффектов всех существ.
func (s *Session) tickStatuses() {
	for _, c := range s.world.Creatures() {
		for _, kind := range c.Statuses.Tick() {
			if kind == domain.StatusIntangible && !c.Flags.Intangible {
				// Материализация: если клетка занята, существо
				// остается бесплотным еще ход.
				if s.world.Map.IsPassable(c.Pos) {
					s.world.Map.Insert(c.Pos, c.ID)
				} else {
					c.Statuses.Apply(domain.StatusIntangible, 0, domain.Finite(1))
					continue
				}
			}
			s.event(api.GameEvent{Kind: "STATUS_APPLIED", Entity: c.ID.String(), Status: kind.String(), Amount: 0})
		}
	}
}

// --- ЧИТЫ ---

// CheatHeal восстанавливает игроку здоровье.
func (s *Session) CheatHeal() error {
	player := s.world.Player()
	if player == nil {
		return fmt.Errorf("player is dead")
	}
	player.HP = player.MaxHP
	s.log("Здоровье восстановлено.", "INFO")
	return nil
}

// CheatSmite помечает на удаление всех, кроме игрока и стен.
func (s *Session) CheatSmite() error {
	for _, c := range s.world.Creatures() {
		if c.IsPlayer || c.Flags.MeleeProof {
			continue
		}
		c.Doomed = true
	}
	s.resetTransient()
	s.sweepDoomed()
	s.log("Клетка зачищена.", "COMBAT")
	return nil
}

// CheatSpawn призывает существо вида species на клетку.
func (s *Session) CheatSpawn(species string, pos domain.Position) error {
	def, err := s.defs.SpeciesDef(species)
	if err != nil {
		return err
	}
	if !def.Flags.Intangible && !s.world.Map.IsPassable(pos) {
		return fmt.Errorf("tile %v is occupied", pos)
	}
	c := s.world.Spawn(def, s.defs.Kind(species), pos)
	s.event(api.GameEvent{Kind: "ENTITY_SPAWNED", Entity: c.ID.String(), Species: species, To: posView(pos)})
	return nil
}

// --- ВСПОМОГАТЕЛЬНОЕ ---

func (s *Session) log(text, logType string) {
	s.logs = append(s.logs, api.LogEntry{
		ID:        utils.GenerateID(),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
}

func (s *Session) event(ev api.GameEvent) {
	s.events = append(s.events, ev)
}

func posView(p domain.Position) *api.PositionView {
	return &api.PositionView{X: p.X, Y: p.Y}
}

// takeSoulsFromPile изымает из стопки по одной душе на каждую ячейку
// верстака. Нехватка хотя бы одной души - ошибка, стопка не меняется.
func takeSoulsFromPile(wheel *domain.SoulWheel, placements map[domain.Position]domain.Soul) error {
	need := make(map[domain.Soul]int)
	for _, soul := range placements {
		need[soul]++
	}

	have := make(map[domain.Soul]int)
	for _, soul := range wheel.Pile {
		have[soul]++
	}
	for soul, n := range need {
		if have[soul] < n {
			return fmt.Errorf("not enough %s souls in the pile", soul)
		}
	}

	remaining := wheel.Pile[:0]
	for _, soul := range wheel.Pile {
		if need[soul] > 0 {
			need[soul]--
			continue
		}
		remaining = append(remaining, soul)
	}
	wheel.Pile = remaining
	return nil
}
