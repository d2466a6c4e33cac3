package agent

import (
	"encoding/json"
	"math/rand"
	"time"

	"synapse-server/internal/domain"
	"synapse-server/internal/engine"
	"synapse-server/pkg/api"
	"synapse-server/pkg/logger"
)

// Bot - "игрок-компьютер" (Headless Agent). Это пример ВНЕШНЕГО
// клиента: он подключается к сервису так же, как человек через
// WebSocket - подписывается в хабе, получает снимки мира и шлет
// обратно обычные команды. Внутрь движка он не лезет.
//
// Жизненный цикл:
//  1. NewBot -> регистрация в хабе, получение личного канала (Inbox).
//  2. Run -> запуск в отдельной горутине, слушает свой Inbox.
//  3. На каждый снимок makeMove выбирает следующую команду.
type Bot struct {
	Token   string
	Service *engine.GameService
	Inbox   chan api.ServerResponse

	rng *rand.Rand
}

func NewBot(token string, service *engine.GameService, seed int64) *Bot {
	logger.Log.WithField("token", token).Info("Creating headless agent")
	return &Bot{
		Token:   token,
		Service: service,
		Inbox:   service.Hub.Register(token),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Run запускает цикл жизни бота. Должен быть запущен в горутине.
func (b *Bot) Run() {
	defer b.Service.Hub.Unregister(b.Token)

	// Первый снимок запрашиваем сами.
	b.sendCommand("INIT", nil)

	for state := range b.Inbox {
		// Дросселирование: снимок приходит на каждую команду, без
		// паузы бот выжигает процессор.
		time.Sleep(100 * time.Millisecond)
		b.makeMove(state)
	}
	logger.Log.WithField("token", b.Token).Info("Agent shut down")
}

// makeMove выбирает команду по последнему снимку.
func (b *Bot) makeMove(state api.ServerResponse) {
	me := b.findSelf(state)
	if me == nil {
		b.sendCommand("RESPAWN", nil)
		return
	}

	// Добор душ, пока есть что добирать.
	if state.Wheel != nil && state.Wheel.PileCount > 0 && b.rng.Intn(3) == 0 {
		for _, slot := range state.Wheel.Slots {
			if slot == "EMPTY" {
				b.sendCommand("DRAW", nil)
				return
			}
		}
	}

	// Изредка кастуем из случайного занятого слота.
	if state.Wheel != nil && b.rng.Intn(4) == 0 {
		occupied := make([]int, 0, len(state.Wheel.Slots))
		for i, slot := range state.Wheel.Slots {
			if slot != "EMPTY" && b.hasSpellFor(state, slot) {
				occupied = append(occupied, i)
			}
		}
		if len(occupied) > 0 {
			payload, _ := json.Marshal(api.CastSlotPayload{Slot: occupied[b.rng.Intn(len(occupied))]})
			b.sendCommand("CAST_SLOT", payload)
			return
		}
	}

	// Иначе шаг: от ближайшего врага, если он рядом, иначе куда глаза глядят.
	dir := b.fleeDirection(state, me)
	payload, _ := json.Marshal(api.StepPayload{Direction: dir.String()})
	b.sendCommand("STEP", payload)
}

func (b *Bot) findSelf(state api.ServerResponse) *api.EntityView {
	for i := range state.Entities {
		if state.Entities[i].IsPlayer {
			return &state.Entities[i]
		}
	}
	return nil
}

func (b *Bot) hasSpellFor(state api.ServerResponse, caste string) bool {
	for _, spell := range state.Spellbook {
		if spell.Caste == caste {
			return true
		}
	}
	return false
}

// fleeDirection уводит от ближайшего охотника; без угроз рядом - шаг
// в случайном направлении.
func (b *Bot) fleeDirection(state api.ServerResponse, me *api.EntityView) domain.OrdDir {
	var threat *api.EntityView
	best := 6 // дальше - не угроза
	for i := range state.Entities {
		e := &state.Entities[i]
		if e.IsPlayer || e.Species == "wall" || e.Species == "crate" {
			continue
		}
		dist := abs(e.Pos.X-me.Pos.X) + abs(e.Pos.Y-me.Pos.Y)
		if dist < best {
			best = dist
			threat = e
		}
	}

	if threat != nil {
		if dx := me.Pos.X - threat.Pos.X; dx != 0 {
			if dx > 0 {
				return domain.DirRight
			}
			return domain.DirLeft
		}
		if me.Pos.Y-threat.Pos.Y > 0 {
			return domain.DirUp
		}
		return domain.DirDown
	}

	return domain.CardinalDirs[b.rng.Intn(len(domain.CardinalDirs))]
}

func (b *Bot) sendCommand(action string, payload json.RawMessage) {
	b.Service.ProcessCommand(api.ClientCommand{
		Action:  action,
		Token:   b.Token,
		Payload: payload,
	})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
