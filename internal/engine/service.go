package engine

import (
	"fmt"
	"sync"

	"synapse-server/internal/content"
	"synapse-server/internal/domain"
	"synapse-server/internal/engine/handlers"
	"synapse-server/internal/engine/handlers/actions"
	"synapse-server/internal/engine/handlers/admin"
	"synapse-server/internal/infrastructure/storage"
	"synapse-server/internal/network"
	"synapse-server/pkg/api"
	"synapse-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// GameService - владелец сессии. Все команды проходят через один
// канал и исполняются последовательно; после каждой команды всем
// подписчикам уходит свежий снимок мира.
type GameService struct {
	mu      sync.Mutex
	session *Session

	CommandChan chan domain.InternalCommand
	Hub         *network.Broadcaster

	handlers map[domain.ActionType]handlers.HandlerFunc
	journal  *storage.Journal
}

func NewService(cfg Config) (*GameService, error) {
	defs, err := content.Load()
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	session, err := NewSession(defs, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s := &GameService{
		session:     session,
		CommandChan: make(chan domain.InternalCommand, 100),
		Hub:         network.NewBroadcaster(),
		handlers:    make(map[domain.ActionType]handlers.HandlerFunc),
	}
	s.registerHandlers()
	return s, nil
}

func (s *GameService) registerHandlers() {
	s.handlers[domain.ActionInit] = handlers.WithEmptyPayload(actions.HandleInit)
	s.handlers[domain.ActionStep] = handlers.WithPayload(actions.HandleStep)
	s.handlers[domain.ActionCastSlot] = handlers.WithPayload(actions.HandleCastSlot)
	s.handlers[domain.ActionDraw] = handlers.WithEmptyPayload(actions.HandleDraw)
	s.handlers[domain.ActionWait] = handlers.WithEmptyPayload(actions.HandleWait)
	s.handlers[domain.ActionCraft] = handlers.WithPayload(actions.HandleCraft)
	s.handlers[domain.ActionEquip] = handlers.WithPayload(actions.HandleEquip)
	s.handlers[domain.ActionRespawn] = handlers.WithEmptyPayload(actions.HandleRespawn)
	s.handlers[domain.ActionCheat] = handlers.WithPayload(admin.HandleCheat)
}

// SetJournal включает запись команд в журнал.
func (s *GameService) SetJournal(j *storage.Journal) {
	s.journal = j
}

func (s *GameService) Start() {
	go s.run()
}

// ProcessCommand принимает команду от внешнего мира (WebSocket, бот).
func (s *GameService) ProcessCommand(externalCmd api.ClientCommand) {
	actionType := domain.ParseAction(externalCmd.Action)
	if actionType == domain.ActionUnknown {
		logger.Log.WithField("action", externalCmd.Action).Warn("Unknown action dropped")
		return
	}

	s.CommandChan <- domain.InternalCommand{
		Action:  actionType,
		Token:   externalCmd.Token,
		Payload: externalCmd.Payload,
	}
}

func (s *GameService) run() {
	logger.Log.Info("Command loop started")
	for cmd := range s.CommandChan {
		s.Execute(cmd)
		s.publishUpdate()
	}
}

// Execute исполняет одну команду. Используется и циклом команд, и
// проигрывателем журнала.
func (s *GameService) Execute(cmd domain.InternalCommand) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handler, ok := s.handlers[cmd.Action]
	if !ok {
		return
	}

	if s.journal != nil && cmd.Action != domain.ActionInit {
		if err := s.journal.Append(storage.Record{
			Turn:    s.session.Turn(),
			Action:  cmd.Action.String(),
			Token:   cmd.Token,
			Payload: cmd.Payload,
		}); err != nil {
			logger.Log.WithError(err).Error("journal append failed")
		}
	}

	result, err := handler(handlers.Context{Game: s.session}, cmd.Payload)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"component": "service",
			"action":    cmd.Action.String(),
		}).WithError(err).Warn("command rejected")
		// Отклоненное действие - сообщение в лог клиента, не тишина.
		s.session.log(err.Error(), "ERROR")
		return
	}

	if result.Msg != "" {
		msgType := result.MsgType
		if msgType == "" {
			msgType = "INFO"
		}
		s.session.log(result.Msg, msgType)
	}
}

// publishUpdate рассылает снимок сессии всем подписчикам.
func (s *GameService) publishUpdate() {
	s.mu.Lock()
	state := s.BuildState()
	s.mu.Unlock()

	s.Hub.Broadcast(*state)
}

// Replay синхронно проигрывает записанные команды. Несовпадение
// номера хода - рассинхрон: мир разошелся с тем, что было при записи.
func (s *GameService) Replay(records []storage.Record) error {
	for i, rec := range records {
		action := domain.ParseAction(rec.Action)
		if action == domain.ActionUnknown {
			return fmt.Errorf("record %d: unknown action %q", i, rec.Action)
		}
		if got := s.session.Turn(); got != rec.Turn {
			logger.Log.WithFields(logrus.Fields{
				"record":   i,
				"expected": rec.Turn,
				"actual":   got,
			}).Warn("replay desync")
		}
		s.Execute(domain.InternalCommand{
			Action:  action,
			Token:   rec.Token,
			Payload: rec.Payload,
		})
	}
	return nil
}

// --- ОТЛАДОЧНЫЕ СРЕЗЫ ---

func (s *GameService) DebugStack() interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.StackDump()
}

func (s *GameService) DebugTurns() interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.TurnsDump()
}

func (s *GameService) DebugCreatures() interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.World().Creatures()
}
