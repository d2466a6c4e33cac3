package handlers

import (
	"encoding/json"

	"synapse-server/internal/domain"

	"github.com/google/uuid"
)

// Game описывает операции сессии, доступные хендлерам команд.
// engine.Session реализует этот интерфейс.
type Game interface {
	PlayerStep(dir domain.OrdDir) error
	PlayerCastSlot(slot int) error
	PlayerDraw() error
	PlayerWait() error
	Craft(placements map[domain.Position]domain.Soul) error
	Equip(spellID uuid.UUID) error
	Respawn() error

	CheatHeal() error
	CheatSmite() error
	CheatSpawn(species string, pos domain.Position) error
}

// Context передает хендлеру доступ к сессии.
type Context struct {
	Game Game
}

// Result - результат выполнения команды. Хендлер НЕ пишет в логи
// сервиса напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (INFO, COMBAT, ERROR)
}

// HandlerFunc - контракт для любой команды (STEP, CAST_SLOT, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}
