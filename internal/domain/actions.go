package domain

import "strings"

// ActionType - Внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionStep
	ActionCastSlot
	ActionDraw
	ActionWait
	ActionCraft
	ActionEquip
	ActionRespawn
	ActionCheat
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":      ActionInit,
	"STEP":      ActionStep,
	"CAST_SLOT": ActionCastSlot,
	"DRAW":      ActionDraw,
	"WAIT":      ActionWait,
	"CRAFT":     ActionCraft,
	"EQUIP":     ActionEquip,
	"RESPAWN":   ActionRespawn,
	"CHEAT":     ActionCheat,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionInit:     "INIT",
	ActionStep:     "STEP",
	ActionCastSlot: "CAST_SLOT",
	ActionDraw:     "DRAW",
	ActionWait:     "WAIT",
	ActionCraft:    "CRAFT",
	ActionEquip:    "EQUIP",
	ActionRespawn:  "RESPAWN",
	ActionCheat:    "CHEAT",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
