package engine

// TurnManager считает завершенные ходы и помнит, признано ли текущее
// действие игрока состоявшимся. Аннулированное действие (например,
// шаг в неуязвимую стену) не продвигает счетчик и не дает ход NPC.
type TurnManager struct {
	turn  int
	valid bool
}

func NewTurnManager() *TurnManager {
	return &TurnManager{}
}

// Turn возвращает номер текущего хода (число завершенных действий).
func (t *TurnManager) Turn() int {
	return t.turn
}

// Begin открывает новое действие игрока. Действие считается
// состоявшимся, пока его не аннулировали.
func (t *TurnManager) Begin() {
	t.valid = true
}

// Invalidate аннулирует текущее действие.
func (t *TurnManager) Invalidate() {
	t.valid = false
}

// Valid - состоялось ли текущее действие.
func (t *TurnManager) Valid() bool {
	return t.valid
}

// Advance завершает ход.
func (t *TurnManager) Advance() {
	t.turn++
}

// TurnDump - снимок для отладочной выдачи.
type TurnDump struct {
	Turn        int  `json:"turn"`
	ActionValid bool `json:"action_valid"`
}

func (t *TurnManager) DebugDump() TurnDump {
	return TurnDump{Turn: t.turn, ActionValid: t.valid}
}
