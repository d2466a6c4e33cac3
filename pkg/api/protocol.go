package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse - корневой объект, который сервер отправляет клиенту.
// Это полный снимок сессии после очередной фазы разрешения плюс
// лента событий для фазы анимации.
type ServerResponse struct {
	// Type тип сообщения. На данный момент всегда "UPDATE".
	Type string `json:"type"`

	// Turn номер завершенного хода.
	Turn int `json:"turn"`

	// MyEntityID ID существа, которым управляет данный клиент.
	MyEntityID string `json:"myEntityId,omitempty"`

	// Entities срез всех существ сессии.
	Entities []EntityView `json:"entities,omitempty"`

	// Wheel колесо душ игрока.
	Wheel *WheelView `json:"wheel,omitempty"`

	// Spellbook экипированные заклинания игрока (по слоту на касту).
	Spellbook []SpellView `json:"spellbook,omitempty"`

	// Library скрафченные, но не экипированные заклинания.
	Library []SpellView `json:"library,omitempty"`

	// Events лента событий с прошлого снимка. Порядок событий -
	// порядок их разрешения; презентация проигрывает их как анимацию.
	Events []GameEvent `json:"events,omitempty"`

	// Logs новые сообщения игрового лога.
	Logs []LogEntry `json:"logs,omitempty"`
}

// GameEvent - одно событие фазы анимации.
type GameEvent struct {
	// Kind: ENTITY_MOVED, MOMENTUM_CHANGED, HEALTH_CHANGED, DOOR_OPENED,
	// STATUS_APPLIED, TRANSFORMED, ENTITY_SPAWNED, ENTITY_REMOVED,
	// MAGIC_VFX, MAGIC_VFX_CLEARED, TURN_ADVANCED, TURN_REJECTED.
	Kind string `json:"kind"`

	Entity string `json:"entity,omitempty"`

	From *PositionView `json:"from,omitempty"`
	To   *PositionView `json:"to,omitempty"`

	// Slide true - плавное скольжение, false - мгновенный скачок.
	Slide bool `json:"slide,omitempty"`

	// Amount для HEALTH_CHANGED: отрицательное значение - урон.
	Amount int `json:"amount,omitempty"`

	Direction string `json:"direction,omitempty"`
	Status    string `json:"status,omitempty"`
	Species   string `json:"species,omitempty"`

	// Поля визуальных эффектов заклинаний.
	Positions []PositionView `json:"positions,omitempty"`
	Sequence  string         `json:"sequence,omitempty"`
	VfxKind   string         `json:"vfxKind,omitempty"`
	Decay     float64        `json:"decay,omitempty"`

	Turn int `json:"turnNumber,omitempty"`
}

// PositionView - координата на сетке (Y растет вверх).
type PositionView struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// EntityView - DTO существа.
type EntityView struct {
	ID       string       `json:"id"`
	Species  string       `json:"species"`
	Glyph    string       `json:"glyph"`
	Pos      PositionView `json:"pos"`
	Momentum string       `json:"momentum"`

	HP    int `json:"hp"`
	MaxHP int `json:"maxHp"`

	Soul     string       `json:"soul,omitempty"`
	Statuses []StatusView `json:"statuses,omitempty"`

	IsPlayer bool `json:"isPlayer,omitempty"`
}

// StatusView - активный статус-эффект существа.
type StatusView struct {
	Kind    string `json:"kind"`
	Potency int    `json:"potency"`
	// Stacks оставшихся ходов; 0 - бесконечный эффект.
	Stacks int `json:"stacks,omitempty"`
}

// WheelView - колесо душ игрока.
type WheelView struct {
	// Slots всегда длины 8; пустой слот - "EMPTY".
	Slots     []string `json:"slots"`
	PileCount int      `json:"pileCount"`
}

// SpellView - DTO заклинания.
type SpellView struct {
	ID          string   `json:"id"`
	Caste       string   `json:"caste"`
	Icon        int      `json:"icon"`
	Description string   `json:"description,omitempty"`
	Axioms      []string `json:"axioms"`
}

// LogEntry представляет одну запись в игровом логе.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, COMBAT, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand - корневой объект для всех сообщений от клиента.
type ClientCommand struct {
	// Token ID клиента, от имени которого выполняется действие.
	Token string `json:"token,omitempty"`

	// Action название действия (STEP, CAST_SLOT, DRAW, ...).
	Action string `json:"action"`

	// Payload JSON-объект с данными. Структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// StepPayload используется для STEP.
type StepPayload struct {
	Direction string `json:"direction"` // UP, DOWN, RIGHT, LEFT
}

// CastSlotPayload используется для CAST_SLOT: каст из слота колеса душ.
type CastSlotPayload struct {
	Slot int `json:"slot"`
}

// SoulPlacement - одна душа, выложенная на верстак крафта.
type SoulPlacement struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Soul string `json:"soul"`
}

// CraftPayload используется для CRAFT.
type CraftPayload struct {
	Placements []SoulPlacement `json:"placements"`
}

// EquipPayload используется для EQUIP: заклинание из библиотеки в книгу.
type EquipPayload struct {
	SpellID string `json:"spellId"`
}

// CheatPayload используется для CHEAT (отладочные команды).
type CheatPayload struct {
	Command string `json:"command"` // HEAL, SMITE, SPAWN, REVEAL_STACK
	Species string `json:"species,omitempty"`
	X       int    `json:"x,omitempty"`
	Y       int    `json:"y,omitempty"`
}
