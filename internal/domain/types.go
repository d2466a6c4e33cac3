package domain

import "strings"

// Position - координата клетки на сетке. Сравнение и хеш по значению.
// Сетка концептуально бесконечна: никаких проверок границ здесь нет.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewPosition создает новую позицию.
func NewPosition(x, y int) Position {
	return Position{X: x, Y: y}
}

// Shift возвращает новую позицию со смещением (не меняя текущую,
// т.к. Go передает структуры по значению).
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan возвращает манхэттенское расстояние до другой точки.
func (p Position) Manhattan(other Position) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// IsOrthogonallyAdjacent - true, если цель в соседней клетке по кресту.
func (p Position) IsOrthogonallyAdjacent(other Position) bool {
	return p.Manhattan(other) == 1
}

// OrdDir - одно из 4 кардинальных направлений.
// Порядок констант важен: Up, Down, Right, Left - это фиксированный
// порядок обхода соседей, от него зависит детерминизм AI (tie-breaking).
type OrdDir uint8

const (
	DirUp OrdDir = iota
	DirDown
	DirRight
	DirLeft
)

// CardinalDirs - все направления в фиксированном порядке обхода.
var CardinalDirs = [4]OrdDir{DirUp, DirDown, DirRight, DirLeft}

// Offset возвращает смещение клетки для направления. Ось Y растет вверх.
func (d OrdDir) Offset() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, 1
	case DirDown:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirLeft:
		return -1, 0
	}
	return 0, 0
}

// Opposite возвращает противоположное направление.
func (d OrdDir) Opposite() OrdDir {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirRight:
		return DirLeft
	default:
		return DirRight
	}
}

// Маппинг для конвертации JSON -> Domain
var dirStringToCmd = map[string]OrdDir{
	"UP":    DirUp,
	"DOWN":  DirDown,
	"RIGHT": DirRight,
	"LEFT":  DirLeft,
}

// Маппинг для логов Domain -> String
var dirCmdToString = map[OrdDir]string{
	DirUp:    "UP",
	DirDown:  "DOWN",
	DirRight: "RIGHT",
	DirLeft:  "LEFT",
}

// ParseDir конвертирует строку из JSON в OrdDir.
func ParseDir(s string) (OrdDir, bool) {
	val, ok := dirStringToCmd[strings.ToUpper(s)]
	return val, ok
}

// String реализует интерфейс Stringer (для fmt.Printf).
func (d OrdDir) String() string {
	if val, ok := dirCmdToString[d]; ok {
		return val
	}
	return "UNKNOWN"
}

// DirFromDelta восстанавливает направление из единичного смещения.
func DirFromDelta(dx, dy int) (OrdDir, bool) {
	switch {
	case dx == 0 && dy == 1:
		return DirUp, true
	case dx == 0 && dy == -1:
		return DirDown, true
	case dx == 1 && dy == 0:
		return DirRight, true
	case dx == -1 && dy == 0:
		return DirLeft, true
	}
	return DirUp, false
}
