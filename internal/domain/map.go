package domain

import (
	"math"
	"sort"
)

// Map - индекс занятости: позиция -> осязаемое существо на ней.
// Инвариант: не более одного осязаемого существа на клетку;
// неосязаемые в индексе не числятся вовсе.
//
// Все запросы тотальны над произвольными целыми координатами:
// никаких паник на "выход за границы" - границ нет.
type Map struct {
	occupants map[Position]EntityID
}

func NewMap() *Map {
	return &Map{occupants: make(map[Position]EntityID)}
}

// IsPassable - true, если на клетке нет осязаемого существа.
func (m *Map) IsPassable(pos Position) bool {
	_, occupied := m.occupants[pos]
	return !occupied
}

// OccupantAt возвращает осязаемое существо на клетке.
func (m *Map) OccupantAt(pos Position) (EntityID, bool) {
	id, ok := m.occupants[pos]
	return id, ok
}

// Insert регистрирует существо на клетке (начальное размещение).
func (m *Map) Insert(pos Position, id EntityID) {
	m.occupants[pos] = id
}

// Remove снимает запись, только если она все еще принадлежит id.
// Защита от выселения существа, уже занявшего эту клетку.
func (m *Map) Remove(pos Position, id EntityID) bool {
	if current, ok := m.occupants[pos]; ok && current == id {
		delete(m.occupants, pos)
		return true
	}
	return false
}

// MoveOccupant переносит запись со старой клетки на новую.
// Если на старой записи не было - тихий no-op: вызывающий не должен
// использовать это для первичного размещения.
func (m *Map) MoveOccupant(old, new Position) {
	id, ok := m.occupants[old]
	if !ok {
		return
	}
	delete(m.occupants, old)
	m.occupants[new] = id
}

// Len возвращает число занятых клеток.
func (m *Map) Len() int {
	return len(m.occupants)
}

// Adjacent возвращает 4 соседние клетки в фиксированном порядке
// Up, Down, Right, Left.
func (m *Map) Adjacent(pos Position) [4]Position {
	var out [4]Position
	for i, dir := range CardinalDirs {
		dx, dy := dir.Offset()
		out[i] = pos.Shift(dx, dy)
	}
	return out
}

// ClosestStepToward выбирает среди 4 соседних клеток ту, что
// минимизирует манхэттенское расстояние до destination. Годятся
// только сама destination или проходимые клетки. Ничьи разрешает
// фиксированный порядок обхода (стабильная сортировка).
func (m *Map) ClosestStepToward(start, destination Position) (OrdDir, bool) {
	dirs := make([]OrdDir, len(CardinalDirs))
	copy(dirs, CardinalDirs[:])

	sort.SliceStable(dirs, func(i, j int) bool {
		di, dj := dirs[i], dirs[j]
		dxi, dyi := di.Offset()
		dxj, dyj := dj.Offset()
		return start.Shift(dxi, dyi).Manhattan(destination) <
			start.Shift(dxj, dyj).Manhattan(destination)
	})

	for _, dir := range dirs {
		dx, dy := dir.Offset()
		next := start.Shift(dx, dy)
		if next == destination || m.IsPassable(next) {
			return dir, true
		}
	}
	return DirUp, false
}

// TraceBeam трассирует луч из origin по смещению (dx, dy), начиная
// с клетки через одну от origin. Клетка, остановившая луч, всегда
// включается в результат. Не длиннее maxRange клеток.
func (m *Map) TraceBeam(origin Position, dx, dy, maxRange int) []Position {
	var out []Position
	cursor := origin
	for travelled := 0; travelled < maxRange; travelled++ {
		cursor = cursor.Shift(dx, dy)
		// Новая клетка добавляется всегда, даже непроходимая...
		out = append(out, cursor)
		// ...но на непроходимой луч останавливается.
		if !m.IsPassable(cursor) {
			break
		}
	}
	return out
}

// Ring возвращает контур окружности радиуса radius вокруг center:
// 8-симметричная целочисленная генерация точек, дедупликация по
// точному совпадению координат, сортировка по atan2 от центра
// (обход по кругу начиная от угла 0).
func (m *Map) Ring(center Position, radius int) []Position {
	var circle []Position
	seen := make(map[Position]bool)

	bound := int(math.Floor(float64(radius) * math.Sqrt(0.5)))
	for r := 0; r <= bound; r++ {
		d := int(math.Floor(math.Sqrt(float64(radius*radius - r*r))))
		adds := [8]Position{
			{X: center.X - d, Y: center.Y + r},
			{X: center.X + d, Y: center.Y + r},
			{X: center.X - d, Y: center.Y - r},
			{X: center.X + d, Y: center.Y - r},
			{X: center.X + r, Y: center.Y - d},
			{X: center.X + r, Y: center.Y + d},
			{X: center.X - r, Y: center.Y - d},
			{X: center.X - r, Y: center.Y + d},
		}
		for _, add := range adds {
			if !seen[add] {
				seen[add] = true
				circle = append(circle, add)
			}
		}
	}

	sort.SliceStable(circle, func(i, j int) bool {
		return angleFromCenter(center, circle[i]) < angleFromCenter(center, circle[j])
	})
	return circle
}

// angleFromCenter - угол точки окружности относительно центра,
// нормированный в [0, 2*pi), чтобы обход начинался от угла 0.
func angleFromCenter(center, point Position) float64 {
	angle := math.Atan2(float64(point.Y-center.Y), float64(point.X-center.X))
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}
