package systems

import (
	"synapse-server/internal/domain"
)

// DashResult - результат вычисления рывка
type DashResult struct {
	Dest  domain.Position
	Moved bool
}

// CalculateDash вычисляет скольжение существа по направлению (dx, dy)
// до maxDistance клеток. Не меняет состояние мира!
//
// Осязаемый рывок останавливается за клетку до первой непроходимой;
// неосязаемое существо игнорирует препятствия.
func CalculateDash(m *domain.Map, dasher *domain.Creature, dx, dy, maxDistance int) DashResult {
	cursor := dasher.Pos
	for travelled := 0; travelled < maxDistance; travelled++ {
		next := cursor.Shift(dx, dy)
		if !dasher.Tangible() || m.IsPassable(next) {
			cursor = next
			continue
		}
		break
	}
	return DashResult{Dest: cursor, Moved: cursor != dasher.Pos}
}

// CalculateStep вычисляет клетку назначения одиночного шага.
func CalculateStep(c *domain.Creature, dir domain.OrdDir) domain.Position {
	dx, dy := dir.Offset()
	return c.Pos.Shift(dx, dy)
}
