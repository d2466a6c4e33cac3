package systems

import (
	"synapse-server/internal/domain"
)

// CollisionVerdict - исход столкновения двух существ.
type CollisionVerdict uint8

const (
	// VerdictBounce: преграда неуязвима к ближнему бою - виновник
	// остается на месте, шаг игрока аннулируется.
	VerdictBounce CollisionVerdict = iota
	// VerdictOpenDoor: преграда - дверь, она открывается.
	VerdictOpenDoor
	// VerdictPush: преграда толкаема и за ней свободно - толкаем.
	VerdictPush
	// VerdictAttack: обычный ближний бой.
	VerdictAttack
)

// CollisionResult - результат разбора столкновения
type CollisionResult struct {
	Verdict   CollisionVerdict
	CrateDest domain.Position // куда уезжает толкаемое (для VerdictPush)
}

// ResolveCollision решает, чем кончается столкновение culprit с collided
// при движении в направлении dir. Не меняет состояние мира!
//
// Порядок проверок фиксирован: дверь, толчок, ближний бой, отскок.
func ResolveCollision(m *domain.Map, culprit, collided *domain.Creature, dir domain.OrdDir) CollisionResult {
	if collided.Flags.Door {
		return CollisionResult{Verdict: VerdictOpenDoor}
	}

	if collided.Flags.Pushable {
		dx, dy := dir.Offset()
		behind := collided.Pos.Shift(dx, dy)
		if m.IsPassable(behind) {
			return CollisionResult{Verdict: VerdictPush, CrateDest: behind}
		}
	}

	if !collided.Flags.MeleeProof {
		return CollisionResult{Verdict: VerdictAttack}
	}

	return CollisionResult{Verdict: VerdictBounce}
}
