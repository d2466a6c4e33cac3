package systems

import (
	"synapse-server/internal/domain"
)

// MeleeStrike вычисляет урон удара в ближнем бою: 1 базовый плюс
// бонус активного статуса Stab. Использованный Stab снимается
// (сбрасывается в 0 стаков).
func MeleeStrike(attacker *domain.Creature) int {
	damage := domain.BaseMeleeDamage
	if bonus := attacker.Statuses.Potency(domain.StatusStab); bonus > 0 {
		damage += bonus
		attacker.Statuses.Remove(domain.StatusStab)
	}
	return damage
}
