package domain

// Параметры лучей и заклинаний
const (
	// DefaultBeamRange - максимальная длина луча по умолчанию.
	DefaultBeamRange = 10

	// MaxContingencyDepth - бюджет автокастов по триггеру на существо
	// за одну фазу разрешения. Гарантирует завершение циклов
	// "урон -> триггер -> урон".
	MaxContingencyDepth = 8
)

// Параметры боя
const (
	BaseMeleeDamage = 1
)
