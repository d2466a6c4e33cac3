package engine

import "time"

// Config хранит параметры запуска движка
type Config struct {
	// Seed - зерно сессии. Вся генерация и все случайные решения
	// выводятся из него.
	Seed int64
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed: time.Now().UnixNano(),
	}
}
