package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateID выдает короткий случайный идентификатор (16 hex-символов).
// Используется для токенов клиентов и записей лога; для идентичности
// заклинаний есть uuid.
func GenerateID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		panic("utils: random source unavailable: " + err.Error())
	}
	return hex.EncodeToString(b)
}
