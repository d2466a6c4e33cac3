package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log - глобальный логгер приложения. Пакеты пишут через него
// структурированные записи с полем "component".
var Log *logrus.Logger

// Init настраивает глобальный логгер. Вызывается один раз на старте
// (main или TestMain).
//
// Переменные окружения:
//
//	LOG_LEVEL  - уровень (debug, info, warn, error), по умолчанию info
//	LOG_FORMAT - "json" для сбора логов, иначе цветной текст
func Init() {
	Log = logrus.New()

	level, err := logrus.ParseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
