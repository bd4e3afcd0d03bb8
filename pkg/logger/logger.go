package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
// До вызова Init пишет в stderr с уровнем info, чтобы пакеты можно было
// использовать в тестах и утилитах без явной инициализации.
var Log = logrus.New()

// Init настраивает глобальный логгер.
// level и format приходят из конфига; переменные окружения LOG_LEVEL и
// LOG_FORMAT имеют приоритет (удобно для отладки без правки файла).
func Init(level, format string) {
	Log = logrus.New()

	// 1. Уровень логирования. По умолчанию - "info".
	if env, ok := os.LookupEnv("LOG_LEVEL"); ok {
		level = env
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	// 2. Форматтер.
	// "json" - для продакшена и сбора логов.
	// "text" - для удобной разработки.
	if env, ok := os.LookupEnv("LOG_FORMAT"); ok {
		format = env
	}
	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// Redirect переключает вывод логгера (терминальный фронтенд занимает stdout
// под экран, поэтому пишет лог в файл).
func Redirect(w io.Writer) {
	Log.SetOutput(w)
}
