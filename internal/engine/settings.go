package engine

import "time"

// Settings хранит параметры лабиринта и сессий.
// Заполняется из internal/config, движок глобальный конфиг не читает.
type Settings struct {
	Width      int
	Height     int
	Difficulty int
	Wanderers  int
	Treasures  int

	// Seed - мастер-зерно. Сессия N получает Seed + N.
	// 0 - случайное зерно от времени.
	Seed int64

	// StepDelay - пауза между шагами автопрохождения.
	StepDelay time.Duration
}

// NewSettings создает настройки по умолчанию (случайный сид)
func NewSettings() Settings {
	return Settings{
		Width:      25,
		Height:     25,
		Difficulty: 0,
		Wanderers:  1,
		Treasures:  1,
		Seed:       0,
		StepDelay:  50 * time.Millisecond,
	}
}
