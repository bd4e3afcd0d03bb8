package handlers

import (
	"encoding/json"

	"labyrinth-server/internal/domain"
)

// Game - операции мира, доступные командам.
// engine.World неявно реализует этот интерфейс.
type Game interface {
	MovePlayer(dir domain.Direction)
	DoSlash()
	DoInteraction()
	CanAutoSolve() bool
}

// LevelControl - пересоздание уровня (engine.Campaign).
type LevelControl interface {
	Regenerate()
}

// AutoPilot - автопрохождение (agent.Solver).
type AutoPilot interface {
	Start() error
	Stop()
	Running() bool
}

// Context передает хендлеру состояние сессии.
type Context struct {
	Game   Game
	Levels LevelControl
	Pilot  AutoPilot // может быть nil, если автопилот не подключен
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в журнал мира напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (INFO, ERROR)
}

// HandlerFunc - это контракт для любой команды (MOVE, SLASH, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}
