package actions

import "labyrinth-server/internal/engine/handlers"

// HandleInit - первая отрисовка клиента. Сессия публикует сообщение
// вместе со свежим снимком.
func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{
		Msg:     "Welcome to the labyrinth.",
		MsgType: "INFO",
	}, nil
}
