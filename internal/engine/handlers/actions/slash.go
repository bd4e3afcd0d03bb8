package actions

import "labyrinth-server/internal/engine/handlers"

func HandleSlash(ctx handlers.Context) (handlers.Result, error) {
	ctx.Game.DoSlash()
	return handlers.EmptyResult(), nil
}
