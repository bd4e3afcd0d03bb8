package actions

import "labyrinth-server/internal/engine/handlers"

// HandleInteract - взаимодействие с объектом перед игроком.
func HandleInteract(ctx handlers.Context) (handlers.Result, error) {
	ctx.Game.DoInteraction()
	return handlers.EmptyResult(), nil
}
