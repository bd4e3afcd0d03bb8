package actions

import (
	"errors"

	"labyrinth-server/internal/engine/handlers"
)

var ErrNoPilot = errors.New("auto-solver is not attached")

// HandleAutoSolve запускает автопрохождение. Нужны мертвые противники и открытый маршрут.
func HandleAutoSolve(ctx handlers.Context) (handlers.Result, error) {
	if ctx.Pilot == nil {
		return handlers.EmptyResult(), ErrNoPilot
	}
	if !ctx.Game.CanAutoSolve() {
		return handlers.Result{
			Msg:     "Defeat every adversary and find the treasure first.",
			MsgType: "ERROR",
		}, nil
	}
	if ctx.Pilot.Running() {
		return handlers.EmptyResult(), nil
	}
	if err := ctx.Pilot.Start(); err != nil {
		return handlers.EmptyResult(), err
	}
	return handlers.Result{Msg: "Auto-solve engaged.", MsgType: "INFO"}, nil
}

// HandleStop останавливает автопрохождение.
func HandleStop(ctx handlers.Context) (handlers.Result, error) {
	if ctx.Pilot == nil || !ctx.Pilot.Running() {
		return handlers.EmptyResult(), nil
	}
	ctx.Pilot.Stop()
	return handlers.Result{Msg: "Auto-solve stopped.", MsgType: "INFO"}, nil
}
