package actions

import (
	"errors"

	"labyrinth-server/internal/engine/handlers"
)

var ErrNoLevelControl = errors.New("level control is not attached")

func HandleRegenerate(ctx handlers.Context) (handlers.Result, error) {
	if ctx.Levels == nil {
		return handlers.EmptyResult(), ErrNoLevelControl
	}
	ctx.Levels.Regenerate()
	return handlers.Result{Msg: "The walls shift around you.", MsgType: "INFO"}, nil
}
