package actions

import (
	"fmt"

	"labyrinth-server/internal/domain"
	"labyrinth-server/internal/engine/handlers"
	"labyrinth-server/pkg/api"
)

func HandleMove(ctx handlers.Context, p api.DirectionPayload) (handlers.Result, error) {
	dir, err := directionOf(p)
	if err != nil {
		return handlers.EmptyResult(), err
	}

	ctx.Game.MovePlayer(dir)
	return handlers.EmptyResult(), nil
}

// directionOf переводит payload в направление: строка важнее смещения.
func directionOf(p api.DirectionPayload) (domain.Direction, error) {
	if p.Direction != "" {
		dir, ok := domain.ParseDirection(p.Direction)
		if !ok || dir == domain.DirNone {
			return domain.DirNone, fmt.Errorf("unknown direction %q", p.Direction)
		}
		return dir, nil
	}

	dir, ok := domain.DirectionFromDelta(p.Dx, p.Dy)
	if !ok || dir == domain.DirNone {
		return domain.DirNone, fmt.Errorf("bad step (%d,%d)", p.Dx, p.Dy)
	}
	return dir, nil
}
