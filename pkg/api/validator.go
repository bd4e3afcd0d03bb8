package api

import (
	"errors"
	"strings"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

var validDirections = map[string]bool{"UP": true, "DOWN": true, "LEFT": true, "RIGHT": true}

func (p DirectionPayload) Validate() error {
	if p.Direction != "" {
		if p.Dx != 0 || p.Dy != 0 {
			return errors.New("use either direction or dx/dy")
		}
		if !validDirections[strings.ToUpper(strings.TrimSpace(p.Direction))] {
			return errors.New("unknown direction")
		}
		return nil
	}

	if p.Dx == 0 && p.Dy == 0 {
		return errors.New("movement vector cannot be zero")
	}
	if p.Dx < -1 || p.Dx > 1 || p.Dy < -1 || p.Dy > 1 {
		return errors.New("movement step too large")
	}
	if p.Dx != 0 && p.Dy != 0 {
		return errors.New("diagonal movement is not allowed")
	}
	return nil
}
