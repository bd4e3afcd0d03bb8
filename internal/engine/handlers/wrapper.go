package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"labyrinth-server/pkg/api"
)

var (
	// ErrNoPayload - команда с данными (MOVE) пришла без payload.
	ErrNoPayload = errors.New("payload required")
	// ErrMalformedPayload - payload не разбирается в структуру команды.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrRejectedPayload - payload разобран, но Validate его отклонил.
	ErrRejectedPayload = errors.New("payload rejected")
)

// TypedHandlerFunc - хендлер команды над разобранным payload.
type TypedHandlerFunc[T any] func(ctx Context, payload T) (Result, error)

// EmptyHandlerFunc - хендлер команды без данных (SLASH, INTERACT, REGENERATE...).
type EmptyHandlerFunc func(ctx Context) (Result, error)

// WithPayload разбирает payload в T строго: неизвестные поля (опечатка
// "dir" вместо "direction") отклоняются, а не превращаются в нулевой шаг.
// Если T реализует api.Validator, проверка выполняется до вызова хендлера.
// Ни одна ошибка разбора не доходит до мира: тик не тратится.
func WithPayload[T any](handler TypedHandlerFunc[T]) HandlerFunc {
	return func(ctx Context, raw json.RawMessage) (Result, error) {
		payload, err := decodePayload[T](raw)
		if err != nil {
			return Result{}, err
		}
		return handler(ctx, payload)
	}
}

// WithEmptyPayload - обертка для команд без данных. Payload игнорируется.
func WithEmptyPayload(handler EmptyHandlerFunc) HandlerFunc {
	return func(ctx Context, _ json.RawMessage) (Result, error) {
		return handler(ctx)
	}
}

func decodePayload[T any](raw json.RawMessage) (T, error) {
	var payload T

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return payload, ErrNoPayload
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return payload, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if dec.More() {
		return payload, fmt.Errorf("%w: trailing data", ErrMalformedPayload)
	}

	if v, ok := any(payload).(api.Validator); ok {
		if err := v.Validate(); err != nil {
			return payload, fmt.Errorf("%w: %v", ErrRejectedPayload, err)
		}
	}
	return payload, nil
}
