package actions

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labyrinth-server/internal/domain"
	"labyrinth-server/internal/engine/handlers"
)

type fakeGame struct {
	moves     []domain.Direction
	slashes   int
	interacts int
	canSolve  bool
}

func (g *fakeGame) MovePlayer(dir domain.Direction) { g.moves = append(g.moves, dir) }
func (g *fakeGame) DoSlash() { g.slashes++ }
func (g *fakeGame) DoInteraction() { g.interacts++ }
func (g *fakeGame) CanAutoSolve() bool { return g.canSolve }

type fakeLevels struct{ regenerated int }

func (l *fakeLevels) Regenerate() { l.regenerated++ }

type fakePilot struct {
	running bool
	starts  int
}

func (p *fakePilot) Start() error {
	p.starts++
	p.running = true
	return nil
}
func (p *fakePilot) Stop() { p.running = false }
func (p *fakePilot) Running() bool { return p.running }

func TestHandleMove(t *testing.T) {
	move := handlers.WithPayload(HandleMove)

	tests := []struct {
		name    string
		payload string
		want    domain.Direction
		wantErr bool
	}{
		{"direction", `{"direction":"UP"}`, domain.DirUp, false},
		{"lowercase", `{"direction":"right"}`, domain.DirRight, false},
		{"delta", `{"dx":-1}`, domain.DirLeft, false},
		{"delta down", `{"dy":1}`, domain.DirDown, false},
		{"diagonal", `{"dx":1,"dy":1}`, domain.DirNone, true},
		{"zero", `{}`, domain.DirNone, true},
		{"garbage", `{"direction":`, domain.DirNone, true},
		{"empty", ``, domain.DirNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := &fakeGame{}
			_, err := move(handlers.Context{Game: game}, json.RawMessage(tt.payload))
			if tt.wantErr {
				require.Error(t, err)
				assert.Empty(t, game.moves, "невалидный ввод не должен двигать игрока")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []domain.Direction{tt.want}, game.moves)
		})
	}
}

func TestEmptyPayloadHandlers(t *testing.T) {
	game := &fakeGame{}
	ctx := handlers.Context{Game: game}

	_, err := handlers.WithEmptyPayload(HandleSlash)(ctx, json.RawMessage(`{"ignored":true}`))
	require.NoError(t, err)
	_, err = handlers.WithEmptyPayload(HandleInteract)(ctx, nil)
	require.NoError(t, err)
	res, err := handlers.WithEmptyPayload(HandleInit)(ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, game.slashes)
	assert.Equal(t, 1, game.interacts)
	assert.NotEmpty(t, res.Msg)
	assert.Equal(t, "INFO", res.MsgType)
}

func TestHandleRegenerate(t *testing.T) {
	_, err := HandleRegenerate(handlers.Context{Game: &fakeGame{}})
	assert.ErrorIs(t, err, ErrNoLevelControl)

	levels := &fakeLevels{}
	_, err = HandleRegenerate(handlers.Context{Game: &fakeGame{}, Levels: levels})
	require.NoError(t, err)
	assert.Equal(t, 1, levels.regenerated)
}

func TestHandleAutoSolve(t *testing.T) {
	game := &fakeGame{}

	_, err := HandleAutoSolve(handlers.Context{Game: game})
	assert.ErrorIs(t, err, ErrNoPilot)

	pilot := &fakePilot{}
	ctx := handlers.Context{Game: game, Pilot: pilot}

	res, err := HandleAutoSolve(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ERROR", res.MsgType)
	assert.Zero(t, pilot.starts)

	game.canSolve = true
	_, err = HandleAutoSolve(ctx)
	require.NoError(t, err)
	_, err = HandleAutoSolve(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, pilot.starts, "повторный старт игнорируется")

	_, err = HandleStop(ctx)
	require.NoError(t, err)
	assert.False(t, pilot.Running())
}
