package agent

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labyrinth-server/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("error", "text")
	os.Exit(m.Run())
}

// countdown возвращает more == true, пока не сделает limit шагов.
type countdown struct {
	limit int32
	steps atomic.Int32
	err   error
	block chan struct{}
}

func (c *countdown) AutoStep(ctx context.Context) (bool, error) {
	if c.block != nil {
		select {
		case <-c.block:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	if c.err != nil {
		return false, c.err
	}
	n := c.steps.Add(1)
	return n < c.limit, nil
}

func waitDone(t *testing.T, s *Solver) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("solver did not finish")
	}
}

func TestSolver_RunsUntilRouteEnds(t *testing.T) {
	st := &countdown{limit: 5}
	s := NewSolver(st, time.Millisecond)

	require.NoError(t, s.Start())
	require.NoError(t, s.Start())
	waitDone(t, s)

	assert.Equal(t, int32(5), st.steps.Load())
	assert.False(t, s.Running())
}

func TestSolver_StopsOnError(t *testing.T) {
	st := &countdown{limit: 100, err: errors.New("locked")}
	s := NewSolver(st, time.Millisecond)

	require.NoError(t, s.Start())
	waitDone(t, s)

	assert.Equal(t, int32(0), st.steps.Load())
	assert.False(t, s.Running())
}

func TestSolver_StopDoesNotWait(t *testing.T) {
	st := &countdown{limit: 100, block: make(chan struct{})}
	s := NewSolver(st, time.Millisecond)

	require.NoError(t, s.Start())
	assert.True(t, s.Running())

	s.Stop()
	assert.False(t, s.Running())
	waitDone(t, s)
	assert.Equal(t, int32(0), st.steps.Load())
}

func TestSolver_DoneBeforeStart(t *testing.T) {
	s := NewSolver(&countdown{}, 0)
	waitDone(t, s)
	assert.False(t, s.Running())
}
