package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Lifecycle(t *testing.T) {
	svc := NewService(testSettings())

	a, err := svc.Create()
	require.NoError(t, err)
	b, err := svc.Create()
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	got, err := svc.Get(a.ID)
	require.NoError(t, err)
	assert.Same(t, a, got)

	list := svc.List()
	require.Len(t, list, 2)

	svc.Remove(a.ID)
	svc.Remove(a.ID)
	_, err = svc.Get(a.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	svc.Shutdown()
	assert.Empty(t, svc.List())
}

func TestService_UnknownSession(t *testing.T) {
	svc := NewService(testSettings())
	_, err := svc.Get(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestService_SeededSessionsRepeat(t *testing.T) {
	first, err := NewService(testSettings()).Create()
	require.NoError(t, err)
	second, err := NewService(testSettings()).Create()
	require.NoError(t, err)

	assert.Equal(t, first.Snapshot().Walls.Slice(), second.Snapshot().Walls.Slice())
	assert.Equal(t, first.Snapshot().Exit, second.Snapshot().Exit)
}
