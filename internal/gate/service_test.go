package gate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusDefaultsOpen(t *testing.T) {
	service := NewService(NewMemoryStore(), nil)

	state, err := service.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, state.IsClosed)
	assert.Nil(t, state.LastUpdated)
}

func TestCloseThenOpen(t *testing.T) {
	service := NewService(NewMemoryStore(), nil)
	ctx := context.Background()

	require.NoError(t, service.Close(ctx))
	state, err := service.Status(ctx)
	require.NoError(t, err)
	assert.True(t, state.IsClosed)
	require.NotNil(t, state.LastUpdated)
	assert.WithinDuration(t, time.Now(), *state.LastUpdated, 2*time.Second)

	require.NoError(t, service.Open(ctx))
	state, err = service.Status(ctx)
	require.NoError(t, err)
	assert.False(t, state.IsClosed)
	require.NotNil(t, state.LastUpdated)
}

func TestCloseIsIdempotentAndRefreshesTimestamp(t *testing.T) {
	service := NewService(NewMemoryStore(), nil)
	ctx := context.Background()

	require.NoError(t, service.Close(ctx))
	first, err := service.Status(ctx)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, service.Close(ctx))
	second, err := service.Status(ctx)
	require.NoError(t, err)

	assert.True(t, second.IsClosed)
	assert.True(t, second.LastUpdated.After(*first.LastUpdated))
}
