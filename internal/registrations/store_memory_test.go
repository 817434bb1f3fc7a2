package registrations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiesta-events/backend/internal/models"
)

func TestMemoryStoreListNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		reg := &models.Registration{
			Name:      "Attendee",
			PassID:    string(rune('A' + i)),
			Status:    models.StatusPending,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, store.Create(ctx, reg))
	}

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "C", list[0].PassID)
	assert.Equal(t, "B", list[1].PassID)
	assert.Equal(t, "A", list[2].PassID)
}

func TestMemoryStoreListTieBreakDeterministic(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	at := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Create(ctx, &models.Registration{
			Name: "Attendee", Status: models.StatusPending, CreatedAt: at,
		}))
	}

	first, err := store.List(ctx)
	require.NoError(t, err)
	second, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second, "equal timestamps order by id, stable across calls")
	for i := 1; i < len(first); i++ {
		assert.True(t, first[i-1].ID.String() > first[i].ID.String())
	}
}

func TestMemoryStoreGetByID(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	reg := &models.Registration{Name: "Attendee", PassID: "FF000000AAA", Status: models.StatusPending}
	require.NoError(t, store.Create(ctx, reg))

	got, err := store.GetByID(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, reg.PassID, got.PassID)

	exists, err := store.PassIDExists(ctx, "FF000000AAA")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = store.PassIDExists(ctx, "FF999999ZZZ")
	require.NoError(t, err)
	assert.False(t, exists)
}
