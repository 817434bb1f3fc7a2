package registrations

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var passIDFormat = regexp.MustCompile(`^FF\d{6}[0-9A-Z]{3}$`)

func TestGenerateFormat(t *testing.T) {
	gen := NewPassIDGenerator("FF")
	for i := 0; i < 100; i++ {
		passID, err := gen.Generate()
		require.NoError(t, err)
		assert.Regexp(t, passIDFormat, passID)
	}
}

func TestGeneratePairwiseDistinct(t *testing.T) {
	gen := NewPassIDGenerator("FF")
	// Advance the clock one millisecond per draw so the timestamp segment
	// alone separates the candidates.
	clock := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	gen.now = func() time.Time {
		clock = clock.Add(time.Millisecond)
		return clock
	}
	seen := make(map[string]struct{}, 1500)
	for i := 0; i < 1500; i++ {
		passID, err := gen.Generate()
		require.NoError(t, err)
		_, dup := seen[passID]
		require.False(t, dup, "duplicate pass id %s after %d draws", passID, i)
		seen[passID] = struct{}{}
	}
}

func TestGenerateCustomPrefix(t *testing.T) {
	gen := NewPassIDGenerator("KTM")
	passID, err := gen.Generate()
	require.NoError(t, err)
	assert.Regexp(t, `^KTM\d{6}[0-9A-Z]{3}$`, passID)
}

// collidingStore reports the first n candidates as taken.
type collidingStore struct {
	Store
	remaining int
	checked   int
}

func (s *collidingStore) PassIDExists(context.Context, string) (bool, error) {
	s.checked++
	if s.remaining > 0 {
		s.remaining--
		return true, nil
	}
	return false, nil
}

func TestGenerateUniqueRetriesOnCollision(t *testing.T) {
	gen := NewPassIDGenerator("FF")
	store := &collidingStore{remaining: 2}

	passID, err := gen.GenerateUnique(context.Background(), store)
	require.NoError(t, err)
	assert.Regexp(t, passIDFormat, passID)
	assert.Equal(t, 3, store.checked)
}

func TestGenerateUniqueExhausted(t *testing.T) {
	gen := NewPassIDGenerator("FF")
	store := &collidingStore{remaining: passIDMaxAttempts}

	_, err := gen.GenerateUnique(context.Background(), store)
	require.ErrorIs(t, err, ErrPassIDExhausted)
}
