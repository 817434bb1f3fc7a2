package gate

import (
	"context"
	"time"

	"github.com/fiesta-events/backend/internal/models"
)

// Store persists the singleton registration gate row. Get returns the default
// open state when the row has never been written.
type Store interface {
	Get(ctx context.Context) (models.GateState, error)
	Set(ctx context.Context, closed bool, at time.Time) error
}
