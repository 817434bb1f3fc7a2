package gate

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fiesta-events/backend/internal/models"
)

// Service controls whether new registrations are accepted.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService creates a gate service.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Status returns the current gate state, defaulting to open.
func (s *Service) Status(ctx context.Context) (models.GateState, error) {
	return s.store.Get(ctx)
}

// Close stops accepting registrations. Idempotent; refreshes the timestamp.
func (s *Service) Close(ctx context.Context) error {
	if err := s.store.Set(ctx, true, time.Now()); err != nil {
		return err
	}
	s.logger.Info("registrations closed")
	return nil
}

// Open resumes accepting registrations. Idempotent; refreshes the timestamp.
func (s *Service) Open(ctx context.Context) error {
	if err := s.store.Set(ctx, false, time.Now()); err != nil {
		return err
	}
	s.logger.Info("registrations opened")
	return nil
}
