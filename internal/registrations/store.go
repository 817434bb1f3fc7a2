package registrations

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/fiesta-events/backend/internal/models"
)

// ErrNotFound is returned when a registration id or pass ID does not exist.
var ErrNotFound = errors.New("registration not found")

// Store persists registrations and payment QR payloads.
// List returns newest first, ties on created_at broken by id descending.
// Delete reports whether a record was removed; deleting a missing id is not an error.
type Store interface {
	Create(ctx context.Context, reg *models.Registration) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Registration, error)
	GetByPassID(ctx context.Context, passID string) (*models.Registration, error)
	PassIDExists(ctx context.Context, passID string) (bool, error)
	List(ctx context.Context) ([]models.Registration, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	CreatePaymentQR(ctx context.Context, qr *models.PaymentQRCode) error
	ListPaymentQRs(ctx context.Context, registrationID uuid.UUID) ([]models.PaymentQRCode, error)
}
