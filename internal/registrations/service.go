package registrations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fiesta-events/backend/internal/models"
)

var (
	// ErrRegistrationsClosed is returned by Create while the gate is closed.
	ErrRegistrationsClosed = errors.New("registrations are closed")
	// ErrValidation wraps invalid registration input.
	ErrValidation = errors.New("invalid registration input")
)

// GateChecker reads the registration gate state.
type GateChecker interface {
	Status(ctx context.Context) (models.GateState, error)
}

// Notifier is told about new registrations; implementations must not block on
// delivery and must never fail the registration itself.
type Notifier interface {
	RegistrationCreated(ctx context.Context, reg *models.Registration)
}

// ScreenshotDeleter removes a stored screenshot object by key.
type ScreenshotDeleter interface {
	DeleteObject(ctx context.Context, key string) error
}

// CreateInput is the attendee-supplied portion of a registration.
type CreateInput struct {
	Name              string
	HomeClub          string
	Designation       string
	PhoneNumber       string
	PaymentMethod     string
	PaymentScreenshot string // storage object key, optional
}

// Service is the registration lifecycle engine: creation with gate enforcement,
// status transitions, deletion and payment QR issuance.
type Service struct {
	store     Store
	gate      GateChecker
	generator *PassIDGenerator
	notifier  Notifier
	deleter   ScreenshotDeleter
	eventName string
	logger    *zap.Logger
}

// NewService creates a lifecycle service. notifier and deleter may be nil.
func NewService(store Store, gate GateChecker, generator *PassIDGenerator, eventName string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:     store,
		gate:      gate,
		generator: generator,
		eventName: eventName,
		logger:    logger,
	}
}

// SetNotifier attaches a creation notifier.
func (s *Service) SetNotifier(n Notifier) { s.notifier = n }

// SetScreenshotDeleter attaches a screenshot cleanup hook used on delete.
func (s *Service) SetScreenshotDeleter(d ScreenshotDeleter) { s.deleter = d }

func (in CreateInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(in.HomeClub) == "" {
		return fmt.Errorf("%w: home club is required", ErrValidation)
	}
	if strings.TrimSpace(in.Designation) == "" {
		return fmt.Errorf("%w: designation is required", ErrValidation)
	}
	if !models.ValidPhoneNumber(in.PhoneNumber) {
		return fmt.Errorf("%w: phone number is malformed", ErrValidation)
	}
	if _, err := models.ParsePaymentMethod(in.PaymentMethod); err != nil {
		return fmt.Errorf("%w: unknown payment method %q", ErrValidation, in.PaymentMethod)
	}
	return nil
}

// Create validates the input, enforces the registration gate, generates a
// unique pass ID and QR payload, and inserts the record with status pending.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Registration, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	state, err := s.gate.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("gate status: %w", err)
	}
	if state.IsClosed {
		return nil, ErrRegistrationsClosed
	}

	passID, err := s.generator.GenerateUnique(ctx, s.store)
	if err != nil {
		return nil, fmt.Errorf("generate pass id: %w", err)
	}

	method, _ := models.ParsePaymentMethod(in.PaymentMethod)
	now := time.Now()
	qrCode, err := models.EncodePassQR(passID, in.Name, s.eventName, now)
	if err != nil {
		return nil, fmt.Errorf("encode pass qr: %w", err)
	}

	reg := &models.Registration{
		Name:              in.Name,
		HomeClub:          in.HomeClub,
		Designation:       in.Designation,
		PhoneNumber:       in.PhoneNumber,
		PaymentMethod:     method,
		PaymentScreenshot: in.PaymentScreenshot,
		PassID:            passID,
		QRCode:            qrCode,
		Status:            models.StatusPending,
		CreatedAt:         now,
	}
	if err := s.store.Create(ctx, reg); err != nil {
		return nil, fmt.Errorf("insert registration: %w", err)
	}

	if s.notifier != nil {
		s.notifier.RegistrationCreated(ctx, reg)
	}
	s.logger.Info("registration created",
		zap.String("registration_id", reg.ID.String()),
		zap.String("pass_id", reg.PassID))
	return reg, nil
}

// UpdateStatus moves a registration to the given status. Re-applying the
// current status is a no-op that still succeeds.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) error {
	reg, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !reg.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", models.ErrInvalidStatus, reg.Status, status)
	}
	if reg.Status == status {
		return nil
	}
	return s.store.UpdateStatus(ctx, id, status)
}

// Delete permanently removes a registration. Deleting a missing id is a no-op;
// any stored screenshot is cleaned up best effort.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	reg, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	found, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if found && reg.PaymentScreenshot != "" && s.deleter != nil {
		if err := s.deleter.DeleteObject(ctx, reg.PaymentScreenshot); err != nil {
			s.logger.Warn("screenshot cleanup failed",
				zap.String("registration_id", id.String()), zap.Error(err))
		}
	}
	return nil
}

// GetByPassID looks a registration up by its pass ID.
func (s *Service) GetByPassID(ctx context.Context, passID string) (*models.Registration, error) {
	return s.store.GetByPassID(ctx, passID)
}

// GeneratePaymentQR creates and persists a payment QR payload for a registration.
func (s *Service) GeneratePaymentQR(ctx context.Context, registrationID uuid.UUID, amount float64) (*models.PaymentQRCode, error) {
	reg, err := s.store.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(models.PaymentQRPayload{
		Type:           "payment",
		RegistrationID: registrationID,
		Amount:         amount,
		Name:           reg.Name,
		PassID:         reg.PassID,
	})
	if err != nil {
		return nil, fmt.Errorf("encode payment qr: %w", err)
	}
	qr := &models.PaymentQRCode{
		RegistrationID: registrationID,
		QRCodeData:     string(data),
		Amount:         amount,
	}
	if err := s.store.CreatePaymentQR(ctx, qr); err != nil {
		return nil, fmt.Errorf("insert payment qr: %w", err)
	}
	return qr, nil
}
