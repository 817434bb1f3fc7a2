package registrations

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fiesta-events/backend/internal/models"
)

// MemoryStore is an in-memory Store for tests and local development.
type MemoryStore struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]models.Registration
	paymentQRs map[uuid.UUID][]models.PaymentQRCode
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:       make(map[uuid.UUID]models.Registration),
		paymentQRs: make(map[uuid.UUID][]models.PaymentQRCode),
	}
}

// Create inserts a registration, assigning id and created_at.
func (s *MemoryStore) Create(_ context.Context, reg *models.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg.ID = uuid.New()
	if reg.CreatedAt.IsZero() {
		reg.CreatedAt = time.Now()
	}
	s.byID[reg.ID] = *reg
	return nil
}

// GetByID returns a registration by internal id.
func (s *MemoryStore) GetByID(_ context.Context, id uuid.UUID) (*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reg, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &reg, nil
}

// GetByPassID returns a registration by its pass ID.
func (s *MemoryStore) GetByPassID(_ context.Context, passID string) (*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, reg := range s.byID {
		if reg.PassID == passID {
			reg := reg
			return &reg, nil
		}
	}
	return nil, ErrNotFound
}

// PassIDExists reports whether a pass ID is already taken.
func (s *MemoryStore) PassIDExists(_ context.Context, passID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, reg := range s.byID {
		if reg.PassID == passID {
			return true, nil
		}
	}
	return false, nil
}

// List returns all registrations, newest first, ties broken by id descending.
func (s *MemoryStore) List(_ context.Context) ([]models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]models.Registration, 0, len(s.byID))
	for _, reg := range s.byID {
		list = append(list, reg)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID.String() > list[j].ID.String()
	})
	return list, nil
}

// UpdateStatus overwrites the status of a registration.
func (s *MemoryStore) UpdateStatus(_ context.Context, id uuid.UUID, status models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	reg.Status = status
	s.byID[id] = reg
	return nil
}

// Delete removes a registration and its payment QR rows.
func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return false, nil
	}
	delete(s.byID, id)
	delete(s.paymentQRs, id)
	return true, nil
}

// CreatePaymentQR inserts a payment QR payload row.
func (s *MemoryStore) CreatePaymentQR(_ context.Context, qr *models.PaymentQRCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	qr.ID = uuid.New()
	if qr.CreatedAt.IsZero() {
		qr.CreatedAt = time.Now()
	}
	s.paymentQRs[qr.RegistrationID] = append(s.paymentQRs[qr.RegistrationID], *qr)
	return nil
}

// ListPaymentQRs returns payment QR payloads for a registration, newest first.
func (s *MemoryStore) ListPaymentQRs(_ context.Context, registrationID uuid.UUID) ([]models.PaymentQRCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	qrs := s.paymentQRs[registrationID]
	out := make([]models.PaymentQRCode, len(qrs))
	copy(out, qrs)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
