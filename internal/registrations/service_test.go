package registrations

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiesta-events/backend/internal/gate"
	"github.com/fiesta-events/backend/internal/models"
)

const testEvent = "Kathmandu Friendship Fiesta"

func newTestService(t *testing.T) (*Service, *MemoryStore, *gate.Service) {
	t.Helper()
	store := NewMemoryStore()
	gateService := gate.NewService(gate.NewMemoryStore(), nil)
	service := NewService(store, gateService, NewPassIDGenerator("FF"), testEvent, nil)
	return service, store, gateService
}

func validInput() CreateInput {
	return CreateInput{
		Name:          "Ram Shrestha",
		HomeClub:      "Kathmandu Club",
		Designation:   "President",
		PhoneNumber:   "+977-9800000000",
		PaymentMethod: "cash",
	}
}

func TestCreateIssuesPassAndPendingStatus(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	reg, err := service.Create(ctx, validInput())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, reg.ID)
	assert.Regexp(t, `^FF\d{6}[0-9A-Z]{3}$`, reg.PassID)
	assert.Equal(t, models.StatusPending, reg.Status)
	assert.False(t, reg.CreatedAt.IsZero())

	var payload models.PassQRPayload
	require.NoError(t, json.Unmarshal([]byte(reg.QRCode), &payload))
	assert.Equal(t, reg.PassID, payload.PassID)
	assert.Equal(t, "Ram Shrestha", payload.Name)
	assert.Equal(t, testEvent, payload.Event)
	assert.Equal(t, reg.CreatedAt.UnixMilli(), payload.Timestamp)

	found, err := service.GetByPassID(ctx, reg.PassID)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, found.ID)
}

func TestCreateValidation(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"empty name", func(in *CreateInput) { in.Name = "  " }},
		{"empty home club", func(in *CreateInput) { in.HomeClub = "" }},
		{"empty designation", func(in *CreateInput) { in.Designation = "" }},
		{"empty phone", func(in *CreateInput) { in.PhoneNumber = "" }},
		{"phone with letters", func(in *CreateInput) { in.PhoneNumber = "98OO-call-me" }},
		{"unknown payment method", func(in *CreateInput) { in.PaymentMethod = "cheque" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := service.Create(ctx, in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreateRejectedWhileClosed(t *testing.T) {
	service, store, gateService := newTestService(t)
	ctx := context.Background()

	require.NoError(t, gateService.Close(ctx))
	_, err := service.Create(ctx, validInput())
	require.ErrorIs(t, err, ErrRegistrationsClosed)

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, gateService.Open(ctx))
	_, err = service.Create(ctx, validInput())
	assert.NoError(t, err)
}

func TestUpdateStatus(t *testing.T) {
	service, _, _ := newTestService(t)
	ctx := context.Background()

	reg, err := service.Create(ctx, validInput())
	require.NoError(t, err)

	for _, status := range []models.Status{models.StatusVerified, models.StatusRejected, models.StatusPending} {
		require.NoError(t, service.UpdateStatus(ctx, reg.ID, status))
		got, err := service.GetByPassID(ctx, reg.PassID)
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)

		// Re-applying the same status succeeds and changes nothing.
		require.NoError(t, service.UpdateStatus(ctx, reg.ID, status))
		got, err = service.GetByPassID(ctx, reg.PassID)
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	service, _, _ := newTestService(t)
	err := service.UpdateStatus(context.Background(), uuid.New(), models.StatusVerified)
	assert.ErrorIs(t, err, ErrNotFound)
}

type recordingDeleter struct {
	keys []string
}

func (d *recordingDeleter) DeleteObject(_ context.Context, key string) error {
	d.keys = append(d.keys, key)
	return nil
}

func TestDeleteIsIdempotent(t *testing.T) {
	service, store, _ := newTestService(t)
	deleter := &recordingDeleter{}
	service.SetScreenshotDeleter(deleter)
	ctx := context.Background()

	in := validInput()
	in.PaymentMethod = "qr"
	in.PaymentScreenshot = "screenshots/abc.png"
	reg, err := service.Create(ctx, in)
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, reg.ID))

	_, err = service.GetByPassID(ctx, reg.PassID)
	assert.ErrorIs(t, err, ErrNotFound)
	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, []string{"screenshots/abc.png"}, deleter.keys)

	// Second delete of the same id is a no-op.
	require.NoError(t, service.Delete(ctx, reg.ID))
	assert.Len(t, deleter.keys, 1)
}

func TestGeneratePaymentQR(t *testing.T) {
	service, store, _ := newTestService(t)
	ctx := context.Background()

	reg, err := service.Create(ctx, validInput())
	require.NoError(t, err)

	qr, err := service.GeneratePaymentQR(ctx, reg.ID, 250)
	require.NoError(t, err)

	var payload models.PaymentQRPayload
	require.NoError(t, json.Unmarshal([]byte(qr.QRCodeData), &payload))
	assert.Equal(t, "payment", payload.Type)
	assert.Equal(t, reg.ID, payload.RegistrationID)
	assert.Equal(t, 250.0, payload.Amount)
	assert.Equal(t, "Ram Shrestha", payload.Name)
	assert.Equal(t, reg.PassID, payload.PassID)

	qrs, err := store.ListPaymentQRs(ctx, reg.ID)
	require.NoError(t, err)
	require.Len(t, qrs, 1)

	_, err = service.GeneratePaymentQR(ctx, uuid.New(), 250)
	assert.ErrorIs(t, err, ErrNotFound)
}

type recordingNotifier struct {
	created []string
}

func (n *recordingNotifier) RegistrationCreated(_ context.Context, reg *models.Registration) {
	n.created = append(n.created, reg.PassID)
}

func TestCreateNotifies(t *testing.T) {
	service, _, _ := newTestService(t)
	notifier := &recordingNotifier{}
	service.SetNotifier(notifier)

	reg, err := service.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, []string{reg.PassID}, notifier.created)
}
