package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "verified", "rejected"} {
		status, err := ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, Status(s), status)
	}
	_, err := ParseStatus("approved")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = ParseStatus("")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestStatusTransitionsAllPairsAllowed(t *testing.T) {
	statuses := []Status{StatusPending, StatusVerified, StatusRejected}
	for _, from := range statuses {
		for _, to := range statuses {
			assert.True(t, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestParsePaymentMethod(t *testing.T) {
	for _, s := range []string{"cash", "qr"} {
		method, err := ParsePaymentMethod(s)
		require.NoError(t, err)
		assert.Equal(t, PaymentMethod(s), method)
	}
	_, err := ParsePaymentMethod("card")
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestValidPhoneNumber(t *testing.T) {
	valid := []string{"+977-9800000000", "9813173643", "(01) 442 2211", "+1 555 0100"}
	for _, p := range valid {
		assert.True(t, ValidPhoneNumber(p), p)
	}
	invalid := []string{"", "98OO123", "phone", "977#980"}
	for _, p := range invalid {
		assert.False(t, ValidPhoneNumber(p), p)
	}
}

func TestEncodePassQR(t *testing.T) {
	at := time.Date(2026, 2, 14, 18, 30, 0, 0, time.UTC)
	raw, err := EncodePassQR("FF123456ABC", "Sita Rai", "Kathmandu Friendship Fiesta", at)
	require.NoError(t, err)

	var payload PassQRPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	assert.Equal(t, "FF123456ABC", payload.PassID)
	assert.Equal(t, "Sita Rai", payload.Name)
	assert.Equal(t, "Kathmandu Friendship Fiesta", payload.Event)
	assert.Equal(t, at.UnixMilli(), payload.Timestamp)
}
