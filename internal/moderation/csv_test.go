package moderation

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiesta-events/backend/internal/models"
)

func TestWriteVerifiedCSV(t *testing.T) {
	created := time.Date(2026, 9, 1, 14, 4, 0, 0, time.UTC)
	entries := []Entry{
		{Registration: models.Registration{
			Name: "Ram Shrestha", HomeClub: "Kathmandu Club", Designation: "President",
			PhoneNumber: "+977-9800000000", PaymentMethod: models.PaymentCash,
			PassID: "FF123456ABC", Status: models.StatusVerified, CreatedAt: created,
		}},
		{Registration: models.Registration{
			Name: "Sita Rai", HomeClub: "Pokhara Club", Designation: "Secretary",
			PhoneNumber: "9813173643", PaymentMethod: models.PaymentQR,
			PassID: "FF654321XYZ", Status: models.StatusPending, CreatedAt: created,
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteVerifiedCSV(&buf, entries))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2, "header plus the single verified row")

	assert.Equal(t, []string{
		"Pass ID", "Name", "Designation", "Home Club", "Phone Number", "Payment Method", "Registration Date",
	}, records[0])
	assert.Equal(t, []string{
		"FF123456ABC", "Ram Shrestha", "President", "Kathmandu Club", "+977-9800000000", "cash", "Sep 1, 2026, 02:04 PM",
	}, records[1])
}

func TestWriteVerifiedCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteVerifiedCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}
