package moderation

import (
	"encoding/csv"
	"io"

	"github.com/fiesta-events/backend/internal/models"
)

// csvDateLayout matches the locale format the admin dashboard shows,
// e.g. "Sep 1, 2026, 02:04 PM".
const csvDateLayout = "Jan 2, 2006, 03:04 PM"

var csvHeaders = []string{
	"Pass ID", "Name", "Designation", "Home Club", "Phone Number", "Payment Method", "Registration Date",
}

// WriteVerifiedCSV writes the verified subset of entries as CSV.
func WriteVerifiedCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		return err
	}
	for _, e := range entries {
		if e.Status != models.StatusVerified {
			continue
		}
		record := []string{
			e.PassID,
			e.Name,
			e.Designation,
			e.HomeClub,
			e.PhoneNumber,
			string(e.PaymentMethod),
			e.CreatedAt.Format(csvDateLayout),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
