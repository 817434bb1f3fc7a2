package models

import (
	"encoding/json"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Status is the moderation state of a registration.
type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

// ErrInvalidStatus is returned when a status string is not one of the known states.
var ErrInvalidStatus = errors.New("invalid status")

// statusTransitions is the explicit transition table. Admins may move a
// registration between any of the three states, including back to pending;
// re-applying the current state is a no-op observable as success.
var statusTransitions = map[Status][]Status{
	StatusPending:  {StatusPending, StatusVerified, StatusRejected},
	StatusVerified: {StatusPending, StatusVerified, StatusRejected},
	StatusRejected: {StatusPending, StatusVerified, StatusRejected},
}

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusVerified, StatusRejected:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// CanTransitionTo reports whether the transition from s to next is allowed.
func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range statusTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// PaymentMethod is how the attendee paid the registration fee.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentQR   PaymentMethod = "qr"
)

// ErrInvalidPaymentMethod is returned for unknown payment methods.
var ErrInvalidPaymentMethod = errors.New("invalid payment method")

// ParsePaymentMethod validates a payment method string.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentQR:
		return PaymentMethod(s), nil
	}
	return "", ErrInvalidPaymentMethod
}

// phonePattern accepts digits, +, -, spaces and parentheses.
var phonePattern = regexp.MustCompile(`^[0-9+\-\s()]+$`)

// ValidPhoneNumber reports whether s matches the permissive phone pattern.
func ValidPhoneNumber(s string) bool {
	return s != "" && phonePattern.MatchString(s)
}

// Registration is one attendee submission.
type Registration struct {
	ID                uuid.UUID     `json:"id"`
	Name              string        `json:"name"`
	HomeClub          string        `json:"home_club"`
	Designation       string        `json:"designation"`
	PhoneNumber       string        `json:"phone_number"`
	PaymentMethod     PaymentMethod `json:"payment_method"`
	PaymentScreenshot string        `json:"payment_screenshot,omitempty"` // storage object key
	PassID            string        `json:"pass_id"`
	QRCode            string        `json:"qr_code"`
	Status            Status        `json:"status"`
	CreatedAt         time.Time     `json:"created_at"`
}

// PassQRPayload is serialized into Registration.QRCode at creation time and
// rendered as the badge QR by clients.
type PassQRPayload struct {
	PassID    string `json:"passId"`
	Name      string `json:"name"`
	Event     string `json:"event"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
}

// EncodePassQR serializes the pass QR payload.
func EncodePassQR(passID, name, event string, at time.Time) (string, error) {
	b, err := json.Marshal(PassQRPayload{
		PassID:    passID,
		Name:      name,
		Event:     event,
		Timestamp: at.UnixMilli(),
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// PaymentQRCode is an admin-generated payment QR payload for a registration.
type PaymentQRCode struct {
	ID             uuid.UUID `json:"id"`
	RegistrationID uuid.UUID `json:"registration_id"`
	QRCodeData     string    `json:"qr_code_data"`
	Amount         float64   `json:"amount"`
	CreatedAt      time.Time `json:"created_at"`
}

// PaymentQRPayload is the JSON encoded into PaymentQRCode.QRCodeData.
type PaymentQRPayload struct {
	Type           string    `json:"type"`
	RegistrationID uuid.UUID `json:"registrationId"`
	Amount         float64   `json:"amount"`
	Name           string    `json:"name"`
	PassID         string    `json:"passId"`
}
