package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fiesta-events/backend/internal/models"
	"github.com/fiesta-events/backend/pkg/queue"
)

// EmailTypeNewRegistration marks organizer notices about fresh submissions.
const EmailTypeNewRegistration = "new_registration"

// QueueNotifier enqueues organizer notification jobs for new registrations.
// Enqueue failures are logged and never surfaced to the registration path.
type QueueNotifier struct {
	queue     *queue.Queue
	recipient string
	eventName string
	logger    *zap.Logger
}

// NewQueueNotifier creates a notifier targeting the organizer inbox.
func NewQueueNotifier(q *queue.Queue, recipient, eventName string, logger *zap.Logger) *QueueNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueueNotifier{queue: q, recipient: recipient, eventName: eventName, logger: logger}
}

// RegistrationCreated enqueues a new-registration notice.
func (n *QueueNotifier) RegistrationCreated(ctx context.Context, reg *models.Registration) {
	if n.recipient == "" {
		return
	}
	subject := fmt.Sprintf("New registration: %s (%s)", reg.Name, reg.PassID)
	body := fmt.Sprintf(
		"A new registration for %s was submitted.\n\nName: %s\nHome club: %s\nDesignation: %s\nPhone: %s\nPayment: %s\nPass ID: %s\n",
		n.eventName, reg.Name, reg.HomeClub, reg.Designation, reg.PhoneNumber, reg.PaymentMethod, reg.PassID,
	)
	err := n.queue.EnqueueEmail(ctx, queue.EmailPayload{
		EmailType:      EmailTypeNewRegistration,
		RegistrationID: reg.ID,
		RecipientEmail: n.recipient,
		Subject:        subject,
		Body:           body,
	})
	if err != nil {
		n.logger.Warn("enqueue registration notice failed",
			zap.Error(err), zap.String("registration_id", reg.ID.String()))
	}
}
