package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fiesta-events/backend/internal/emaillogs"
	"github.com/fiesta-events/backend/internal/mailer"
	"github.com/fiesta-events/backend/internal/models"
	"github.com/fiesta-events/backend/pkg/queue"
)

// EmailProcessor processes notification email jobs: send over SMTP when
// configured, record the outcome in email_logs either way.
type EmailProcessor struct {
	logs   *emaillogs.Repository
	mailer *mailer.Mailer
	queue  *queue.Queue
	logger *zap.Logger
}

// NewEmailProcessor creates a notification processor.
func NewEmailProcessor(logs *emaillogs.Repository, m *mailer.Mailer, q *queue.Queue, logger *zap.Logger) *EmailProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailProcessor{logs: logs, mailer: m, queue: q, logger: logger}
}

// Process executes one email job.
func (p *EmailProcessor) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeEmail {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload queue.EmailPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	entry := &models.EmailLog{
		RegistrationID: payload.RegistrationID,
		EmailType:      payload.EmailType,
		RecipientEmail: payload.RecipientEmail,
		Subject:        payload.Subject,
	}

	if !p.mailer.Configured() {
		entry.Status = "queued"
		p.logger.Debug("smtp not configured, logging only",
			zap.String("registration_id", payload.RegistrationID.String()))
	} else if sendErr := p.mailer.Send(payload.RecipientEmail, payload.Subject, payload.Body); sendErr != nil {
		entry.Status = "failed"
		entry.ErrorMessage = sendErr.Error()
	} else {
		now := time.Now()
		entry.Status = "sent"
		entry.SentAt = &now
	}

	if err := p.logs.Insert(ctx, entry); err != nil {
		return fmt.Errorf("record email log: %w", err)
	}
	if entry.Status == "failed" {
		return fmt.Errorf("send failed: %s", entry.ErrorMessage)
	}
	return nil
}

// Run starts the worker loop: dequeue, process, retry on error.
func (p *EmailProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("email worker stopping")
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				p.logger.Info("email worker stopping")
				return
			}
			p.logger.Warn("dequeue error", zap.Error(err))
			time.Sleep(queue.RetryBackoff)
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := p.queue.Retry(ctx, job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			time.Sleep(queue.RetryBackoff)
			continue
		}
	}
}
