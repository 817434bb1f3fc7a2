package moderation

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fiesta-events/backend/internal/models"
)

// Entry is a registration augmented with a resolved screenshot URL for display.
type Entry struct {
	models.Registration
	ScreenshotURL string `json:"screenshot_url,omitempty"`
}

// Counts are single-pass aggregates over a listing.
type Counts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Verified int `json:"verified"`
	Rejected int `json:"rejected"`
}

// Lister returns registrations newest first.
type Lister interface {
	List(ctx context.Context) ([]models.Registration, error)
}

// URLResolver turns a stored screenshot key into a fetchable URL.
type URLResolver interface {
	ResolveScreenshotURL(ctx context.Context, key string) (string, error)
}

// Service is the admin-facing read side over the registration store.
type Service struct {
	store    Lister
	resolver URLResolver
	logger   *zap.Logger
}

// NewService creates a moderation view service. resolver may be nil when no
// object storage is configured; screenshot URLs are then omitted.
func NewService(store Lister, resolver URLResolver, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, resolver: resolver, logger: logger}
}

// List returns all registrations newest first, each with its screenshot URL
// resolved independently. A failed resolution degrades to an absent URL and
// never fails the listing.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	regs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(regs))
	for _, reg := range regs {
		entry := Entry{Registration: reg}
		if reg.PaymentScreenshot != "" && s.resolver != nil {
			url, err := s.resolver.ResolveScreenshotURL(ctx, reg.PaymentScreenshot)
			if err != nil {
				s.logger.Warn("screenshot url resolution failed",
					zap.String("registration_id", reg.ID.String()), zap.Error(err))
			} else {
				entry.ScreenshotURL = url
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Filter returns the subsequence of entries whose name, home club, designation
// or pass ID contains query case-insensitively, and whose status matches
// statusFilter ("all" or empty matches every status). Order is preserved.
func Filter(entries []Entry, query, statusFilter string) []Entry {
	q := strings.ToLower(query)
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if q != "" && !matchesQuery(e, q) {
			continue
		}
		if statusFilter != "" && statusFilter != "all" && string(e.Status) != statusFilter {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matchesQuery(e Entry, q string) bool {
	return strings.Contains(strings.ToLower(e.Name), q) ||
		strings.Contains(strings.ToLower(e.HomeClub), q) ||
		strings.Contains(strings.ToLower(e.Designation), q) ||
		strings.Contains(strings.ToLower(e.PassID), q)
}

// Stats derives aggregate counts in a single pass.
func Stats(entries []Entry) Counts {
	counts := Counts{Total: len(entries)}
	for _, e := range entries {
		switch e.Status {
		case models.StatusPending:
			counts.Pending++
		case models.StatusVerified:
			counts.Verified++
		case models.StatusRejected:
			counts.Rejected++
		}
	}
	return counts
}
