package files

import (
	"context"
	"time"

	"github.com/fiesta-events/backend/pkg/storage"
)

// Service wraps object storage for the screenshot attachment flow: issuing
// upload targets and resolving read URLs for stored objects.
type Service struct {
	s3 *storage.S3
}

// NewService creates a files service.
func NewService(s3 *storage.S3) *Service {
	return &Service{s3: s3}
}

// GenerateUploadURL returns a pre-signed PUT URL and the object key the caller
// must pass back into registration create.
func (s *Service) GenerateUploadURL(ctx context.Context, key, contentType string) (string, time.Time, error) {
	expires := s.s3.PresignExpire()
	url, err := s.s3.GeneratePresignedUploadURL(ctx, key, contentType, expires)
	if err != nil {
		return "", time.Time{}, err
	}
	return url, time.Now().Add(expires), nil
}

// ResolveScreenshotURL returns a time-bounded read URL for a stored screenshot.
func (s *Service) ResolveScreenshotURL(ctx context.Context, key string) (string, error) {
	return s.s3.GeneratePresignedDownloadURL(ctx, key, s.s3.PresignExpire())
}

// DeleteObject removes a stored screenshot.
func (s *Service) DeleteObject(ctx context.Context, key string) error {
	return s.s3.DeleteObject(ctx, key)
}
