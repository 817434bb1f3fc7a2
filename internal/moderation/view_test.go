package moderation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiesta-events/backend/internal/models"
)

func entry(name, club, designation, passID string, status models.Status) Entry {
	return Entry{Registration: models.Registration{
		ID:          uuid.New(),
		Name:        name,
		HomeClub:    club,
		Designation: designation,
		PassID:      passID,
		Status:      status,
	}}
}

func sampleEntries() []Entry {
	return []Entry{
		entry("Ram Shrestha", "Kathmandu Club", "President", "FF111111AAA", models.StatusPending),
		entry("Sita Rai", "Pokhara Club", "Secretary", "FF222222BBB", models.StatusVerified),
		entry("Hari Thapa", "New Kathmandu Club", "Treasurer", "FF333333CCC", models.StatusRejected),
		entry("Gita Katherine", "Butwal Club", "Member", "FF444444DDD", models.StatusVerified),
	}
}

func TestFilterByQuery(t *testing.T) {
	entries := sampleEntries()

	got := Filter(entries, "kath", "all")
	require.Len(t, got, 3)
	// Order preserved: two Kathmandu clubs, then the name Katherine.
	assert.Equal(t, "Ram Shrestha", got[0].Name)
	assert.Equal(t, "Hari Thapa", got[1].Name)
	assert.Equal(t, "Gita Katherine", got[2].Name)
}

func TestFilterByPassID(t *testing.T) {
	entries := sampleEntries()

	got := Filter(entries, "ff2222", "all")
	require.Len(t, got, 1)
	assert.Equal(t, "Sita Rai", got[0].Name)
}

func TestFilterCaseInsensitive(t *testing.T) {
	entries := sampleEntries()
	assert.Equal(t, Filter(entries, "KATH", "all"), Filter(entries, "kath", "all"))
}

func TestFilterByStatus(t *testing.T) {
	entries := sampleEntries()

	verified := Filter(entries, "", "verified")
	require.Len(t, verified, 2)
	assert.Equal(t, "Sita Rai", verified[0].Name)
	assert.Equal(t, "Gita Katherine", verified[1].Name)

	assert.Len(t, Filter(entries, "", "all"), 4)
	assert.Len(t, Filter(entries, "", ""), 4)
}

func TestFilterCombined(t *testing.T) {
	entries := sampleEntries()

	got := Filter(entries, "kath", "verified")
	require.Len(t, got, 1)
	assert.Equal(t, "Gita Katherine", got[0].Name)

	assert.Empty(t, Filter(entries, "no such attendee", "all"))
}

func TestStats(t *testing.T) {
	counts := Stats(sampleEntries())
	assert.Equal(t, Counts{Total: 4, Pending: 1, Verified: 2, Rejected: 1}, counts)

	assert.Equal(t, Counts{}, Stats(nil))
}

type stubLister struct {
	regs []models.Registration
}

func (s *stubLister) List(context.Context) ([]models.Registration, error) {
	return s.regs, nil
}

type flakyResolver struct {
	failKey string
}

func (r *flakyResolver) ResolveScreenshotURL(_ context.Context, key string) (string, error) {
	if key == r.failKey {
		return "", errors.New("presign failed")
	}
	return "https://example.com/" + key, nil
}

func TestListResolvesURLsIndependently(t *testing.T) {
	now := time.Now()
	lister := &stubLister{regs: []models.Registration{
		{ID: uuid.New(), Name: "A", PassID: "FF000001AAA", PaymentScreenshot: "screenshots/ok.png", Status: models.StatusPending, CreatedAt: now},
		{ID: uuid.New(), Name: "B", PassID: "FF000002BBB", PaymentScreenshot: "screenshots/bad.png", Status: models.StatusPending, CreatedAt: now},
		{ID: uuid.New(), Name: "C", PassID: "FF000003CCC", Status: models.StatusPending, CreatedAt: now},
	}}
	service := NewService(lister, &flakyResolver{failKey: "screenshots/bad.png"}, nil)

	entries, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "https://example.com/screenshots/ok.png", entries[0].ScreenshotURL)
	assert.Empty(t, entries[1].ScreenshotURL, "failed resolution degrades to absent url")
	assert.Empty(t, entries[2].ScreenshotURL, "no screenshot, no url")
}

func TestListWithoutResolver(t *testing.T) {
	lister := &stubLister{regs: []models.Registration{
		{ID: uuid.New(), Name: "A", PaymentScreenshot: "screenshots/ok.png"},
	}}
	service := NewService(lister, nil, nil)

	entries, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].ScreenshotURL)
}
