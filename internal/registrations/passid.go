package registrations

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
)

const (
	passIDSuffixLen      = 3
	passIDAlphabet       = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	passIDMaxAttempts    = 5
	passIDTimestampWidth = 6
)

// ErrPassIDExhausted is returned when no unique pass ID could be generated.
var ErrPassIDExhausted = errors.New("could not generate a unique pass id")

// PassIDGenerator produces short human-presentable pass identifiers of the form
// {prefix}{last 6 digits of ms timestamp}{3 random base-36 chars}, e.g. FF123456A7B.
type PassIDGenerator struct {
	prefix string
	now    func() time.Time
}

// NewPassIDGenerator creates a generator with the given event prefix.
func NewPassIDGenerator(prefix string) *PassIDGenerator {
	return &PassIDGenerator{prefix: prefix, now: time.Now}
}

// Generate produces one candidate pass ID without a uniqueness check.
func (g *PassIDGenerator) Generate() (string, error) {
	ms := fmt.Sprintf("%d", g.now().UnixMilli())
	if len(ms) > passIDTimestampWidth {
		ms = ms[len(ms)-passIDTimestampWidth:]
	}
	var sb strings.Builder
	sb.WriteString(g.prefix)
	sb.WriteString(ms)
	for i := 0; i < passIDSuffixLen; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passIDAlphabet))))
		if err != nil {
			return "", fmt.Errorf("random suffix: %w", err)
		}
		sb.WriteByte(passIDAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// GenerateUnique produces a pass ID not yet present in the store, retrying a
// bounded number of times on collision.
func (g *PassIDGenerator) GenerateUnique(ctx context.Context, store Store) (string, error) {
	for attempt := 0; attempt < passIDMaxAttempts; attempt++ {
		passID, err := g.Generate()
		if err != nil {
			return "", err
		}
		exists, err := store.PassIDExists(ctx, passID)
		if err != nil {
			return "", fmt.Errorf("check pass id: %w", err)
		}
		if !exists {
			return passID, nil
		}
	}
	return "", ErrPassIDExhausted
}
