package gate

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fiesta-events/backend/internal/models"
)

// PostgresStore keeps the gate in the single-row registration_gate table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a gate store on a pgx pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Get reads the gate row; absence means registrations are open.
func (s *PostgresStore) Get(ctx context.Context) (models.GateState, error) {
	var state models.GateState
	err := s.pool.QueryRow(ctx,
		`SELECT is_closed, last_updated FROM registration_gate WHERE id = 1`).
		Scan(&state.IsClosed, &state.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.GateState{}, nil
		}
		return models.GateState{}, err
	}
	return state, nil
}

// Set upserts the gate row.
func (s *PostgresStore) Set(ctx context.Context, closed bool, at time.Time) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO registration_gate (id, is_closed, last_updated) VALUES (1, $1, $2)
		 ON CONFLICT (id) DO UPDATE SET is_closed = EXCLUDED.is_closed, last_updated = EXCLUDED.last_updated`,
		closed, at)
	return err
}
