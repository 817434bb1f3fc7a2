package registrations

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fiesta-events/backend/internal/models"
)

// PostgresStore is the pgx-backed Store.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a registrations store on a pgx pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const registrationColumns = `id, name, home_club, designation, phone_number, payment_method, COALESCE(payment_screenshot, ''), pass_id, qr_code, status, created_at`

func scanRegistration(row pgx.Row) (*models.Registration, error) {
	var reg models.Registration
	err := row.Scan(&reg.ID, &reg.Name, &reg.HomeClub, &reg.Designation, &reg.PhoneNumber,
		&reg.PaymentMethod, &reg.PaymentScreenshot, &reg.PassID, &reg.QRCode, &reg.Status, &reg.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &reg, nil
}

// Create inserts a registration.
func (s *PostgresStore) Create(ctx context.Context, reg *models.Registration) error {
	const q = `INSERT INTO registrations (id, name, home_club, designation, phone_number, payment_method, payment_screenshot, pass_id, qr_code, status)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9)
		RETURNING id, created_at`
	return s.pool.QueryRow(ctx, q,
		reg.Name, reg.HomeClub, reg.Designation, reg.PhoneNumber,
		reg.PaymentMethod, reg.PaymentScreenshot, reg.PassID, reg.QRCode, reg.Status,
	).Scan(&reg.ID, &reg.CreatedAt)
}

// GetByID returns a registration by internal id.
func (s *PostgresStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Registration, error) {
	return scanRegistration(s.pool.QueryRow(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE id = $1`, id))
}

// GetByPassID returns a registration by its pass ID.
func (s *PostgresStore) GetByPassID(ctx context.Context, passID string) (*models.Registration, error) {
	return scanRegistration(s.pool.QueryRow(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE pass_id = $1`, passID))
}

// PassIDExists reports whether a pass ID is already taken.
func (s *PostgresStore) PassIDExists(ctx context.Context, passID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM registrations WHERE pass_id = $1)`, passID).Scan(&exists)
	return exists, err
}

// List returns all registrations, newest first.
func (s *PostgresStore) List(ctx context.Context) ([]models.Registration, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+registrationColumns+` FROM registrations ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Registration
	for rows.Next() {
		var reg models.Registration
		if err := rows.Scan(&reg.ID, &reg.Name, &reg.HomeClub, &reg.Designation, &reg.PhoneNumber,
			&reg.PaymentMethod, &reg.PaymentScreenshot, &reg.PassID, &reg.QRCode, &reg.Status, &reg.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, reg)
	}
	return list, rows.Err()
}

// UpdateStatus overwrites the status of a registration.
func (s *PostgresStore) UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status) error {
	tag, err := s.pool.Exec(ctx, `UPDATE registrations SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a registration permanently. Payment QR rows cascade.
func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CreatePaymentQR inserts a payment QR payload row.
func (s *PostgresStore) CreatePaymentQR(ctx context.Context, qr *models.PaymentQRCode) error {
	const q = `INSERT INTO payment_qr_codes (id, registration_id, qr_code_data, amount)
		VALUES (gen_random_uuid(), $1, $2, $3)
		RETURNING id, created_at`
	return s.pool.QueryRow(ctx, q, qr.RegistrationID, qr.QRCodeData, qr.Amount).
		Scan(&qr.ID, &qr.CreatedAt)
}

// ListPaymentQRs returns payment QR payloads for a registration, newest first.
func (s *PostgresStore) ListPaymentQRs(ctx context.Context, registrationID uuid.UUID) ([]models.PaymentQRCode, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, registration_id, qr_code_data, amount, created_at FROM payment_qr_codes
		 WHERE registration_id = $1 ORDER BY created_at DESC`, registrationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.PaymentQRCode
	for rows.Next() {
		var qr models.PaymentQRCode
		if err := rows.Scan(&qr.ID, &qr.RegistrationID, &qr.QRCodeData, &qr.Amount, &qr.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, qr)
	}
	return list, rows.Err()
}
