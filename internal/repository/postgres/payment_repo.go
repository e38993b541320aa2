package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"governanceevents/internal/domain"
)

type paymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(db *sql.DB) domain.PaymentRepository {
	return &paymentRepository{DB: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `
		INSERT INTO payments (registration_id, amount, method, status, order_id, transaction_ref, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		p.RegistrationID, p.Amount, string(p.Method), string(p.Status), p.OrderID, p.TransactionRef, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
}

// GetByRegistrationID returns the most recent payment for a registration.
func (r *paymentRepository) GetByRegistrationID(ctx context.Context, registrationID string) (*domain.Payment, error) {
	query := `
		SELECT id, registration_id, amount, method, status, order_id, transaction_ref, created_at, updated_at
		FROM payments
		WHERE registration_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	p := &domain.Payment{}
	var method, status string
	err := r.DB.QueryRowContext(ctx, query, registrationID).Scan(
		&p.ID, &p.RegistrationID, &p.Amount, &method, &status, &p.OrderID, &p.TransactionRef, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.Method = domain.PaymentMethod(method)
	p.Status = domain.PaymentRecordStatus(status)
	return p, nil
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, id string, status domain.PaymentRecordStatus, transactionRef string, updatedAt time.Time) error {
	query := `UPDATE payments SET status = $1, transaction_ref = $2, updated_at = $3 WHERE id = $4`
	result, err := r.DB.ExecContext(ctx, query, string(status), transactionRef, updatedAt, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
