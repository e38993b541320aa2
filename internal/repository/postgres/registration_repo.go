package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"governanceevents/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{DB: db}
}

const registrationColumns = `id, event_id, full_name, id_passport, gender, email, phone, organization,
	ec_full_name, ec_relationship, ec_email, ec_phone, confirmation_ref, payment_status, created_at, updated_at`

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (event_id, full_name, id_passport, gender, email, phone, organization,
			ec_full_name, ec_relationship, ec_email, ec_phone, confirmation_ref, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	var ecName, ecRel, ecEmail, ecPhone sql.NullString
	if ec := reg.EmergencyContact; ec != nil {
		ecName = sql.NullString{String: ec.FullName, Valid: true}
		ecRel = sql.NullString{String: ec.Relationship, Valid: true}
		ecEmail = sql.NullString{String: ec.Email, Valid: true}
		ecPhone = sql.NullString{String: ec.Phone, Valid: true}
	}
	err := r.DB.QueryRowContext(ctx, query,
		reg.EventID, reg.FullName, reg.IDPassport, string(reg.Gender), reg.Email, reg.Phone, reg.Organization,
		ecName, ecRel, ecEmail, ecPhone, reg.ConfirmationRef, string(reg.PaymentStatus), reg.CreatedAt, reg.UpdatedAt,
	).Scan(&reg.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateReference
		}
		return err
	}
	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	return r.getOne(ctx, `SELECT `+registrationColumns+` FROM registrations WHERE id = $1`, id)
}

func (r *registrationRepository) GetByReference(ctx context.Context, ref string) (*domain.Registration, error) {
	return r.getOne(ctx, `SELECT `+registrationColumns+` FROM registrations WHERE confirmation_ref = $1`, ref)
}

func (r *registrationRepository) getOne(ctx context.Context, query string, arg string) (*domain.Registration, error) {
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) List(ctx context.Context, filter domain.RegistrationFilter) ([]*domain.Registration, int, error) {
	where := []string{"TRUE"}
	args := []any{}
	n := 1
	if filter.EventID != "" {
		where = append(where, fmt.Sprintf("event_id = $%d", n))
		args = append(args, filter.EventID)
		n++
	}
	if q := strings.TrimSpace(filter.EmailQuery); q != "" {
		where = append(where, fmt.Sprintf("email ILIKE $%d", n))
		args = append(args, "%"+q+"%")
		n++
	}
	clause := strings.Join(where, " AND ")

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations WHERE `+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE ` + clause + ` ORDER BY created_at DESC, confirmation_ref ASC`
	if filter.PageSize > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", n, n+1)
		args = append(args, filter.PageSize, filter.Offset())
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, 0, err
		}
		regs = append(regs, reg)
	}
	return regs, total, rows.Err()
}

func (r *registrationRepository) UpdatePaymentStatus(ctx context.Context, ref string, from, to domain.PaymentStatus, updatedAt time.Time) (*domain.Registration, error) {
	query := `
		UPDATE registrations SET payment_status = $1, updated_at = $2
		WHERE confirmation_ref = $3 AND payment_status = $4
		RETURNING ` + registrationColumns
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx, query, string(to), updatedAt, ref, string(from)))
	if err == nil {
		return reg, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	// No row: either the reference is unknown or another writer moved the status first.
	if _, err := r.GetByReference(ctx, ref); err != nil {
		return nil, err
	}
	return nil, domain.ErrInvalidTransition
}

func (r *registrationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanRegistration(row rowScanner) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var gender, status string
	var ecName, ecRel, ecEmail, ecPhone sql.NullString
	if err := row.Scan(
		&reg.ID, &reg.EventID, &reg.FullName, &reg.IDPassport, &gender, &reg.Email, &reg.Phone, &reg.Organization,
		&ecName, &ecRel, &ecEmail, &ecPhone, &reg.ConfirmationRef, &status, &reg.CreatedAt, &reg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	reg.Gender = domain.Gender(gender)
	reg.PaymentStatus = domain.PaymentStatus(status)
	if ecName.Valid {
		reg.EmergencyContact = &domain.EmergencyContact{
			FullName:     ecName.String,
			Relationship: ecRel.String,
			Email:        ecEmail.String,
			Phone:        ecPhone.String,
		}
	}
	return reg, nil
}
