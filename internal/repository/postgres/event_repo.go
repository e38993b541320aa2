package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"governanceevents/internal/domain"
)

type eventRepository struct {
	DB  *sql.DB
	Loc *time.Location
}

// NewEventRepository returns an EventRepository backed by db. Stored dates are calendar dates and
// are re-anchored to loc when read.
func NewEventRepository(db *sql.DB, loc *time.Location) domain.EventRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &eventRepository{DB: db, Loc: loc}
}

const eventColumns = `id, title, description, date, time_range, location, type, meeting_mode, status, price, meeting_link, meeting_id, created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, date, time_range, location, type, meeting_mode, status, price, meeting_link, meeting_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Date.Format(domain.DateLayout), e.Time, e.Location,
		string(e.Type), string(e.MeetingMode), string(e.Status), e.Price.Amount,
		e.MeetingLink, e.MeetingID, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := r.scan(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE ($1 = '' OR status = $1)
		ORDER BY date ASC, title ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, string(filter.Status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, date = $3, time_range = $4, location = $5, type = $6,
		    meeting_mode = $7, status = $8, price = $9, meeting_link = $10, meeting_id = $11, updated_at = $12
		WHERE id = $13
	`
	result, err := r.DB.ExecContext(ctx, query,
		e.Title, e.Description, e.Date.Format(domain.DateLayout), e.Time, e.Location,
		string(e.Type), string(e.MeetingMode), string(e.Status), e.Price.Amount,
		e.MeetingLink, e.MeetingID, e.UpdatedAt, e.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *eventRepository) scan(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var date time.Time
	var typ, mode, status string
	var price int
	if err := row.Scan(
		&e.ID, &e.Title, &e.Description, &date, &e.Time, &e.Location, &typ, &mode, &status,
		&price, &e.MeetingLink, &e.MeetingID, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	e.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, r.Loc)
	e.Type = domain.EventType(typ)
	e.MeetingMode = domain.MeetingMode(mode)
	e.Status = domain.EventStatus(status)
	e.Price = domain.Paid(price)
	return e, nil
}
