package postgres

import (
	"context"
	"database/sql"
	"errors"

	"governanceevents/internal/domain"
)

type galleryRepository struct {
	DB *sql.DB
}

func NewGalleryRepository(db *sql.DB) domain.GalleryRepository {
	return &galleryRepository{DB: db}
}

func (r *galleryRepository) Create(ctx context.Context, item *domain.GalleryItem) error {
	query := `
		INSERT INTO gallery_items (filename, title, description, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, item.Filename, item.Title, item.Description, item.CreatedAt).Scan(&item.ID)
}

func (r *galleryRepository) GetByID(ctx context.Context, id string) (*domain.GalleryItem, error) {
	item := &domain.GalleryItem{}
	err := r.DB.QueryRowContext(ctx, `SELECT id, filename, title, description, created_at FROM gallery_items WHERE id = $1`, id).
		Scan(&item.ID, &item.Filename, &item.Title, &item.Description, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *galleryRepository) List(ctx context.Context) ([]*domain.GalleryItem, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, filename, title, description, created_at FROM gallery_items ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]*domain.GalleryItem, 0)
	for rows.Next() {
		item := &domain.GalleryItem{}
		if err := rows.Scan(&item.ID, &item.Filename, &item.Title, &item.Description, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *galleryRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, `DELETE FROM gallery_items WHERE id = $1`, id)
}

type statRepository struct {
	DB *sql.DB
}

func NewStatRepository(db *sql.DB) domain.StatRepository {
	return &statRepository{DB: db}
}

func (r *statRepository) Create(ctx context.Context, s *domain.Stat) error {
	query := `INSERT INTO stats (label, value, icon) VALUES ($1, $2, $3) RETURNING id`
	return r.DB.QueryRowContext(ctx, query, s.Label, s.Value, string(s.Icon)).Scan(&s.ID)
}

func (r *statRepository) List(ctx context.Context) ([]*domain.Stat, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, label, value, icon FROM stats ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	stats := make([]*domain.Stat, 0)
	for rows.Next() {
		s := &domain.Stat{}
		var icon string
		if err := rows.Scan(&s.ID, &s.Label, &s.Value, &icon); err != nil {
			return nil, err
		}
		s.Icon = domain.StatIcon(icon)
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *statRepository) Update(ctx context.Context, s *domain.Stat) error {
	return updateByID(ctx, r.DB, `UPDATE stats SET label = $1, value = $2, icon = $3 WHERE id = $4`, s.Label, s.Value, string(s.Icon), s.ID)
}

func (r *statRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, `DELETE FROM stats WHERE id = $1`, id)
}

type testimonialRepository struct {
	DB *sql.DB
}

func NewTestimonialRepository(db *sql.DB) domain.TestimonialRepository {
	return &testimonialRepository{DB: db}
}

func (r *testimonialRepository) Create(ctx context.Context, t *domain.Testimonial) error {
	query := `INSERT INTO testimonials (name, role, organization, quote) VALUES ($1, $2, $3, $4) RETURNING id`
	return r.DB.QueryRowContext(ctx, query, t.Name, t.Role, t.Organization, t.Quote).Scan(&t.ID)
}

func (r *testimonialRepository) List(ctx context.Context) ([]*domain.Testimonial, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, role, organization, quote FROM testimonials ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*domain.Testimonial, 0)
	for rows.Next() {
		t := &domain.Testimonial{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Role, &t.Organization, &t.Quote); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *testimonialRepository) Update(ctx context.Context, t *domain.Testimonial) error {
	return updateByID(ctx, r.DB, `UPDATE testimonials SET name = $1, role = $2, organization = $3, quote = $4 WHERE id = $5`,
		t.Name, t.Role, t.Organization, t.Quote, t.ID)
}

func (r *testimonialRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.DB, `DELETE FROM testimonials WHERE id = $1`, id)
}

func updateByID(ctx context.Context, db *sql.DB, query string, args ...any) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func deleteByID(ctx context.Context, db *sql.DB, query, id string) error {
	return updateByID(ctx, db, query, id)
}
