package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"governanceevents/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestGalleryRepository(t *testing.T) {
	ctx := context.Background()
	stamp := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewGalleryRepository(db)

	item := &domain.GalleryItem{Filename: "abc.jpg", Title: "Retreat", CreatedAt: stamp}
	mock.ExpectQuery(`INSERT INTO gallery_items`).
		WithArgs("abc.jpg", "Retreat", "", stamp).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("g-1"))
	require.NoError(t, repo.Create(ctx, item))
	require.Equal(t, "g-1", item.ID)

	mock.ExpectQuery(`SELECT id, filename, title, description, created_at FROM gallery_items ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "filename", "title", "description", "created_at"}).
			AddRow("g-1", "abc.jpg", "Retreat", "", stamp))
	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	mock.ExpectQuery(`SELECT (.+) FROM gallery_items WHERE id = \$1`).WithArgs("g-2").WillReturnError(sql.ErrNoRows)
	_, err = repo.GetByID(ctx, "g-2")
	require.ErrorIs(t, err, domain.ErrNotFound)

	mock.ExpectExec(`DELETE FROM gallery_items WHERE id = \$1`).WithArgs("g-1").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(ctx, "g-1"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatRepository(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewStatRepository(db)

	mock.ExpectQuery(`SELECT id, label, value, icon FROM stats ORDER BY position ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "label", "value", "icon"}).AddRow("s-1", "Directors Trained", "500+", "Users"))
	stats, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.StatIconUsers, stats[0].Icon)

	mock.ExpectExec(`UPDATE stats SET label = \$1, value = \$2, icon = \$3 WHERE id = \$4`).
		WithArgs("Directors Trained", "600+", "Users", "s-9").
		WillReturnResult(sqlmock.NewResult(0, 0))
	err = repo.Update(ctx, &domain.Stat{ID: "s-9", Label: "Directors Trained", Value: "600+", Icon: domain.StatIconUsers})
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTestimonialRepository(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTestimonialRepository(db)

	tm := &domain.Testimonial{Name: "A. Director", Role: "Chair", Organization: "Acme", Quote: "Excellent."}
	mock.ExpectQuery(`INSERT INTO testimonials`).
		WithArgs("A. Director", "Chair", "Acme", "Excellent.").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("t-1"))
	require.NoError(t, repo.Create(ctx, tm))
	require.Equal(t, "t-1", tm.ID)

	mock.ExpectExec(`DELETE FROM testimonials WHERE id = \$1`).WithArgs("t-1").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(ctx, "t-1"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminUserRepository(t *testing.T) {
	ctx := context.Background()
	stamp := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewAdminUserRepository(db)

	mock.ExpectQuery(`INSERT INTO admin_users`).
		WithArgs("admin@example.com", "hash", "salt", stamp, stamp).
		WillReturnError(&pq.Error{Code: "23505"})
	err = repo.Create(ctx, domain.NewAdminUser("Admin@Example.com", "hash", "salt", stamp))
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	mock.ExpectQuery(`SELECT (.+) FROM admin_users WHERE email = \$1`).
		WithArgs("admin@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "salt", "created_at", "updated_at"}).
			AddRow("u-1", "admin@example.com", "hash", "salt", stamp, stamp))
	u, err := repo.GetByEmail(ctx, "ADMIN@example.com")
	require.NoError(t, err)
	require.Equal(t, "u-1", u.ID)

	mock.ExpectQuery(`SELECT (.+) FROM admin_users WHERE email = \$1`).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)
	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
