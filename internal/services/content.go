package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"governanceevents/internal/domain"
)

type contentService struct {
	gallery        domain.GalleryRepository
	stats          domain.StatRepository
	testimonials   domain.TestimonialRepository
	files          domain.FileStore
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewContentService returns a ContentService. Uploaded gallery images are written to files.
func NewContentService(
	gallery domain.GalleryRepository,
	stats domain.StatRepository,
	testimonials domain.TestimonialRepository,
	files domain.FileStore,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ContentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &contentService{
		gallery:        gallery,
		stats:          stats,
		testimonials:   testimonials,
		files:          files,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *contentService) ListGallery(ctx context.Context) ([]*domain.GalleryItem, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.gallery.List(ctx)
}

func (s *contentService) UploadGalleryItem(ctx context.Context, originalName string, r io.Reader, title, description string) (*domain.GalleryItem, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.NewValidationError(map[string]string{"title": "Title is required"})
	}
	name, err := s.files.Save(ctx, originalName, r)
	if err != nil {
		return nil, fmt.Errorf("save gallery image: %w", err)
	}
	item := &domain.GalleryItem{
		Filename:    name,
		Title:       title,
		Description: strings.TrimSpace(description),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.gallery.Create(ctx, item); err != nil {
		if derr := s.files.Delete(ctx, name); derr != nil {
			s.logger.WarnContext(ctx, "remove orphaned gallery image", "filename", name, "error", derr)
		}
		return nil, fmt.Errorf("create gallery item: %w", err)
	}
	return item, nil
}

func (s *contentService) DeleteGalleryItem(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	item, err := s.gallery.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.gallery.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.files.Delete(ctx, item.Filename); err != nil && !isNotFound(err) {
		s.logger.WarnContext(ctx, "remove gallery image", "filename", item.Filename, "error", err)
	}
	return nil
}

func (s *contentService) ListStats(ctx context.Context) ([]*domain.Stat, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.stats.List(ctx)
}

func (s *contentService) CreateStat(ctx context.Context, stat *domain.Stat) error {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := prepareStat(stat); err != nil {
		return err
	}
	return s.stats.Create(ctx, stat)
}

func (s *contentService) UpdateStat(ctx context.Context, stat *domain.Stat) error {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if stat == nil || stat.ID == "" {
		return fmt.Errorf("stat id is required: %w", domain.ErrInvalidInput)
	}
	if err := prepareStat(stat); err != nil {
		return err
	}
	return s.stats.Update(ctx, stat)
}

func (s *contentService) DeleteStat(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.stats.Delete(ctx, id)
}

func (s *contentService) ListTestimonials(ctx context.Context) ([]*domain.Testimonial, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.testimonials.List(ctx)
}

func (s *contentService) CreateTestimonial(ctx context.Context, t *domain.Testimonial) error {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := prepareTestimonial(t); err != nil {
		return err
	}
	return s.testimonials.Create(ctx, t)
}

func (s *contentService) UpdateTestimonial(ctx context.Context, t *domain.Testimonial) error {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if t == nil || t.ID == "" {
		return fmt.Errorf("testimonial id is required: %w", domain.ErrInvalidInput)
	}
	if err := prepareTestimonial(t); err != nil {
		return err
	}
	return s.testimonials.Update(ctx, t)
}

func (s *contentService) DeleteTestimonial(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.testimonials.Delete(ctx, id)
}

func prepareStat(stat *domain.Stat) error {
	if stat == nil {
		return fmt.Errorf("stat is required: %w", domain.ErrInvalidInput)
	}
	stat.Label = strings.TrimSpace(stat.Label)
	stat.Value = strings.TrimSpace(stat.Value)
	fields := map[string]string{}
	if stat.Label == "" {
		fields["label"] = "Label is required"
	}
	if stat.Value == "" {
		fields["value"] = "Value is required"
	}
	if !stat.Icon.Valid() {
		fields["icon"] = "Icon must be one of: Shield, Users, Scale"
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	return nil
}

func prepareTestimonial(t *domain.Testimonial) error {
	if t == nil {
		return fmt.Errorf("testimonial is required: %w", domain.ErrInvalidInput)
	}
	t.Name = strings.TrimSpace(t.Name)
	t.Role = strings.TrimSpace(t.Role)
	t.Organization = strings.TrimSpace(t.Organization)
	t.Quote = strings.TrimSpace(t.Quote)
	fields := map[string]string{}
	if t.Name == "" {
		fields["name"] = "Name is required"
	}
	if t.Quote == "" {
		fields["quote"] = "Quote is required"
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	return nil
}
