package domain

import (
	"context"
	"io"
	"time"
)

// GalleryItem is an uploaded image shown in the site gallery.
// swagger:model GalleryItem
type GalleryItem struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// StatIcon names the icon rendered next to a stat.
type StatIcon string

const (
	StatIconShield StatIcon = "Shield"
	StatIconUsers  StatIcon = "Users"
	StatIconScale  StatIcon = "Scale"
)

// Valid reports whether i is one of the icons the site can render.
func (i StatIcon) Valid() bool {
	return i == StatIconShield || i == StatIconUsers || i == StatIconScale
}

// Stat is a headline figure such as "500+ Directors Trained".
// swagger:model Stat
type Stat struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Value string   `json:"value"`
	Icon  StatIcon `json:"icon"`
}

// Testimonial is a client quote.
// swagger:model Testimonial
type Testimonial struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Organization string `json:"organization"`
	Quote        string `json:"quote"`
}

// GalleryRepository defines storage operations for gallery items.
type GalleryRepository interface {
	Create(ctx context.Context, item *GalleryItem) error
	GetByID(ctx context.Context, id string) (*GalleryItem, error)
	List(ctx context.Context) ([]*GalleryItem, error)
	Delete(ctx context.Context, id string) error
}

// StatRepository defines storage operations for stats.
type StatRepository interface {
	Create(ctx context.Context, stat *Stat) error
	List(ctx context.Context) ([]*Stat, error)
	Update(ctx context.Context, stat *Stat) error
	Delete(ctx context.Context, id string) error
}

// TestimonialRepository defines storage operations for testimonials.
type TestimonialRepository interface {
	Create(ctx context.Context, t *Testimonial) error
	List(ctx context.Context) ([]*Testimonial, error)
	Update(ctx context.Context, t *Testimonial) error
	Delete(ctx context.Context, id string) error
}

// FileStore persists uploaded binaries (infrastructure port).
type FileStore interface {
	// Save stores r under a generated name derived from originalName and returns that name.
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
	Delete(ctx context.Context, name string) error
}

// ContentService manages the site's gallery, stats and testimonials.
type ContentService interface {
	ListGallery(ctx context.Context) ([]*GalleryItem, error)
	UploadGalleryItem(ctx context.Context, originalName string, r io.Reader, title, description string) (*GalleryItem, error)
	DeleteGalleryItem(ctx context.Context, id string) error

	ListStats(ctx context.Context) ([]*Stat, error)
	CreateStat(ctx context.Context, stat *Stat) error
	UpdateStat(ctx context.Context, stat *Stat) error
	DeleteStat(ctx context.Context, id string) error

	ListTestimonials(ctx context.Context) ([]*Testimonial, error)
	CreateTestimonial(ctx context.Context, t *Testimonial) error
	UpdateTestimonial(ctx context.Context, t *Testimonial) error
	DeleteTestimonial(ctx context.Context, id string) error
}
