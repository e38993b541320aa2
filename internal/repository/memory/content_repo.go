package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"governanceevents/internal/domain"
)

// table is an insertion-ordered map of records keyed by id.
type table[T any] struct {
	mu    sync.RWMutex
	rows  map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) insert(id string, v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[id] = v
	t.order = append(t.order, id)
}

func (t *table[T]) get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) replace(id string, v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return domain.ErrNotFound
	}
	t.rows[id] = v
	return nil
}

func (t *table[T]) remove(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(t.rows, id)
	for i, o := range t.order {
		if o == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

func (t *table[T]) all() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

type galleryRepo struct{ t *table[domain.GalleryItem] }

// NewGalleryRepository returns an empty in-memory GalleryRepository.
func NewGalleryRepository() domain.GalleryRepository {
	return &galleryRepo{t: newTable[domain.GalleryItem]()}
}

func (r *galleryRepo) Create(_ context.Context, item *domain.GalleryItem) error {
	item.ID = uuid.NewString()
	r.t.insert(item.ID, *item)
	return nil
}

func (r *galleryRepo) GetByID(_ context.Context, id string) (*domain.GalleryItem, error) {
	item, ok := r.t.get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

// List returns the newest uploads first.
func (r *galleryRepo) List(_ context.Context) ([]*domain.GalleryItem, error) {
	rows := r.t.all()
	out := make([]*domain.GalleryItem, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *galleryRepo) Delete(_ context.Context, id string) error {
	return r.t.remove(id)
}

type statRepo struct{ t *table[domain.Stat] }

// NewStatRepository returns an empty in-memory StatRepository.
func NewStatRepository() domain.StatRepository {
	return &statRepo{t: newTable[domain.Stat]()}
}

func (r *statRepo) Create(_ context.Context, stat *domain.Stat) error {
	stat.ID = uuid.NewString()
	r.t.insert(stat.ID, *stat)
	return nil
}

func (r *statRepo) List(_ context.Context) ([]*domain.Stat, error) {
	rows := r.t.all()
	out := make([]*domain.Stat, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out, nil
}

func (r *statRepo) Update(_ context.Context, stat *domain.Stat) error {
	return r.t.replace(stat.ID, *stat)
}

func (r *statRepo) Delete(_ context.Context, id string) error {
	return r.t.remove(id)
}

type testimonialRepo struct{ t *table[domain.Testimonial] }

// NewTestimonialRepository returns an empty in-memory TestimonialRepository.
func NewTestimonialRepository() domain.TestimonialRepository {
	return &testimonialRepo{t: newTable[domain.Testimonial]()}
}

func (r *testimonialRepo) Create(_ context.Context, t *domain.Testimonial) error {
	t.ID = uuid.NewString()
	r.t.insert(t.ID, *t)
	return nil
}

func (r *testimonialRepo) List(_ context.Context) ([]*domain.Testimonial, error) {
	rows := r.t.all()
	out := make([]*domain.Testimonial, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out, nil
}

func (r *testimonialRepo) Update(_ context.Context, t *domain.Testimonial) error {
	return r.t.replace(t.ID, *t)
}

func (r *testimonialRepo) Delete(_ context.Context, id string) error {
	return r.t.remove(id)
}
