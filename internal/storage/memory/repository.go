// Package memory provides map-backed repositories for tests and ephemeral
// deployments. State lives for the lifetime of the process.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/mrlokans/userbooks/internal/entities"
	"github.com/mrlokans/userbooks/internal/storage"
)

var (
	_ storage.UserRepository = (*Repository[entities.User])(nil)
	_ storage.BookRepository = (*Repository[entities.Book])(nil)
)

// Repository stores entities of one kind in a map keyed by id.
// Ids come from a counter that only grows, so they are never reused.
type Repository[E storage.Entity[E]] struct {
	kind string

	mu     sync.RWMutex
	lastID uint
	items  map[uint]E
}

// NewRepository creates an empty repository; kind names the entity in errors.
func NewRepository[E storage.Entity[E]](kind string) *Repository[E] {
	return &Repository[E]{
		kind:  kind,
		items: make(map[uint]E),
	}
}

func (r *Repository[E]) Save(_ context.Context, entity E) (E, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := entity.GetID()
	if id == 0 {
		r.lastID++
		entity = entity.WithID(r.lastID)
		r.items[r.lastID] = entity
		return entity, nil
	}

	if _, ok := r.items[id]; !ok {
		var zero E
		return zero, storage.NotFound(r.kind, id)
	}
	r.items[id] = entity
	return entity, nil
}

func (r *Repository[E]) FindByID(_ context.Context, id uint) (E, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entity, ok := r.items[id]
	return entity, ok, nil
}

// FindAll returns the stored entities ordered by id.
func (r *Repository[E]) FindAll(_ context.Context) ([]E, error) {
	r.mu.RLock()
	all := make([]E, 0, len(r.items))
	for _, entity := range r.items {
		all = append(all, entity)
	}
	r.mu.RUnlock()

	slices.SortFunc(all, func(a, b E) int {
		return cmp.Compare(a.GetID(), b.GetID())
	})
	return all, nil
}

func (r *Repository[E]) ExistsByID(_ context.Context, id uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[id]
	return ok, nil
}

func (r *Repository[E]) DeleteByID(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

// Store bundles the user and book repositories of one in-memory backend.
type Store struct {
	Users *Repository[entities.User]
	Books *Repository[entities.Book]
}

func NewStore() *Store {
	return &Store{
		Users: NewRepository[entities.User](entities.KindUser),
		Books: NewRepository[entities.Book](entities.KindBook),
	}
}
