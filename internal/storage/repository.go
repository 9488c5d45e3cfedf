// Package storage defines the repository contract shared by every storage
// backend, together with the errors backends report through it.
//
// # Backends
//
//	storage/
//	├── memory/       # mutex-guarded maps, counter-assigned ids
//	├── orm/          # gorm models over SQLite, database-assigned ids
//	├── sqlstore/     # hand-written statements over database/sql
//	├── redisstore/   # JSON records in Redis hashes, INCR-assigned ids
//	└── backends/     # selects and opens one of the above from config
//
// Every backend exposes a User and a Book repository satisfying
// Repository[E, uint]. The shared contract tests in storagetest run against
// all of them.
package storage

import (
	"context"

	"github.com/mrlokans/userbooks/internal/entities"
)

// Repository is the storage contract for one entity type.
//
// Save inserts when the entity's id is zero and assigns a fresh id; otherwise
// it overwrites the stored record and fails with a *NotFoundError when no
// record has that id. FindByID reports absence through its boolean, never
// through an error. FindAll returns a copy that callers may mutate freely.
// ExistsByID and DeleteByID treat absence as a normal outcome.
type Repository[E any, K comparable] interface {
	Save(ctx context.Context, entity E) (E, error)
	FindByID(ctx context.Context, id K) (E, bool, error)
	FindAll(ctx context.Context) ([]E, error)
	ExistsByID(ctx context.Context, id K) (bool, error)
	DeleteByID(ctx context.Context, id K) error
}

// Entity is implemented by records whose identifier is assigned by a backend.
type Entity[E any] interface {
	GetID() uint
	WithID(id uint) E
}

type (
	UserRepository = Repository[entities.User, uint]
	BookRepository = Repository[entities.Book, uint]
)
