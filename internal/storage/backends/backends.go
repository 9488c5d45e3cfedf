// Package backends opens the storage backend named in the configuration.
// Callers receive repositories behind the storage interfaces and never
// branch on the backend themselves.
package backends

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/userbooks/internal/config"
	"github.com/mrlokans/userbooks/internal/database"
	"github.com/mrlokans/userbooks/internal/entities"
	"github.com/mrlokans/userbooks/internal/storage"
	"github.com/mrlokans/userbooks/internal/storage/memory"
	"github.com/mrlokans/userbooks/internal/storage/orm"
	"github.com/mrlokans/userbooks/internal/storage/redisstore"
	"github.com/mrlokans/userbooks/internal/storage/sqlstore"
)

// Backend is an opened storage backend.
type Backend struct {
	Name  config.StorageBackend
	Users storage.UserRepository
	Books storage.BookRepository

	ping  func(context.Context) error
	close func() error
}

// Ping reports whether the backend answers.
func (b *Backend) Ping(ctx context.Context) error {
	if b.ping == nil {
		return nil
	}
	return b.ping(ctx)
}

// Close releases the backend's connections.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Open connects the backend selected by cfg.Storage.Backend. A non-nil
// metrics wraps both repositories with instrumentation.
func Open(ctx context.Context, cfg *config.Config, metrics *storage.Metrics) (*Backend, error) {
	var (
		backend *Backend
		err     error
	)

	switch cfg.Storage.Backend {
	case config.BackendMemory, "":
		backend = openMemory()
	case config.BackendORM:
		backend, err = openORM(ctx, cfg.Database)
	case config.BackendSQL:
		backend, err = openSQL(ctx, cfg.Database)
	case config.BackendRedis:
		backend, err = openRedis(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s backend: %w", cfg.Storage.Backend, err)
	}

	name := string(backend.Name)
	backend.Users = storage.Instrument(backend.Users, metrics, name, entities.KindUser)
	backend.Books = storage.Instrument(backend.Books, metrics, name, entities.KindBook)

	logrus.WithField("backend", name).Info("storage backend opened")

	return backend, nil
}

func openMemory() *Backend {
	store := memory.NewStore()
	return &Backend{
		Name:  config.BackendMemory,
		Users: store.Users,
		Books: store.Books,
	}
}

func openORM(ctx context.Context, cfg config.Database) (*Backend, error) {
	if cfg.Driver != database.DriverSQLite {
		return nil, fmt.Errorf("orm backend supports only the %s driver, got %q", database.DriverSQLite, cfg.Driver)
	}
	db, err := database.NewDatabase(ctx, cfg.Path, cfg.LogSQL)
	if err != nil {
		return nil, err
	}
	return &Backend{
		Name:  config.BackendORM,
		Users: orm.NewUserRepository(db.DB),
		Books: orm.NewBookRepository(db.DB),
		ping:  db.Ping,
		close: db.Close,
	}, nil
}

func openSQL(ctx context.Context, cfg config.Database) (*Backend, error) {
	dsn := cfg.DSN
	if cfg.Driver == database.DriverSQLite {
		dsn = cfg.Path
	}
	db, err := database.OpenSQL(ctx, cfg.Driver, dsn)
	if err != nil {
		return nil, err
	}
	return &Backend{
		Name:  config.BackendSQL,
		Users: sqlstore.NewUserRepository(db, cfg.Driver),
		Books: sqlstore.NewBookRepository(db, cfg.Driver),
		ping:  db.PingContext,
		close: db.Close,
	}, nil
}

func openRedis(ctx context.Context, cfg config.Redis) (*Backend, error) {
	store, err := redisstore.Open(ctx, redisstore.Config{
		Addr:      cfg.Addr,
		Password:  cfg.Password,
		Database:  cfg.DB,
		KeyPrefix: cfg.KeyPrefix,
	})
	if err != nil {
		return nil, err
	}
	return &Backend{
		Name:  config.BackendRedis,
		Users: store.Users,
		Books: store.Books,
		ping:  store.Ping,
		close: store.Close,
	}, nil
}
