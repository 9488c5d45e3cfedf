package backends

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/userbooks/internal/config"
	"github.com/mrlokans/userbooks/internal/database"
	"github.com/mrlokans/userbooks/internal/storage"
	"github.com/mrlokans/userbooks/internal/storage/storagetest"
)

func testConfig(t *testing.T, backend config.StorageBackend) *config.Config {
	t.Helper()
	return &config.Config{
		Storage: config.Storage{Backend: backend},
		Database: config.Database{
			Driver: database.DriverSQLite,
			Path:   filepath.Join(t.TempDir(), "backends.db"),
		},
		Redis: config.Redis{
			Addr:      miniredis.RunT(t).Addr(),
			KeyPrefix: "test",
		},
	}
}

func openTestBackend(t *testing.T, backend config.StorageBackend, metrics *storage.Metrics) *Backend {
	t.Helper()
	b, err := Open(context.Background(), testConfig(t, backend), metrics)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b
}

func TestOpen_EveryBackendHonoursContract(t *testing.T) {
	for _, name := range []config.StorageBackend{
		config.BackendMemory,
		config.BackendORM,
		config.BackendSQL,
		config.BackendRedis,
	} {
		t.Run(string(name), func(t *testing.T) {
			storagetest.Run(t, func(t *testing.T) storagetest.Repositories {
				b := openTestBackend(t, name, nil)
				assert.Equal(t, name, b.Name)
				assert.NoError(t, b.Ping(context.Background()))
				return storagetest.Repositories{Users: b.Users, Books: b.Books}
			})
		})
	}
}

func TestOpen_EmptyNameMeansMemory(t *testing.T) {
	b := openTestBackend(t, "", nil)
	assert.Equal(t, config.BackendMemory, b.Name)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), testConfig(t, "cassandra"), nil)
	assert.ErrorContains(t, err, "unknown storage backend")
}

func TestOpen_ORMRequiresSQLite(t *testing.T) {
	cfg := testConfig(t, config.BackendORM)
	cfg.Database.Driver = database.DriverPostgres

	_, err := Open(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestOpen_WiresMetrics(t *testing.T) {
	metrics := storage.NewMetrics(prometheus.NewRegistry())
	b := openTestBackend(t, config.BackendSQL, metrics)
	ctx := context.Background()

	user, err := b.Users.Save(ctx, storagetest.NewUser("Kirill"))
	require.NoError(t, err)
	_, _, err = b.Books.FindByID(ctx, 999)
	require.NoError(t, err)
	_, err = b.Books.Save(ctx, storagetest.NewBook(user.ID+10, "Orphan"))
	require.ErrorIs(t, err, storage.ErrNotFound)

	ops := metrics.Operations()
	assert.Equal(t, 1.0, testutil.ToFloat64(ops.WithLabelValues("sql", "user", "save", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ops.WithLabelValues("sql", "book", "find_by_id", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ops.WithLabelValues("sql", "book", "save", "not_found")))
}
