package sqlstore

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/userbooks/internal/database"
	"github.com/mrlokans/userbooks/internal/entities"
	"github.com/mrlokans/userbooks/internal/storage"
	"github.com/mrlokans/userbooks/internal/storage/storagetest"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenSQL(context.Background(), database.DriverSQLite, filepath.Join(t.TempDir(), "sql.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRepositoryContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storagetest.Repositories {
		db := setupTestDB(t)
		return storagetest.Repositories{
			Users: NewUserRepository(db, database.DriverSQLite),
			Books: NewBookRepository(db, database.DriverSQLite),
		}
	})
}

func TestRebindDollar(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"SELECT 1", "SELECT 1"},
		{"DELETE FROM BOOK WHERE ID = ?", "DELETE FROM BOOK WHERE ID = $1"},
		{
			"UPDATE PERSON SET FULL_NAME = ?, TITLE = ?, AGE = ? WHERE ID = ?",
			"UPDATE PERSON SET FULL_NAME = $1, TITLE = $2, AGE = $3 WHERE ID = $4",
		},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rebindDollar(tt.in))
	}
}

func TestStatements_PostgresPlaceholders(t *testing.T) {
	pg := bookStatements.rebind(database.DriverPostgres)
	assert.Equal(t, "INSERT INTO BOOK (USER_ID, TITLE, AUTHOR, PAGE_COUNT) VALUES ($1, $2, $3, $4) RETURNING ID", pg.insert)
	assert.Equal(t, "SELECT EXISTS (SELECT 1 FROM BOOK WHERE ID = $1)", pg.exists)
	assert.NotContains(t, pg.update, "?")

	lite := bookStatements.rebind(database.DriverSQLite)
	assert.Equal(t, bookStatements, lite)
}

func TestUpdate_MissingIDIsNotFound(t *testing.T) {
	db := setupTestDB(t)
	books := NewBookRepository(db, database.DriverSQLite)

	_, err := books.Save(context.Background(), storagetest.NewBook(1, "A").WithID(404))
	require.ErrorIs(t, err, storage.ErrNotFound)

	var nf *storage.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, entities.KindBook, nf.Kind)
	assert.Equal(t, uint(404), nf.ID)
}

func TestDelete_MissingIDSucceeds(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db, database.DriverSQLite)

	assert.NoError(t, users.DeleteByID(context.Background(), 404))
}

func TestInsert_MissingOwnerIsNotFound(t *testing.T) {
	db := setupTestDB(t)
	books := NewBookRepository(db, database.DriverSQLite)

	_, err := books.Save(context.Background(), storagetest.NewBook(77, "Orphan"))
	require.ErrorIs(t, err, storage.ErrNotFound)

	var nf *storage.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, entities.KindUser, nf.Kind)
	assert.Equal(t, uint(77), nf.ID)
}

func TestInsert_CheckConstraintIsBackendError(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db, database.DriverSQLite)

	_, err := users.Save(context.Background(), entities.User{FullName: "Old", Title: "reader", Age: 300})
	require.ErrorIs(t, err, storage.ErrBackend)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
}

func TestFindAll_OrderedByID(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db, database.DriverSQLite)
	ctx := context.Background()

	for _, name := range []string{"C", "A", "B"} {
		_, err := users.Save(ctx, storagetest.NewUser(name))
		require.NoError(t, err)
	}

	all, err := users.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"C", "A", "B"}, []string{all[0].FullName, all[1].FullName, all[2].FullName})
	assert.Equal(t, []uint{1, 2, 3}, []uint{all[0].ID, all[1].ID, all[2].ID})
}
