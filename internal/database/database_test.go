package database

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(context.Background(), filepath.Join(t.TempDir(), "test.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSplitStatements(t *testing.T) {
	for _, dialect := range []string{DialectSQLite, DialectPostgres} {
		t.Run(dialect, func(t *testing.T) {
			ddl, err := Schema(dialect)
			require.NoError(t, err)

			stmts := SplitStatements(ddl)
			require.Len(t, stmts, 3)
			assert.Contains(t, stmts[0], "CREATE TABLE IF NOT EXISTS PERSON")
			assert.Contains(t, stmts[1], "CREATE TABLE IF NOT EXISTS BOOK")
			assert.Contains(t, stmts[2], "CREATE INDEX IF NOT EXISTS IDX_BOOK_USER_ID")
			for _, stmt := range stmts {
				assert.NotContains(t, stmt, "--")
			}
		})
	}
}

func TestSplitStatements_UnterminatedTail(t *testing.T) {
	stmts := SplitStatements("-- header\nSELECT 1;\n\nSELECT 2")
	assert.Equal(t, []string{"SELECT 1;", "SELECT 2"}, stmts)
}

func TestSchema_UnknownDialect(t *testing.T) {
	_, err := Schema("mysql")
	assert.Error(t, err)

	_, err = DialectFor("mysql")
	assert.Error(t, err)
}

func TestDialectFor(t *testing.T) {
	dialect, err := DialectFor(DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, DialectSQLite, dialect)

	dialect, err = DialectFor(DriverPostgres)
	require.NoError(t, err)
	assert.Equal(t, DialectPostgres, dialect)
}

func TestNewDatabase_CreatesTables(t *testing.T) {
	db := setupTestDB(t)

	var tables []string
	err := db.DB.Raw("SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('PERSON', 'BOOK') ORDER BY name").
		Scan(&tables).Error
	require.NoError(t, err)
	assert.Equal(t, []string{"BOOK", "PERSON"}, tables)

	assert.NoError(t, db.Ping(context.Background()))
}

func TestApplySchema_Idempotent(t *testing.T) {
	ctx := context.Background()
	sqlDB, err := OpenSQL(ctx, DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.NoError(t, ApplySchema(ctx, sqlDB, DriverSQLite))
}

func TestOpenSQL_UnsupportedDriver(t *testing.T) {
	_, err := OpenSQL(context.Background(), "mysql", "whatever")
	assert.Error(t, err)
}

func TestSchema_EnforcesConstraints(t *testing.T) {
	ctx := context.Background()
	sqlDB, err := OpenSQL(ctx, DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	t.Run("book owner must exist", func(t *testing.T) {
		_, err := sqlDB.ExecContext(ctx,
			"INSERT INTO BOOK (USER_ID, TITLE, AUTHOR, PAGE_COUNT) VALUES (?, ?, ?, ?)", 99, "A", "X", 100)
		require.Error(t, err)
		assert.True(t, IsForeignKeyViolation(err))
	})

	t.Run("age bounds", func(t *testing.T) {
		_, err := sqlDB.ExecContext(ctx,
			"INSERT INTO PERSON (FULL_NAME, TITLE, AGE) VALUES (?, ?, ?)", "Kirill", "reader", 126)
		require.Error(t, err)
		assert.False(t, IsForeignKeyViolation(err))
	})

	t.Run("page count positive", func(t *testing.T) {
		res, err := sqlDB.ExecContext(ctx,
			"INSERT INTO PERSON (FULL_NAME, TITLE, AGE) VALUES (?, ?, ?)", "Kirill", "reader", 50)
		require.NoError(t, err)
		userID, err := res.LastInsertId()
		require.NoError(t, err)

		_, err = sqlDB.ExecContext(ctx,
			"INSERT INTO BOOK (USER_ID, TITLE, AUTHOR, PAGE_COUNT) VALUES (?, ?, ?, ?)", userID, "A", "X", 0)
		assert.Error(t, err)
	})
}

func TestIsForeignKeyViolation_Postgres(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", Message: "insert or update on table \"book\" violates foreign key constraint"}
	assert.True(t, IsForeignKeyViolation(fk))
	assert.True(t, IsForeignKeyViolation(fmt.Errorf("insert book: %w", fk)))

	unique := &pgconn.PgError{Code: "23505"}
	assert.False(t, IsForeignKeyViolation(unique))

	assert.False(t, IsForeignKeyViolation(errors.New("connection refused")))
	assert.False(t, IsForeignKeyViolation(nil))
}
