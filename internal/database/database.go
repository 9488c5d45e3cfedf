package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"

	// pgForeignKeyViolation is SQLSTATE foreign_key_violation.
	pgForeignKeyViolation = "23503"
)

// Database is the gorm handle used by the ORM backend.
type Database struct {
	DB *gorm.DB
}

// SQLiteDSN enables foreign keys, WAL journaling and a busy timeout on every
// connection opened for path.
func SQLiteDSN(path string) string {
	return path + "?_foreign_keys=on&_journal=WAL&_busy_timeout=5000"
}

// NewDatabase opens the SQLite file at dbPath through gorm and applies the
// relational schema. The schema is never auto-migrated from gorm models.
func NewDatabase(ctx context.Context, dbPath string, logSQL bool) (*Database, error) {
	level := logger.Silent
	if logSQL {
		level = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(SQLiteDSN(dbPath)), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database handle: %w", err)
	}
	if err := ApplySchema(ctx, sqlDB, DriverSQLite); err != nil {
		sqlDB.Close()
		return nil, err
	}

	logrus.WithField("path", dbPath).Info("database initialized")

	return &Database{DB: db}, nil
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// OpenSQL opens a database/sql pool for driver, verifies it answers and
// applies the schema. For SQLite, dsn is a file path.
func OpenSQL(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverSQLite:
		dsn = SQLiteDSN(dsn)
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}
	if err := ApplySchema(ctx, db, driver); err != nil {
		db.Close()
		return nil, err
	}

	logrus.WithField("driver", driver).Info("database initialized")

	return db, nil
}

// IsForeignKeyViolation reports whether err is a driver error for a broken
// foreign key reference, for either supported driver.
func IsForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return false
}
