// Package database owns the relational side of userbooks: connection setup
// for SQLite (mattn/go-sqlite3) and Postgres (pgx), and the shared schema.
//
// # Schema
//
// The layout is written once per dialect and embedded:
//
//	database/
//	├── database.go      # gorm and database/sql connection setup
//	├── schema.go        # embedded DDL, dialect lookup, statement splitting
//	└── schema/
//	    ├── sqlite.sql   # AUTOINCREMENT ids
//	    └── postgres.sql # identity columns
//
// Both relational backends run against the same DDL. gorm models are mapped
// onto the existing PERSON and BOOK tables and are never auto-migrated, so
// the CHECK and FOREIGN KEY constraints have a single source.
//
// # Usage
//
//	// ORM backend
//	db, err := database.NewDatabase(ctx, "./userbooks.db", false)
//	users := orm.NewUserRepository(db.DB)
//
//	// Raw SQL backend
//	sqlDB, err := database.OpenSQL(ctx, database.DriverPostgres, dsn)
//	books := sqlstore.NewBookRepository(sqlDB, database.DriverPostgres)
//
// Printing the DDL for provisioning a database by hand:
//
//	ddl, err := database.Schema(database.DialectPostgres)
package database
