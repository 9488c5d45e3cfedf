package database

import (
	"bufio"
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
)

//go:embed schema/*.sql
var schemaFS embed.FS

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// DialectFor maps a database/sql driver name to its schema dialect.
func DialectFor(driver string) (string, error) {
	switch driver {
	case DriverSQLite:
		return DialectSQLite, nil
	case DriverPostgres:
		return DialectPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Schema returns the DDL script for dialect.
func Schema(dialect string) (string, error) {
	switch dialect {
	case DialectSQLite, DialectPostgres:
	default:
		return "", fmt.Errorf("unknown schema dialect %q", dialect)
	}
	ddl, err := schemaFS.ReadFile("schema/" + dialect + ".sql")
	if err != nil {
		return "", fmt.Errorf("failed to read %s schema: %w", dialect, err)
	}
	return string(ddl), nil
}

// ApplySchema executes every statement of the driver's DDL. The statements
// are idempotent, so it is safe on an initialised database.
func ApplySchema(ctx context.Context, db *sql.DB, driver string) error {
	dialect, err := DialectFor(driver)
	if err != nil {
		return err
	}
	ddl, err := Schema(dialect)
	if err != nil {
		return err
	}
	for _, stmt := range SplitStatements(ddl) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply %s schema: %w", dialect, err)
		}
	}
	return nil
}

// SplitStatements splits a semicolon-terminated DDL script into executable
// statements, dropping blank lines and "--" comment lines.
func SplitStatements(ddl string) []string {
	scanner := bufio.NewScanner(strings.NewReader(ddl))
	var stmts []string
	var current strings.Builder

	flush := func() {
		if stmt := strings.TrimSpace(current.String()); stmt != "" {
			stmts = append(stmts, stmt)
		}
		current.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteByte('\n')
		if strings.HasSuffix(trimmed, ";") {
			flush()
		}
	}
	flush()

	return stmts
}
