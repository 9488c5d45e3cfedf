// Package sqlstore implements the repositories with one hand-written,
// parameterized statement per operation over database/sql. Queries are
// written with "?" placeholders and rebound to "$n" for Postgres.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/mrlokans/userbooks/internal/database"
	"github.com/mrlokans/userbooks/internal/entities"
	"github.com/mrlokans/userbooks/internal/storage"
)

var (
	_ storage.UserRepository = (*UserRepository)(nil)
	_ storage.BookRepository = (*BookRepository)(nil)
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// statements is the SQL for one table. insert must end in RETURNING ID and
// update must take the id as its last argument.
type statements struct {
	insert   string
	update   string
	findByID string
	findAll  string
	exists   string
	deleteBy string
}

func (s statements) rebind(driver string) statements {
	if driver != database.DriverPostgres {
		return s
	}
	return statements{
		insert:   rebindDollar(s.insert),
		update:   rebindDollar(s.update),
		findByID: rebindDollar(s.findByID),
		findAll:  rebindDollar(s.findAll),
		exists:   rebindDollar(s.exists),
		deleteBy: rebindDollar(s.deleteBy),
	}
}

// rebindDollar rewrites "?" placeholders to "$1", "$2", ...
func rebindDollar(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

type repository[E storage.Entity[E]] struct {
	db   *sql.DB
	kind string
	sql  statements

	// args returns the mutable columns in statement order.
	args func(E) []any
	scan func(scanner) (E, error)
	// writeErr translates a failed INSERT or UPDATE of entity.
	writeErr func(op string, entity E, err error) error
}

func (r *repository[E]) Save(ctx context.Context, entity E) (E, error) {
	var zero E
	id := entity.GetID()

	if id == 0 {
		var newID uint
		if err := r.db.QueryRowContext(ctx, r.sql.insert, r.args(entity)...).Scan(&newID); err != nil {
			return zero, r.writeErr("insert "+r.kind, entity, err)
		}
		return entity.WithID(newID), nil
	}

	res, err := r.db.ExecContext(ctx, r.sql.update, append(r.args(entity), id)...)
	if err != nil {
		return zero, r.writeErr("update "+r.kind, entity, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return zero, storage.Backend("update "+r.kind, err)
	}
	if affected != 1 {
		return zero, storage.NotFound(r.kind, id)
	}
	return entity, nil
}

func (r *repository[E]) FindByID(ctx context.Context, id uint) (E, bool, error) {
	var zero E
	entity, err := r.scan(r.db.QueryRowContext(ctx, r.sql.findByID, id))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return zero, false, nil
	case err != nil:
		return zero, false, storage.Backend("find "+r.kind, err)
	}
	return entity, true, nil
}

// FindAll returns every row ordered by id.
func (r *repository[E]) FindAll(ctx context.Context) ([]E, error) {
	rows, err := r.db.QueryContext(ctx, r.sql.findAll)
	if err != nil {
		return nil, storage.Backend("list "+r.kind, err)
	}
	defer rows.Close()

	all := make([]E, 0)
	for rows.Next() {
		entity, err := r.scan(rows)
		if err != nil {
			return nil, storage.Backend("scan "+r.kind, err)
		}
		all = append(all, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Backend("list "+r.kind, err)
	}
	return all, nil
}

func (r *repository[E]) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, r.sql.exists, id).Scan(&exists); err != nil {
		return false, storage.Backend("exists "+r.kind, err)
	}
	return exists, nil
}

// DeleteByID succeeds whether or not a row was removed.
func (r *repository[E]) DeleteByID(ctx context.Context, id uint) error {
	if _, err := r.db.ExecContext(ctx, r.sql.deleteBy, id); err != nil {
		return storage.Backend("delete "+r.kind, err)
	}
	return nil
}

type UserRepository struct {
	*repository[entities.User]
}

var userStatements = statements{
	insert:   "INSERT INTO PERSON (FULL_NAME, TITLE, AGE) VALUES (?, ?, ?) RETURNING ID",
	update:   "UPDATE PERSON SET FULL_NAME = ?, TITLE = ?, AGE = ? WHERE ID = ?",
	findByID: "SELECT ID, FULL_NAME, TITLE, AGE FROM PERSON WHERE ID = ?",
	findAll:  "SELECT ID, FULL_NAME, TITLE, AGE FROM PERSON ORDER BY ID",
	exists:   "SELECT EXISTS (SELECT 1 FROM PERSON WHERE ID = ?)",
	deleteBy: "DELETE FROM PERSON WHERE ID = ?",
}

// NewUserRepository binds the PERSON statements to db; driver selects the
// placeholder style.
func NewUserRepository(db *sql.DB, driver string) *UserRepository {
	return &UserRepository{&repository[entities.User]{
		db:   db,
		kind: entities.KindUser,
		sql:  userStatements.rebind(driver),
		args: func(u entities.User) []any {
			return []any{u.FullName, u.Title, u.Age}
		},
		scan: func(s scanner) (entities.User, error) {
			var u entities.User
			err := s.Scan(&u.ID, &u.FullName, &u.Title, &u.Age)
			return u, err
		},
		writeErr: func(op string, _ entities.User, err error) error {
			return storage.Backend(op, err)
		},
	}}
}

type BookRepository struct {
	*repository[entities.Book]
}

var bookStatements = statements{
	insert:   "INSERT INTO BOOK (USER_ID, TITLE, AUTHOR, PAGE_COUNT) VALUES (?, ?, ?, ?) RETURNING ID",
	update:   "UPDATE BOOK SET USER_ID = ?, TITLE = ?, AUTHOR = ?, PAGE_COUNT = ? WHERE ID = ?",
	findByID: "SELECT ID, USER_ID, TITLE, AUTHOR, PAGE_COUNT FROM BOOK WHERE ID = ?",
	findAll:  "SELECT ID, USER_ID, TITLE, AUTHOR, PAGE_COUNT FROM BOOK ORDER BY ID",
	exists:   "SELECT EXISTS (SELECT 1 FROM BOOK WHERE ID = ?)",
	deleteBy: "DELETE FROM BOOK WHERE ID = ?",
}

// NewBookRepository binds the BOOK statements to db. Writes that break the
// owner reference are reported as a missing user.
func NewBookRepository(db *sql.DB, driver string) *BookRepository {
	return &BookRepository{&repository[entities.Book]{
		db:   db,
		kind: entities.KindBook,
		sql:  bookStatements.rebind(driver),
		args: func(b entities.Book) []any {
			return []any{b.UserID, b.Title, b.Author, b.PageCount}
		},
		scan: func(s scanner) (entities.Book, error) {
			var b entities.Book
			err := s.Scan(&b.ID, &b.UserID, &b.Title, &b.Author, &b.PageCount)
			return b, err
		},
		writeErr: func(op string, book entities.Book, err error) error {
			if database.IsForeignKeyViolation(err) {
				return storage.NotFound(entities.KindUser, book.UserID)
			}
			return storage.Backend(op, err)
		},
	}}
}
