// Package orm implements the repositories on top of gorm. Rows are mapped
// onto the PERSON and BOOK tables created by the database package.
//
// Besides the shared repository contract, UserRepository exposes the
// PERSON to BOOK association: FindWithBooks preloads a user's books and
// SaveWithBooks cascades one write to them. Callers reach these through a
// type assertion on the concrete repository (cmd/seed reads seeded readers
// back with FindWithBooks); the services stay on the shared contract.
package orm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/userbooks/internal/database"
	"github.com/mrlokans/userbooks/internal/entities"
	"github.com/mrlokans/userbooks/internal/storage"
)

var (
	_ storage.UserRepository = (*UserRepository)(nil)
	_ storage.BookRepository = (*BookRepository)(nil)
)

// repository holds the CRUD shared by both entity kinds. E is the domain
// record, R the gorm record it maps to.
type repository[E storage.Entity[E], R any] struct {
	db   *gorm.DB
	kind string

	toRecord   func(E) R
	fromRecord func(R) E
	// writeErr translates a failed INSERT or UPDATE of entity.
	writeErr func(op string, entity E, err error) error
}

func (r *repository[E, R]) Save(ctx context.Context, entity E) (E, error) {
	var zero E
	db := r.db.WithContext(ctx)
	rec := r.toRecord(entity)

	if entity.GetID() == 0 {
		if err := db.Create(&rec).Error; err != nil {
			return zero, r.writeErr("insert "+r.kind, entity, err)
		}
		return r.fromRecord(rec), nil
	}

	// Save falls back to an upsert when the UPDATE matches no row, so the
	// id is checked first.
	if err := r.requireExisting(db, entity.GetID()); err != nil {
		return zero, err
	}
	if err := db.Save(&rec).Error; err != nil {
		return zero, r.writeErr("update "+r.kind, entity, err)
	}
	return r.fromRecord(rec), nil
}

func (r *repository[E, R]) requireExisting(db *gorm.DB, id uint) error {
	err := db.Select("ID").Take(new(R), id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return storage.NotFound(r.kind, id)
	case err != nil:
		return storage.Backend("lookup "+r.kind, err)
	}
	return nil
}

func (r *repository[E, R]) FindByID(ctx context.Context, id uint) (E, bool, error) {
	var zero E
	var rec R
	err := r.db.WithContext(ctx).Take(&rec, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return zero, false, nil
	case err != nil:
		return zero, false, storage.Backend("find "+r.kind, err)
	}
	return r.fromRecord(rec), true, nil
}

// FindAll returns every row ordered by id.
func (r *repository[E, R]) FindAll(ctx context.Context) ([]E, error) {
	var records []R
	if err := r.db.WithContext(ctx).Order("ID").Find(&records).Error; err != nil {
		return nil, storage.Backend("list "+r.kind, err)
	}
	all := make([]E, 0, len(records))
	for _, rec := range records {
		all = append(all, r.fromRecord(rec))
	}
	return all, nil
}

func (r *repository[E, R]) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(new(R)).Where("ID = ?", id).Count(&count).Error; err != nil {
		return false, storage.Backend("count "+r.kind, err)
	}
	return count > 0, nil
}

func (r *repository[E, R]) DeleteByID(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(new(R), id).Error; err != nil {
		return storage.Backend("delete "+r.kind, err)
	}
	return nil
}

// UserRepository persists users in PERSON. Deleting a user never touches
// the BOOK rows that reference it.
type UserRepository struct {
	*repository[entities.User, userRecord]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{&repository[entities.User, userRecord]{
		db:         db,
		kind:       entities.KindUser,
		toRecord:   toUserRecord,
		fromRecord: fromUserRecord,
		writeErr: func(op string, _ entities.User, err error) error {
			return storage.Backend(op, err)
		},
	}}
}

// FindWithBooks loads a user together with the books it owns, ordered by id.
func (r *UserRepository) FindWithBooks(ctx context.Context, id uint) (entities.User, []entities.Book, bool, error) {
	var rec userRecord
	err := r.db.WithContext(ctx).
		Preload("Books", func(db *gorm.DB) *gorm.DB {
			return db.Order("ID")
		}).
		Take(&rec, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return entities.User{}, nil, false, nil
	case err != nil:
		return entities.User{}, nil, false, storage.Backend("find user with books", err)
	}
	return fromUserRecord(rec), fromBookRecords(rec.Books), true, nil
}

// SaveWithBooks saves the user and cascades the write to books: books
// without an id are inserted, the others are updated. Books are always
// attached to the saved user, whatever UserID they carry.
func (r *UserRepository) SaveWithBooks(ctx context.Context, user entities.User, books []entities.Book) (entities.User, []entities.Book, error) {
	db := r.db.WithContext(ctx)
	rec := toUserRecord(user)
	rec.Books = make([]bookRecord, 0, len(books))
	for _, b := range books {
		b.UserID = user.ID
		rec.Books = append(rec.Books, toBookRecord(b))
	}

	if user.ID == 0 {
		if err := db.Create(&rec).Error; err != nil {
			return entities.User{}, nil, storage.Backend("insert user with books", err)
		}
		return fromUserRecord(rec), fromBookRecords(rec.Books), nil
	}

	if err := r.requireExisting(db, user.ID); err != nil {
		return entities.User{}, nil, err
	}
	if err := db.Session(&gorm.Session{FullSaveAssociations: true}).Save(&rec).Error; err != nil {
		return entities.User{}, nil, storage.Backend("update user with books", err)
	}
	return fromUserRecord(rec), fromBookRecords(rec.Books), nil
}

// BookRepository persists books in BOOK. A book whose owner does not exist
// is rejected by the foreign key and reported as a missing user.
type BookRepository struct {
	*repository[entities.Book, bookRecord]
}

func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{&repository[entities.Book, bookRecord]{
		db:         db,
		kind:       entities.KindBook,
		toRecord:   toBookRecord,
		fromRecord: fromBookRecord,
		writeErr: func(op string, book entities.Book, err error) error {
			if database.IsForeignKeyViolation(err) {
				return storage.NotFound(entities.KindUser, book.UserID)
			}
			return storage.Backend(op, err)
		},
	}}
}
