package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// UserBooksFacade manages a user together with the books it owns. It is the
// only component that talks to both services.
//
// Multi-step operations are not transactional: when a step fails, the
// steps before it stay applied and the error is returned as is.
type UserBooksFacade struct {
	users Users
	books Books
	log   *logrus.Entry
}

func NewUserBooksFacade(users Users, books Books, log *logrus.Entry) *UserBooksFacade {
	return &UserBooksFacade{users: users, books: books, log: log}
}

// CreateUserWithBooks creates the user, then each non-nil book in order.
func (f *UserBooksFacade) CreateUserWithBooks(ctx context.Context, user UserSpec, books []*BookSpec) (UserBookResult, error) {
	log := f.log.WithField("operation", "create_user_with_books")
	log.WithField("request", user).Debug("creating user")

	dto := user.Dto()
	log.WithField("user", dto).Debug("mapped user")

	created, err := f.users.CreateUser(ctx, dto)
	if err != nil {
		return UserBookResult{}, err
	}

	bookIDs, err := f.createBooks(ctx, log, created.ID, books)
	if err != nil {
		return UserBookResult{}, err
	}

	log.WithFields(logrus.Fields{"userId": created.ID, "bookIds": bookIDs}).Info("user created")
	return UserBookResult{UserID: created.ID, BookIDs: bookIDs}, nil
}

// UpdateUserWithBooks updates the user and replaces all of its books with
// the given ones.
func (f *UserBooksFacade) UpdateUserWithBooks(ctx context.Context, user UserUpdateSpec, books []*BookSpec) (UserBookResult, error) {
	log := f.log.WithFields(logrus.Fields{"operation": "update_user_with_books", "userId": user.ID})
	log.WithField("request", user).Debug("updating user")

	updated, err := f.users.UpdateUser(ctx, user.Dto())
	if err != nil {
		return UserBookResult{}, err
	}

	if err := f.deleteOwnedBooks(ctx, log, updated.ID); err != nil {
		return UserBookResult{}, err
	}

	bookIDs, err := f.createBooks(ctx, log, updated.ID, books)
	if err != nil {
		return UserBookResult{}, err
	}

	log.WithField("bookIds", bookIDs).Info("user updated")
	return UserBookResult{UserID: updated.ID, BookIDs: bookIDs}, nil
}

// GetUserWithBooks returns the user id and the ids of the books it owns.
func (f *UserBooksFacade) GetUserWithBooks(ctx context.Context, userID uint) (UserBookResult, error) {
	user, err := f.users.GetUserByID(ctx, userID)
	if err != nil {
		return UserBookResult{}, err
	}

	owned, err := f.ownedBooks(ctx, user.ID)
	if err != nil {
		return UserBookResult{}, err
	}

	bookIDs := make([]uint, 0, len(owned))
	for _, b := range owned {
		bookIDs = append(bookIDs, b.ID)
	}
	return UserBookResult{UserID: user.ID, BookIDs: bookIDs}, nil
}

// DeleteUserWithBooks deletes the user's books, then the user.
func (f *UserBooksFacade) DeleteUserWithBooks(ctx context.Context, userID uint) error {
	log := f.log.WithFields(logrus.Fields{"operation": "delete_user_with_books", "userId": userID})

	if _, err := f.users.GetUserByID(ctx, userID); err != nil {
		return err
	}
	if err := f.deleteOwnedBooks(ctx, log, userID); err != nil {
		return err
	}
	if err := f.users.DeleteUserByID(ctx, userID); err != nil {
		return err
	}

	log.Info("user deleted")
	return nil
}

func (f *UserBooksFacade) createBooks(ctx context.Context, log *logrus.Entry, userID uint, books []*BookSpec) ([]uint, error) {
	ids := make([]uint, 0, len(books))
	for i, spec := range books {
		if spec == nil {
			continue
		}
		dto := spec.Dto(userID)
		log.WithFields(logrus.Fields{"index": i, "book": dto}).Debug("creating book")

		created, err := f.books.CreateBook(ctx, dto)
		if err != nil {
			return nil, fmt.Errorf("book %d: %w", i, err)
		}
		ids = append(ids, created.ID)
	}
	return ids, nil
}

// ownedBooks finds the user's books by scanning all of them.
func (f *UserBooksFacade) ownedBooks(ctx context.Context, userID uint) ([]BookDto, error) {
	all, err := f.books.GetAllBooks(ctx)
	if err != nil {
		return nil, err
	}
	owned := make([]BookDto, 0)
	for _, b := range all {
		if b.Entity().OwnedBy(userID) {
			owned = append(owned, b)
		}
	}
	return owned, nil
}

func (f *UserBooksFacade) deleteOwnedBooks(ctx context.Context, log *logrus.Entry, userID uint) error {
	owned, err := f.ownedBooks(ctx, userID)
	if err != nil {
		return err
	}
	for _, b := range owned {
		if err := f.books.DeleteBookByID(ctx, b.ID); err != nil {
			return err
		}
	}
	log.WithField("deleted", len(owned)).Debug("deleted owned books")
	return nil
}
