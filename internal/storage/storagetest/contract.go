// Package storagetest holds the behavioural contract every storage backend
// must satisfy. Backend test files call Run with a factory for fresh
// repositories.
package storagetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/userbooks/internal/entities"
	"github.com/mrlokans/userbooks/internal/storage"
)

// Repositories is one freshly initialised backend.
type Repositories struct {
	Users storage.UserRepository
	Books storage.BookRepository
}

// Factory returns empty repositories backed by isolated state.
type Factory func(t *testing.T) Repositories

// Run executes the contract suite.
func Run(t *testing.T, newRepos Factory) {
	t.Run("save assigns increasing ids", func(t *testing.T) {
		repos := newRepos(t)
		ctx := context.Background()

		first, err := repos.Users.Save(ctx, NewUser("Kirill"))
		require.NoError(t, err)
		second, err := repos.Users.Save(ctx, NewUser("Anna"))
		require.NoError(t, err)

		assert.NotZero(t, first.ID)
		assert.Greater(t, second.ID, first.ID)
		assert.Equal(t, "Kirill", first.FullName)
	})

	t.Run("ids are not reused after delete", func(t *testing.T) {
		repos := newRepos(t)
		ctx := context.Background()

		first, err := repos.Users.Save(ctx, NewUser("Kirill"))
		require.NoError(t, err)
		require.NoError(t, repos.Users.DeleteByID(ctx, first.ID))

		second, err := repos.Users.Save(ctx, NewUser("Anna"))
		require.NoError(t, err)
		assert.Greater(t, second.ID, first.ID)
	})

	t.Run("find by id returns the stored record", func(t *testing.T) {
		repos := newRepos(t)
		ctx := context.Background()

		saved, err := repos.Users.Save(ctx, NewUser("Kirill"))
		require.NoError(t, err)

		found, ok, err := repos.Users.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, saved, found)
	})

	t.Run("find by id reports absence without error", func(t *testing.T) {
		repos := newRepos(t)

		_, ok, err := repos.Books.FindByID(context.Background(), 999)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("save with id overwrites the record", func(t *testing.T) {
		repos := newRepos(t)
		ctx := context.Background()

		saved, err := repos.Users.Save(ctx, NewUser("Kirill"))
		require.NoError(t, err)

		saved.FullName = "Kirill Ivanov"
		saved.Title = "writer"
		saved.Age = 51
		updated, err := repos.Users.Save(ctx, saved)
		require.NoError(t, err)
		assert.Equal(t, saved.ID, updated.ID)

		found, ok, err := repos.Users.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Kirill Ivanov", found.FullName)
		assert.Equal(t, "writer", found.Title)
		assert.Equal(t, 51, found.Age)

		all, err := repos.Users.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1, "update must not insert")
	})

	t.Run("save with unknown id fails with not found", func(t *testing.T) {
		repos := newRepos(t)
		ctx := context.Background()

		user := NewUser("Ghost").WithID(42)
		_, err := repos.Users.Save(ctx, user)
		require.Error(t, err)
		assert.True(t, errors.Is(err, storage.ErrNotFound))

		var nf *storage.NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, entities.KindUser, nf.Kind)
		assert.Equal(t, uint(42), nf.ID)

		exists, err := repos.Users.ExistsByID(ctx, 42)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("find all on empty store returns empty", func(t *testing.T) {
		repos := newRepos(t)

		users, err := repos.Users.FindAll(context.Background())
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("find all returns a snapshot", func(t *testing.T) {
		repos := newRepos(t)
		ctx := context.Background()

		owner, err := repos.Users.Save(ctx, NewUser("Kirill"))
		require.NoError(t, err)
		b1, err := repos.Books.Save(ctx, NewBook(owner.ID, "A"))
		require.NoError(t, err)
		b2, err := repos.Books.Save(ctx, NewBook(owner.ID, "B"))
		require.NoError(t, err)

		books, err := repos.Books.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, books, 2)
		assert.ElementsMatch(t, []uint{b1.ID, b2.ID}, []uint{books[0].ID, books[1].ID})

		books[0].Title = "mutated"
		books = append(books[:0], books[1:]...)

		again, err := repos.Books.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, again, 2)
		for _, b := range again {
			assert.NotEqual(t, "mutated", b.Title)
		}
	})

	t.Run("exists by id", func(t *testing.T) {
		repos := newRepos(t)
		ctx := context.Background()

		saved, err := repos.Users.Save(ctx, NewUser("Kirill"))
		require.NoError(t, err)

		exists, err := repos.Users.ExistsByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repos.Users.ExistsByID(ctx, saved.ID+100)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		repos := newRepos(t)
		ctx := context.Background()

		owner, err := repos.Users.Save(ctx, NewUser("Kirill"))
		require.NoError(t, err)
		book, err := repos.Books.Save(ctx, NewBook(owner.ID, "A"))
		require.NoError(t, err)

		require.NoError(t, repos.Books.DeleteByID(ctx, book.ID))
		_, ok, err := repos.Books.FindByID(ctx, book.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, repos.Books.DeleteByID(ctx, book.ID))
		_, ok, err = repos.Books.FindByID(ctx, book.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete of never stored id is a no-op", func(t *testing.T) {
		repos := newRepos(t)
		assert.NoError(t, repos.Users.DeleteByID(context.Background(), 12345))
	})

	t.Run("book keeps its owner and fields", func(t *testing.T) {
		repos := newRepos(t)
		ctx := context.Background()

		owner, err := repos.Users.Save(ctx, NewUser("Kirill"))
		require.NoError(t, err)
		saved, err := repos.Books.Save(ctx, entities.Book{UserID: owner.ID, Title: "B", Author: "Y", PageCount: 200})
		require.NoError(t, err)

		found, ok, err := repos.Books.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, owner.ID, found.UserID)
		assert.Equal(t, "B", found.Title)
		assert.Equal(t, "Y", found.Author)
		assert.Equal(t, int64(200), found.PageCount)
	})
}

// NewUser returns a valid, unsaved user.
func NewUser(fullName string) entities.User {
	return entities.User{FullName: fullName, Title: "reader", Age: 50}
}

// NewBook returns a valid, unsaved book owned by userID.
func NewBook(userID uint, title string) entities.Book {
	return entities.Book{UserID: userID, Title: title, Author: "X", PageCount: 100}
}
