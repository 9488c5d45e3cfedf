package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/userbooks/internal/database"
	"github.com/mrlokans/userbooks/internal/services"
	"github.com/mrlokans/userbooks/internal/storage/memory"
	"github.com/mrlokans/userbooks/internal/storage/orm"
)

func TestSampleReadersAreValid(t *testing.T) {
	for _, r := range sampleReaders() {
		user := r.User.Dto().Entity()
		assert.NoError(t, user.Validate(), r.User.FullName)

		for _, spec := range r.Books {
			book := spec.Dto(1).Entity()
			assert.NoError(t, book.Validate(), spec.Title)
		}
	}
}

func TestSeed(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	log := logrus.NewEntry(logger)

	store := memory.NewStore()
	books := services.NewBookService(store.Books, log)
	facade := services.NewUserBooksFacade(services.NewUserService(store.Users, log), books, log)

	readers := append(sampleReaders(), Reader{User: services.UserSpec{FullName: "", Title: "ghost", Age: 1}})
	seeded := seed(context.Background(), facade, readers, logger)

	assert.Len(t, seeded, len(readers)-1)
	all, err := books.GetAllBooks(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

func TestReport_ORMBackend(t *testing.T) {
	ctx := context.Background()
	db, err := database.NewDatabase(ctx, filepath.Join(t.TempDir(), "seed.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var out bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&out)
	log := logrus.NewEntry(logger)

	users := orm.NewUserRepository(db.DB)
	facade := services.NewUserBooksFacade(
		services.NewUserService(users, log),
		services.NewBookService(orm.NewBookRepository(db.DB), log),
		log,
	)

	seeded := seed(ctx, facade, sampleReaders()[:1], logger)
	require.Len(t, seeded, 1)

	out.Reset()
	require.NoError(t, report(ctx, users, seeded, logger))
	assert.Contains(t, out.String(), "Meditations")
	assert.Contains(t, out.String(), "Discourses")
}

func TestReport_MissingUser(t *testing.T) {
	ctx := context.Background()
	db, err := database.NewDatabase(ctx, filepath.Join(t.TempDir(), "seed.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	err = report(ctx, orm.NewUserRepository(db.DB), []services.UserBookResult{{UserID: 9}}, logger)
	assert.ErrorContains(t, err, "seeded user 9 is missing")
}
