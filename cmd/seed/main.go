// Command seed fills the configured storage backend with sample readers and
// public domain books.
// Usage: STORAGE_BACKEND=sql go run ./cmd/seed [-dry-run]
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/userbooks/internal/config"
	"github.com/mrlokans/userbooks/internal/entities"
	"github.com/mrlokans/userbooks/internal/logging"
	"github.com/mrlokans/userbooks/internal/services"
	"github.com/mrlokans/userbooks/internal/storage/backends"
)

// Reader is a user together with the books created for it.
type Reader struct {
	User  services.UserSpec
	Books []*services.BookSpec
}

func main() {
	dryRun := flag.Bool("dry-run", false, "list the sample data without storing it")
	flag.Parse()

	cfg := config.NewConfig()
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		logrus.WithError(err).Fatal("invalid logging configuration")
	}

	readers := sampleReaders()
	if *dryRun {
		for _, r := range readers {
			logger.WithFields(logrus.Fields{"user": r.User.FullName, "books": len(r.Books)}).Info("would create")
		}
		return
	}

	ctx := context.Background()
	backend, err := backends.Open(ctx, cfg, nil)
	if err != nil {
		logger.WithError(err).Fatal("failed to open storage")
	}
	defer backend.Close()

	facade := services.NewUserBooksFacade(
		services.NewUserService(backend.Users, logging.Component(logger, "user_service")),
		services.NewBookService(backend.Books, logging.Component(logger, "book_service")),
		logging.Component(logger, "seed"),
	)

	seeded := seed(ctx, facade, readers, logger)
	if loader, ok := backend.Users.(booksLoader); ok {
		if err := report(ctx, loader, seeded, logger); err != nil {
			logger.WithError(err).Error("failed to read back seeded readers")
		}
	}

	logger.WithFields(logrus.Fields{"backend": backend.Name, "readers": len(seeded)}).Info("seed completed")
}

// booksLoader loads a user together with its books in one call. The orm
// backend provides it through the PERSON to BOOK association.
type booksLoader interface {
	FindWithBooks(ctx context.Context, id uint) (entities.User, []entities.Book, bool, error)
}

// report reads every seeded reader back with its books and logs the titles.
func report(ctx context.Context, loader booksLoader, seeded []services.UserBookResult, logger *logrus.Logger) error {
	for _, result := range seeded {
		user, books, found, err := loader.FindWithBooks(ctx, result.UserID)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("seeded user %d is missing", result.UserID)
		}
		titles := make([]string, 0, len(books))
		for _, b := range books {
			titles = append(titles, b.Title)
		}
		logger.WithFields(logrus.Fields{"user": user.FullName, "books": titles}).Info("stored")
	}
	return nil
}

// seed creates every reader through the facade and returns the stored ones.
// A failing reader is logged and skipped.
func seed(ctx context.Context, facade *services.UserBooksFacade, readers []Reader, logger *logrus.Logger) []services.UserBookResult {
	seeded := make([]services.UserBookResult, 0, len(readers))
	for _, r := range readers {
		result, err := facade.CreateUserWithBooks(ctx, r.User, r.Books)
		if err != nil {
			logger.WithError(err).WithField("user", r.User.FullName).Error("failed to seed reader")
			continue
		}
		logger.WithFields(logrus.Fields{
			"user":    r.User.FullName,
			"userId":  result.UserID,
			"bookIds": result.BookIDs,
		}).Info("seeded")
		seeded = append(seeded, result)
	}
	return seeded
}

func sampleReaders() []Reader {
	return []Reader{
		{
			User: services.UserSpec{FullName: "Ada Marsh", Title: "philosopher", Age: 41},
			Books: []*services.BookSpec{
				{Title: "Meditations", Author: "Marcus Aurelius", PageCount: 254},
				{Title: "Letters from a Stoic", Author: "Seneca", PageCount: 254},
				{Title: "Discourses", Author: "Epictetus", PageCount: 336},
			},
		},
		{
			User: services.UserSpec{FullName: "Tom Reyes", Title: "student", Age: 22},
			Books: []*services.BookSpec{
				{Title: "Pride and Prejudice", Author: "Jane Austen", PageCount: 432},
				{Title: "Frankenstein", Author: "Mary Shelley", PageCount: 280},
			},
		},
		{
			User: services.UserSpec{FullName: "Lena Vogt", Title: "engineer", Age: 35},
			Books: []*services.BookSpec{
				{Title: "On the Origin of Species", Author: "Charles Darwin", PageCount: 502},
			},
		},
		{
			User: services.UserSpec{FullName: "Sam Okafor", Title: "librarian", Age: 67},
		},
	}
}
