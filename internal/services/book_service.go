package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/userbooks/internal/entities"
	"github.com/mrlokans/userbooks/internal/storage"
)

var _ Books = (*BookService)(nil)

// BookService applies validation and not-found semantics on top of a book
// repository. Whether the owner exists is left to the backend.
type BookService struct {
	repo storage.BookRepository
	log  *logrus.Entry
}

func NewBookService(repo storage.BookRepository, log *logrus.Entry) *BookService {
	return &BookService{repo: repo, log: log}
}

func (s *BookService) CreateBook(ctx context.Context, book BookDto) (BookDto, error) {
	entity := book.Entity().WithID(0)
	if err := entity.Validate(); err != nil {
		return BookDto{}, err
	}

	saved, err := s.repo.Save(ctx, entity)
	if err != nil {
		return BookDto{}, fmt.Errorf("failed to create book: %w", err)
	}
	s.log.WithFields(logrus.Fields{"bookId": saved.ID, "userId": saved.UserID}).Debug("book created")
	return BookDtoOf(saved), nil
}

// UpdateBook overwrites every field of an existing book, the owner
// included. It never creates.
func (s *BookService) UpdateBook(ctx context.Context, book BookDto) (BookDto, error) {
	entity := book.Entity()
	if err := entity.Validate(); err != nil {
		return BookDto{}, err
	}

	existing, found, err := s.repo.FindByID(ctx, book.ID)
	if err != nil {
		return BookDto{}, fmt.Errorf("failed to load book: %w", err)
	}
	if !found {
		return BookDto{}, storage.NotFound(entities.KindBook, book.ID)
	}

	existing.UserID = entity.UserID
	existing.Title = entity.Title
	existing.Author = entity.Author
	existing.PageCount = entity.PageCount

	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		return BookDto{}, fmt.Errorf("failed to update book: %w", err)
	}
	s.log.WithField("bookId", saved.ID).Debug("book updated")
	return BookDtoOf(saved), nil
}

func (s *BookService) GetBookByID(ctx context.Context, id uint) (BookDto, error) {
	book, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return BookDto{}, fmt.Errorf("failed to load book: %w", err)
	}
	if !found {
		return BookDto{}, storage.NotFound(entities.KindBook, id)
	}
	return BookDtoOf(book), nil
}

func (s *BookService) GetAllBooks(ctx context.Context) ([]BookDto, error) {
	books, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	dtos := make([]BookDto, 0, len(books))
	for _, b := range books {
		dtos = append(dtos, BookDtoOf(b))
	}
	return dtos, nil
}

func (s *BookService) DeleteBookByID(ctx context.Context, id uint) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check book: %w", err)
	}
	if !exists {
		return nil
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	s.log.WithField("bookId", id).Debug("book deleted")
	return nil
}
