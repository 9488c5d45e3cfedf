package http

import (
	"context"

	"github.com/mrlokans/userbooks/internal/services"
)

// This file consolidates the service interfaces used by HTTP controllers.

// UserBooksManager manages users together with their books.
// Implemented by services.UserBooksFacade.
type UserBooksManager interface {
	CreateUserWithBooks(ctx context.Context, user services.UserSpec, books []*services.BookSpec) (services.UserBookResult, error)
	UpdateUserWithBooks(ctx context.Context, user services.UserUpdateSpec, books []*services.BookSpec) (services.UserBookResult, error)
	GetUserWithBooks(ctx context.Context, userID uint) (services.UserBookResult, error)
	DeleteUserWithBooks(ctx context.Context, userID uint) error
}

// BookReader provides read access to books. Implemented by services.BookService.
type BookReader interface {
	GetBookByID(ctx context.Context, id uint) (services.BookDto, error)
	GetAllBooks(ctx context.Context) ([]services.BookDto, error)
}

// Pinger reports whether the storage backend answers.
type Pinger interface {
	Ping(ctx context.Context) error
}
