package services

import "context"

// Users is the user-side API the facade composes. Implemented by UserService.
type Users interface {
	CreateUser(ctx context.Context, user UserDto) (UserDto, error)
	UpdateUser(ctx context.Context, user UserDto) (UserDto, error)
	GetUserByID(ctx context.Context, id uint) (UserDto, error)
	GetAllUsers(ctx context.Context) ([]UserDto, error)
	DeleteUserByID(ctx context.Context, id uint) error
}

// Books is the book-side API the facade composes. Implemented by BookService.
type Books interface {
	CreateBook(ctx context.Context, book BookDto) (BookDto, error)
	UpdateBook(ctx context.Context, book BookDto) (BookDto, error)
	GetBookByID(ctx context.Context, id uint) (BookDto, error)
	GetAllBooks(ctx context.Context) ([]BookDto, error)
	DeleteBookByID(ctx context.Context, id uint) error
}
