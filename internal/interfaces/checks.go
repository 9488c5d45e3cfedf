package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/userbooks/internal/entities"
	"github.com/mrlokans/userbooks/internal/http"
	"github.com/mrlokans/userbooks/internal/services"
	"github.com/mrlokans/userbooks/internal/storage"
	"github.com/mrlokans/userbooks/internal/storage/backends"
	"github.com/mrlokans/userbooks/internal/storage/memory"
	"github.com/mrlokans/userbooks/internal/storage/orm"
	"github.com/mrlokans/userbooks/internal/storage/redisstore"
	"github.com/mrlokans/userbooks/internal/storage/sqlstore"
)

// =============================================================================
// Storage Backends
// =============================================================================

// UserRepository implementations
var _ storage.UserRepository = (*memory.Repository[entities.User])(nil)
var _ storage.UserRepository = (*orm.UserRepository)(nil)
var _ storage.UserRepository = (*sqlstore.UserRepository)(nil)
var _ storage.UserRepository = (*redisstore.Repository[entities.User])(nil)

// BookRepository implementations
var _ storage.BookRepository = (*memory.Repository[entities.Book])(nil)
var _ storage.BookRepository = (*orm.BookRepository)(nil)
var _ storage.BookRepository = (*sqlstore.BookRepository)(nil)
var _ storage.BookRepository = (*redisstore.Repository[entities.Book])(nil)

// =============================================================================
// Services
// =============================================================================

var _ services.Users = (*services.UserService)(nil)
var _ services.Books = (*services.BookService)(nil)

// =============================================================================
// HTTP Dependencies
// =============================================================================

var _ http.UserBooksManager = (*services.UserBooksFacade)(nil)
var _ http.BookReader = (*services.BookService)(nil)
var _ http.Pinger = (*backends.Backend)(nil)
