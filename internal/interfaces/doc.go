// Package interfaces documents the core abstractions used throughout the application.
//
// # Layers
//
//   - storage.Repository[E, K]: persistence of one entity kind
//     (internal/storage/repository.go). UserRepository and BookRepository
//     are its two instantiations.
//   - services.Users / services.Books: validated CRUD over DTOs
//     (internal/services/interfaces.go).
//   - http.UserBooksManager / http.BookReader / http.Pinger: what the
//     controllers need (internal/http/stores.go).
//
// # Adding a New Storage Backend
//
//  1. Create a package under internal/storage/ with a type implementing
//     storage.Repository for entities.User and entities.Book.
//  2. Report unknown ids on update with storage.NotFound and wrap driver
//     failures with storage.Backend.
//  3. Run storagetest.Run against it from the package tests.
//  4. Add a case to backends.Open and a StorageBackend constant in
//     internal/config.
//  5. Add compile-time checks to checks.go.
package interfaces
