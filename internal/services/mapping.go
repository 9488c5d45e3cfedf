package services

import "github.com/mrlokans/userbooks/internal/entities"

func (s UserSpec) Dto() UserDto {
	return UserDto{FullName: s.FullName, Title: s.Title, Age: s.Age}
}

func (s UserUpdateSpec) Dto() UserDto {
	return UserDto{ID: s.ID, FullName: s.FullName, Title: s.Title, Age: s.Age}
}

// Dto attaches the book to userID.
func (s BookSpec) Dto(userID uint) BookDto {
	return BookDto{UserID: userID, Title: s.Title, Author: s.Author, PageCount: s.PageCount}
}

func (d UserDto) Entity() entities.User {
	return entities.User{ID: d.ID, FullName: d.FullName, Title: d.Title, Age: d.Age}
}

func (d BookDto) Entity() entities.Book {
	return entities.Book{ID: d.ID, UserID: d.UserID, Title: d.Title, Author: d.Author, PageCount: d.PageCount}
}

func UserDtoOf(u entities.User) UserDto {
	return UserDto{ID: u.ID, FullName: u.FullName, Title: u.Title, Age: u.Age}
}

func BookDtoOf(b entities.Book) BookDto {
	return BookDto{ID: b.ID, UserID: b.UserID, Title: b.Title, Author: b.Author, PageCount: b.PageCount}
}
