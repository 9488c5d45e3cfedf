package orm

import "github.com/mrlokans/userbooks/internal/entities"

// userRecord maps a row of PERSON. Books is the has-many side of BOOK.USER_ID
// and is only loaded when preloaded explicitly.
type userRecord struct {
	ID       uint         `gorm:"column:ID;primaryKey;autoIncrement"`
	FullName string       `gorm:"column:FULL_NAME;not null"`
	Title    string       `gorm:"column:TITLE;not null"`
	Age      int          `gorm:"column:AGE;not null"`
	Books    []bookRecord `gorm:"foreignKey:UserID;references:ID"`
}

func (userRecord) TableName() string { return "PERSON" }

// bookRecord maps a row of BOOK.
type bookRecord struct {
	ID        uint   `gorm:"column:ID;primaryKey;autoIncrement"`
	UserID    uint   `gorm:"column:USER_ID;not null"`
	Title     string `gorm:"column:TITLE;not null"`
	Author    string `gorm:"column:AUTHOR;not null"`
	PageCount int64  `gorm:"column:PAGE_COUNT;not null"`
}

func (bookRecord) TableName() string { return "BOOK" }

func toUserRecord(u entities.User) userRecord {
	return userRecord{ID: u.ID, FullName: u.FullName, Title: u.Title, Age: u.Age}
}

func fromUserRecord(r userRecord) entities.User {
	return entities.User{ID: r.ID, FullName: r.FullName, Title: r.Title, Age: r.Age}
}

func toBookRecord(b entities.Book) bookRecord {
	return bookRecord{ID: b.ID, UserID: b.UserID, Title: b.Title, Author: b.Author, PageCount: b.PageCount}
}

func fromBookRecord(r bookRecord) entities.Book {
	return entities.Book{ID: r.ID, UserID: r.UserID, Title: r.Title, Author: r.Author, PageCount: r.PageCount}
}

func fromBookRecords(records []bookRecord) []entities.Book {
	books := make([]entities.Book, 0, len(records))
	for _, r := range records {
		books = append(books, fromBookRecord(r))
	}
	return books
}
