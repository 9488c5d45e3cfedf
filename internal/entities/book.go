package entities

// Book is owned by exactly one user.
type Book struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"userId" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Author    string `json:"author" validate:"required"`
	PageCount int64  `json:"pageCount" validate:"gt=0"`
}

func (b Book) GetID() uint {
	return b.ID
}

func (b Book) WithID(id uint) Book {
	b.ID = id
	return b
}

// Validate checks the field constraints of a book record.
func (b Book) Validate() error {
	return validateStruct(KindBook, b)
}

// OwnedBy reports whether the book belongs to the given user.
func (b Book) OwnedBy(userID uint) bool {
	return b.UserID == userID
}
