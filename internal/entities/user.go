package entities

// Entity kinds, used in error messages and metric labels.
const (
	KindUser = "user"
	KindBook = "book"
)

// User is a library member. Books reference users through Book.UserID; a user
// never stores its books inline.
type User struct {
	ID       uint   `json:"id"`
	FullName string `json:"fullName" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Age      int    `json:"age" validate:"min=0,max=125"`
}

// GetID returns the backend-assigned identifier, zero when not yet persisted.
func (u User) GetID() uint {
	return u.ID
}

// WithID returns a copy of the user carrying the given identifier.
func (u User) WithID(id uint) User {
	u.ID = id
	return u
}

// Validate checks the field constraints of a user record.
func (u User) Validate() error {
	return validateStruct(KindUser, u)
}
