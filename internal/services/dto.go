package services

// UserDto is the transfer form of entities.User returned by UserService.
type UserDto struct {
	ID       uint   `json:"id"`
	FullName string `json:"fullName"`
	Title    string `json:"title"`
	Age      int    `json:"age"`
}

// BookDto is the transfer form of entities.Book returned by BookService.
type BookDto struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"userId"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	PageCount int64  `json:"pageCount"`
}

// UserSpec describes a user to create.
type UserSpec struct {
	FullName string `json:"fullName"`
	Title    string `json:"title"`
	Age      int    `json:"age"`
}

// UserUpdateSpec describes the new state of an existing user.
type UserUpdateSpec struct {
	ID       uint   `json:"id"`
	FullName string `json:"fullName"`
	Title    string `json:"title"`
	Age      int    `json:"age"`
}

// BookSpec describes a book to create for the user of the surrounding request.
type BookSpec struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	PageCount int64  `json:"pageCount"`
}

// UserBookResult identifies a user and the books it owns.
type UserBookResult struct {
	UserID  uint   `json:"userId"`
	BookIDs []uint `json:"booksIdList"`
}
