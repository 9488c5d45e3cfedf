package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type BooksController struct {
	reader BookReader
}

func NewBooksController(reader BookReader) *BooksController {
	return &BooksController{
		reader: reader,
	}
}

// GetBook returns one book.
// GET /api/v1/book/get/:bookId
func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}

	book, err := controller.reader.GetBookByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get book")
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}

// GetAllBooks returns every book with a count.
// GET /api/v1/book/all
func (controller *BooksController) GetAllBooks(c *gin.Context) {
	books, err := controller.reader.GetAllBooks(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "list books")
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}
