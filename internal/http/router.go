package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Storage, cfg.BackendName, cfg.Version)
	userBooksController := NewUserBooksController(cfg.UserBooks)
	booksController := NewBooksController(cfg.Books)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	if cfg.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	api := router.Group("/api/v1")

	// User endpoints
	api.POST("/user/create", userBooksController.CreateUser)
	api.PUT("/user/update", userBooksController.UpdateUser)
	api.GET("/user/get/:userId", userBooksController.GetUser)
	api.DELETE("/user/delete/:userId", userBooksController.DeleteUser)

	// Book endpoints
	api.GET("/book/get/:bookId", booksController.GetBook)
	api.GET("/book/all", booksController.GetAllBooks)

	return router
}
