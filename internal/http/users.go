package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/userbooks/internal/services"
)

// CreateUserRequest is the body of POST /api/v1/user/create.
type CreateUserRequest struct {
	UserRequest  *services.UserSpec   `json:"userRequest" binding:"required"`
	BookRequests []*services.BookSpec `json:"bookRequests"`
}

// UpdateUserRequest is the body of PUT /api/v1/user/update.
type UpdateUserRequest struct {
	UserRequest  *services.UserUpdateSpec `json:"userRequest" binding:"required"`
	BookRequests []*services.BookSpec     `json:"bookRequests"`
}

// UserBooksController exposes users together with the books they own.
type UserBooksController struct {
	manager UserBooksManager
}

func NewUserBooksController(manager UserBooksManager) *UserBooksController {
	return &UserBooksController{manager: manager}
}

// CreateUser creates a user and its books.
// POST /api/v1/user/create
func (uc *UserBooksController) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := uc.manager.CreateUserWithBooks(c.Request.Context(), *req.UserRequest, req.BookRequests)
	if err != nil {
		respondServiceError(c, err, "create user")
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateUser updates a user and replaces its books.
// PUT /api/v1/user/update
func (uc *UserBooksController) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := uc.manager.UpdateUserWithBooks(c.Request.Context(), *req.UserRequest, req.BookRequests)
	if err != nil {
		respondServiceError(c, err, "update user")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetUser returns the user id and the ids of its books.
// GET /api/v1/user/get/:userId
func (uc *UserBooksController) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	result, err := uc.manager.GetUserWithBooks(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get user")
		return
	}
	c.JSON(http.StatusOK, result)
}

// DeleteUser deletes a user and its books.
// DELETE /api/v1/user/delete/:userId
func (uc *UserBooksController) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	if err := uc.manager.DeleteUserWithBooks(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete user")
		return
	}
	respondSuccess(c, "user deleted")
}
