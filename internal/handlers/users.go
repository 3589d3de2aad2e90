package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"friend-service/internal/repositories"
)

// UserHandler serves user search.
type UserHandler struct {
	users           repositories.UserRepository
	defaultPageSize int
	maxPageSize     int
}

// NewUserHandler builds a UserHandler.
func NewUserHandler(users repositories.UserRepository, defaultPageSize, maxPageSize int) *UserHandler {
	return &UserHandler{users: users, defaultPageSize: defaultPageSize, maxPageSize: maxPageSize}
}

// Search returns a page of users matching the keyword: exact email match or
// a case-insensitive substring of first/last name.
func (h *UserHandler) Search(c *gin.Context) {
	keyword := c.Query("keyword")

	page := parsePositiveInt(c.Query("page"), 1)
	pageSize := parsePositiveInt(c.Query("page_size"), h.defaultPageSize)
	if pageSize > h.maxPageSize {
		pageSize = h.maxPageSize
	}

	users, total, err := h.users.Search(c.Request.Context(), keyword, pageSize, (page-1)*pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "could not search users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":     total,
		"page":      page,
		"page_size": pageSize,
		"results":   users,
	})
}

func parsePositiveInt(raw string, fallback int) int {
	val, err := strconv.Atoi(raw)
	if err != nil || val < 1 {
		return fallback
	}
	return val
}
