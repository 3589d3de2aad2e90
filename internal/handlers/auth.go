package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"friend-service/internal/auth"
	"friend-service/internal/observability"
	"friend-service/internal/repositories"
	"friend-service/internal/telemetry"
)

// AuthHandler manages signup, login and token refresh.
type AuthHandler struct {
	users   repositories.UserRepository
	tokens  *auth.TokenIssuer
	emitter *telemetry.Emitter
}

// NewAuthHandler builds an AuthHandler.
func NewAuthHandler(users repositories.UserRepository, tokens *auth.TokenIssuer, emitter *telemetry.Emitter) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, emitter: emitter}
}

// Signup registers a new user.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "a valid email and password are required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "could not create user"})
		return
	}

	user, err := h.users.Create(c.Request.Context(), email, strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName), hash)
	if err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "could not create user"})
		return
	}

	observability.IncSignup()
	h.emitter.Emit(c.Request.Context(), "user.signed_up", requestIDFromContext(c), &user.ID,
		gin.H{"email": user.Email, "ip": observability.IPFromRequest(c.Request)})
	c.JSON(http.StatusCreated, user.Public())
}

// Login verifies credentials and issues an access/refresh token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "email and password are required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := h.users.GetByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "could not log in"})
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid credentials"})
		return
	}

	pair, err := h.tokens.IssuePair(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "could not issue tokens"})
		return
	}

	c.JSON(http.StatusOK, pair)
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		Refresh string `json:"refresh" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "refresh token is required"})
		return
	}

	claims, err := h.tokens.Verify(req.Refresh, auth.TokenTypeRefresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid refresh token"})
		return
	}

	pair, err := h.tokens.IssuePair(claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "could not issue tokens"})
		return
	}

	c.JSON(http.StatusOK, pair)
}
