package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"friend-service/internal/repositories"
	"friend-service/internal/service"
	"friend-service/internal/telemetry"
)

// FriendHandler manages the friend request endpoints.
type FriendHandler struct {
	friends service.FriendRequestService
	emitter *telemetry.Emitter
}

// NewFriendHandler builds a FriendHandler.
func NewFriendHandler(friends service.FriendRequestService, emitter *telemetry.Emitter) *FriendHandler {
	return &FriendHandler{friends: friends, emitter: emitter}
}

// SendRequest creates a friend request from the caller to to_user.
func (h *FriendHandler) SendRequest(c *gin.Context) {
	var req struct {
		ToUser int `json:"to_user" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "to_user is required"})
		return
	}

	userID := c.GetInt("userID")
	created, err := h.friends.SendRequest(c.Request.Context(), userID, req.ToUser)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfRequest):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "cannot send a friend request to yourself"})
		case errors.Is(err, repositories.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "user not found"})
		case errors.Is(err, repositories.ErrDuplicateRequest):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Friend request already sent"})
		case errors.Is(err, service.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"detail": "Rate limit exceeded: No more than 3 requests per minute"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "could not create friend request"})
		}
		return
	}

	h.emitter.Emit(c.Request.Context(), "friend_request.sent", requestIDFromContext(c), userIDFromContext(c), created)
	c.JSON(http.StatusCreated, created)
}

// ResolveRequest accepts or rejects a pending request addressed to the caller.
func (h *FriendHandler) ResolveRequest(c *gin.Context) {
	var req struct {
		RequestID int    `json:"request_id" binding:"required"`
		Action    string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "request_id and action are required"})
		return
	}

	userID := c.GetInt("userID")
	err := h.friends.ResolveRequest(c.Request.Context(), userID, req.RequestID, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAction):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid action"})
		case errors.Is(err, repositories.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "friend request not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "could not resolve friend request"})
		}
		return
	}

	if req.Action == service.ActionAccept {
		h.emitter.Emit(c.Request.Context(), "friend_request.accepted", requestIDFromContext(c), userIDFromContext(c), gin.H{"request_id": req.RequestID})
		c.JSON(http.StatusOK, gin.H{"detail": "Friend request accepted"})
		return
	}
	h.emitter.Emit(c.Request.Context(), "friend_request.rejected", requestIDFromContext(c), userIDFromContext(c), gin.H{"request_id": req.RequestID})
	c.JSON(http.StatusOK, gin.H{"detail": "Friend request rejected"})
}

// ListFriends returns the caller's accepted peers, either direction.
func (h *FriendHandler) ListFriends(c *gin.Context) {
	userID := c.GetInt("userID")

	friends, err := h.friends.ListFriends(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "could not load friends"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

// ListPending returns the caller's unaccepted incoming requests.
func (h *FriendHandler) ListPending(c *gin.Context) {
	userID := c.GetInt("userID")

	pending, err := h.friends.ListPending(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "could not load pending requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": pending})
}
