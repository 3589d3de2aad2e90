package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"friend-service/internal/models"
)

var (
	ErrRequestNotFound  = errors.New("friend request not found")
	ErrDuplicateRequest = errors.New("friend request already sent")
)

// FriendRequestRepository abstracts friend request persistence. Accept and
// Delete take the recipient id so that the authorization check is part of the
// storage predicate rather than a separate read.
type FriendRequestRepository interface {
	Create(ctx context.Context, senderID, recipientID int, now time.Time) (models.FriendRequest, error)
	CountRecentBySender(ctx context.Context, senderID int, since time.Time) (int, error)
	GetForRecipient(ctx context.Context, requestID, recipientID int) (models.FriendRequest, error)
	Accept(ctx context.Context, requestID, recipientID int) error
	Delete(ctx context.Context, requestID, recipientID int) error
	ListPendingForRecipient(ctx context.Context, recipientID int) ([]models.FriendRequest, error)
	ListFriends(ctx context.Context, userID int) ([]models.PublicUser, error)
}

// FriendRequestRepo is a sqlx implementation of FriendRequestRepository.
type FriendRequestRepo struct {
	db *sqlx.DB
}

// NewFriendRequestRepo constructs a FriendRequestRepo.
func NewFriendRequestRepo(db *sqlx.DB) *FriendRequestRepo {
	return &FriendRequestRepo{db: db}
}

// Create inserts a pending request stamped with the caller's notion of now.
// A second request for the same ordered pair loses against the uniqueness
// constraint and surfaces as ErrDuplicateRequest, whatever the accepted state
// of the existing row.
func (r *FriendRequestRepo) Create(ctx context.Context, senderID, recipientID int, now time.Time) (models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.QueryRowxContext(ctx, `INSERT INTO friend_requests (sender_id, recipient_id, accepted, created_at)
        VALUES ($1, $2, FALSE, $3)
        RETURNING id, sender_id, recipient_id, accepted, created_at`,
		senderID, recipientID, now).StructScan(&req)
	if isUniqueViolation(err) {
		return models.FriendRequest{}, ErrDuplicateRequest
	}
	return req, err
}

// CountRecentBySender counts requests the sender created at or after since.
func (r *FriendRequestRepo) CountRecentBySender(ctx context.Context, senderID int, since time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM friend_requests
        WHERE sender_id=$1 AND created_at >= $2`, senderID, since)
	return count, err
}

// GetForRecipient fetches a request addressed to recipientID. A request that
// exists but is addressed to someone else reads as missing.
func (r *FriendRequestRepo) GetForRecipient(ctx context.Context, requestID, recipientID int) (models.FriendRequest, error) {
	var req models.FriendRequest
	err := r.db.GetContext(ctx, &req, `SELECT id, sender_id, recipient_id, accepted, created_at
        FROM friend_requests WHERE id=$1 AND recipient_id=$2`, requestID, recipientID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FriendRequest{}, ErrRequestNotFound
	}
	return req, err
}

// Accept flips the accepted flag. The recipient predicate makes resolving a
// request addressed to someone else indistinguishable from a missing id.
// Re-accepting an accepted request matches the row and is a no-op.
func (r *FriendRequestRepo) Accept(ctx context.Context, requestID, recipientID int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE friend_requests SET accepted = TRUE
        WHERE id=$1 AND recipient_id=$2`, requestID, recipientID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// Delete removes the row permanently. A later send for the same pair gets a
// fresh row.
func (r *FriendRequestRepo) Delete(ctx context.Context, requestID, recipientID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM friend_requests
        WHERE id=$1 AND recipient_id=$2`, requestID, recipientID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// ListPendingForRecipient returns unaccepted incoming requests in creation
// order.
func (r *FriendRequestRepo) ListPendingForRecipient(ctx context.Context, recipientID int) ([]models.FriendRequest, error) {
	reqs := []models.FriendRequest{}
	err := r.db.SelectContext(ctx, &reqs, `SELECT id, sender_id, recipient_id, accepted, created_at
        FROM friend_requests
        WHERE recipient_id=$1 AND accepted = FALSE
        ORDER BY created_at ASC, id ASC`, recipientID)
	return reqs, err
}

// ListFriends returns the distinct users connected to userID by an accepted
// request in either direction. The IN subquery deduplicates a peer that
// appears on both sides.
func (r *FriendRequestRepo) ListFriends(ctx context.Context, userID int) ([]models.PublicUser, error) {
	users := []models.PublicUser{}
	err := r.db.SelectContext(ctx, &users, `SELECT u.id, u.email, u.first_name, u.last_name
        FROM users u
        WHERE u.id IN (
            SELECT CASE WHEN fr.sender_id = $1 THEN fr.recipient_id ELSE fr.sender_id END
            FROM friend_requests fr
            WHERE fr.accepted = TRUE AND (fr.sender_id = $1 OR fr.recipient_id = $1)
        )
        ORDER BY u.id ASC`, userID)
	return users, err
}
