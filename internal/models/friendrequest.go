package models

import "time"

// FriendRequest is a directed edge from sender to recipient. Rejection is a
// deletion, so an existing row is either pending (accepted=false) or accepted.
type FriendRequest struct {
	ID          int       `db:"id" json:"id"`
	SenderID    int       `db:"sender_id" json:"from_user"`
	RecipientID int       `db:"recipient_id" json:"to_user"`
	Accepted    bool      `db:"accepted" json:"is_accepted"`
	CreatedAt   time.Time `db:"created_at" json:"timestamp"`
}
