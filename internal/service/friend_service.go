package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"

	"friend-service/internal/models"
	"friend-service/internal/observability"
	"friend-service/internal/repositories"
)

var (
	ErrRateLimited   = errors.New("rate limit exceeded")
	ErrInvalidAction = errors.New("invalid action")
	ErrSelfRequest   = errors.New("cannot send a friend request to yourself")
)

// Resolve actions accepted by ResolveRequest.
const (
	ActionAccept = "accept"
	ActionReject = "reject"
)

// FriendRequestService is the surface the HTTP layer depends on.
type FriendRequestService interface {
	SendRequest(ctx context.Context, senderID, recipientID int) (models.FriendRequest, error)
	ResolveRequest(ctx context.Context, actorID, requestID int, action string) error
	ListFriends(ctx context.Context, userID int) ([]models.PublicUser, error)
	ListPending(ctx context.Context, userID int) ([]models.FriendRequest, error)
}

// FriendService drives the friend request lifecycle: rate-limited creation
// with duplicate suppression, accept/reject transitions, and the derived
// friends and pending views.
type FriendService struct {
	requests repositories.FriendRequestRepository
	users    repositories.UserRepository
	clock    Clock

	rateWindow time.Duration
	rateMax    int
}

// NewFriendService builds a FriendService.
func NewFriendService(requests repositories.FriendRequestRepository, users repositories.UserRepository, clock Clock, rateWindow time.Duration, rateMax int) *FriendService {
	return &FriendService{
		requests:   requests,
		users:      users,
		clock:      clock,
		rateWindow: rateWindow,
		rateMax:    rateMax,
	}
}

// SendRequest creates a pending request from sender to recipient.
//
// The rate check counts live rows in a trailing window ending at the same
// instant the new row would be stamped with, so failed sends consume no
// budget and restarts lose no state. The count and the insert are separate
// statements, which makes the limit advisory under concurrent sends from the
// same user; duplicate suppression stays exact because it is enforced by the
// storage constraint.
func (s *FriendService) SendRequest(ctx context.Context, senderID, recipientID int) (models.FriendRequest, error) {
	ctx, span := otel.Tracer("friend-service/service").Start(ctx, "friends.send_request")
	defer span.End()

	if senderID == recipientID {
		return models.FriendRequest{}, ErrSelfRequest
	}

	if _, err := s.users.GetByID(ctx, recipientID); err != nil {
		return models.FriendRequest{}, err
	}

	now := s.clock.Now()
	recent, err := s.requests.CountRecentBySender(ctx, senderID, now.Add(-s.rateWindow))
	if err != nil {
		return models.FriendRequest{}, err
	}
	if recent >= s.rateMax {
		observability.IncFriendRequestOutcome("rate_limited")
		return models.FriendRequest{}, ErrRateLimited
	}

	req, err := s.requests.Create(ctx, senderID, recipientID, now)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateRequest) {
			observability.IncFriendRequestOutcome("duplicate")
		}
		return models.FriendRequest{}, err
	}

	observability.IncFriendRequestOutcome("sent")
	return req, nil
}

// ResolveRequest accepts or rejects a request addressed to actor. A request
// that does not exist, or exists but is addressed to someone else, surfaces
// as ErrRequestNotFound before the action token is judged, so a bad action
// on an unknown id reads as not found. The lookup is only for error
// precedence; the state change stays a single conditional statement, so a
// concurrent reject between the two still resolves safely.
func (s *FriendService) ResolveRequest(ctx context.Context, actorID, requestID int, action string) error {
	ctx, span := otel.Tracer("friend-service/service").Start(ctx, "friends.resolve_request")
	defer span.End()

	if _, err := s.requests.GetForRecipient(ctx, requestID, actorID); err != nil {
		return err
	}

	switch action {
	case ActionAccept:
		if err := s.requests.Accept(ctx, requestID, actorID); err != nil {
			return err
		}
		observability.IncFriendRequestOutcome("accepted")
		return nil
	case ActionReject:
		if err := s.requests.Delete(ctx, requestID, actorID); err != nil {
			return err
		}
		observability.IncFriendRequestOutcome("rejected")
		return nil
	default:
		return ErrInvalidAction
	}
}

// ListFriends returns the distinct accepted peers of user, either direction.
func (s *FriendService) ListFriends(ctx context.Context, userID int) ([]models.PublicUser, error) {
	ctx, span := otel.Tracer("friend-service/service").Start(ctx, "friends.list_friends")
	defer span.End()

	return s.requests.ListFriends(ctx, userID)
}

// ListPending returns unaccepted incoming requests in creation order.
func (s *FriendService) ListPending(ctx context.Context, userID int) ([]models.FriendRequest, error) {
	ctx, span := otel.Tracer("friend-service/service").Start(ctx, "friends.list_pending")
	defer span.End()

	return s.requests.ListPendingForRecipient(ctx, userID)
}
