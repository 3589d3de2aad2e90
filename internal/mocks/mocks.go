package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"friend-service/internal/models"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) Create(ctx context.Context, email, firstName, lastName, passwordHash string) (models.User, error) {
	args := m.Called(ctx, email, firstName, lastName, passwordHash)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetByID(ctx context.Context, userID int) (models.User, error) {
	args := m.Called(ctx, userID)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) Search(ctx context.Context, keyword string, limit, offset int) ([]models.PublicUser, int, error) {
	args := m.Called(ctx, keyword, limit, offset)
	var users []models.PublicUser
	if val := args.Get(0); val != nil {
		users = val.([]models.PublicUser)
	}
	return users, args.Int(1), args.Error(2)
}

type FriendRequestRepositoryMock struct {
	mock.Mock
}

func (m *FriendRequestRepositoryMock) Create(ctx context.Context, senderID, recipientID int, now time.Time) (models.FriendRequest, error) {
	args := m.Called(ctx, senderID, recipientID, now)
	var req models.FriendRequest
	if val := args.Get(0); val != nil {
		req = val.(models.FriendRequest)
	}
	return req, args.Error(1)
}

func (m *FriendRequestRepositoryMock) CountRecentBySender(ctx context.Context, senderID int, since time.Time) (int, error) {
	args := m.Called(ctx, senderID, since)
	return args.Int(0), args.Error(1)
}

func (m *FriendRequestRepositoryMock) GetForRecipient(ctx context.Context, requestID, recipientID int) (models.FriendRequest, error) {
	args := m.Called(ctx, requestID, recipientID)
	var req models.FriendRequest
	if val := args.Get(0); val != nil {
		req = val.(models.FriendRequest)
	}
	return req, args.Error(1)
}

func (m *FriendRequestRepositoryMock) Accept(ctx context.Context, requestID, recipientID int) error {
	args := m.Called(ctx, requestID, recipientID)
	return args.Error(0)
}

func (m *FriendRequestRepositoryMock) Delete(ctx context.Context, requestID, recipientID int) error {
	args := m.Called(ctx, requestID, recipientID)
	return args.Error(0)
}

func (m *FriendRequestRepositoryMock) ListPendingForRecipient(ctx context.Context, recipientID int) ([]models.FriendRequest, error) {
	args := m.Called(ctx, recipientID)
	var reqs []models.FriendRequest
	if val := args.Get(0); val != nil {
		reqs = val.([]models.FriendRequest)
	}
	return reqs, args.Error(1)
}

func (m *FriendRequestRepositoryMock) ListFriends(ctx context.Context, userID int) ([]models.PublicUser, error) {
	args := m.Called(ctx, userID)
	var users []models.PublicUser
	if val := args.Get(0); val != nil {
		users = val.([]models.PublicUser)
	}
	return users, args.Error(1)
}

type FriendServiceMock struct {
	mock.Mock
}

func (m *FriendServiceMock) SendRequest(ctx context.Context, senderID, recipientID int) (models.FriendRequest, error) {
	args := m.Called(ctx, senderID, recipientID)
	var req models.FriendRequest
	if val := args.Get(0); val != nil {
		req = val.(models.FriendRequest)
	}
	return req, args.Error(1)
}

func (m *FriendServiceMock) ResolveRequest(ctx context.Context, actorID, requestID int, action string) error {
	args := m.Called(ctx, actorID, requestID, action)
	return args.Error(0)
}

func (m *FriendServiceMock) ListFriends(ctx context.Context, userID int) ([]models.PublicUser, error) {
	args := m.Called(ctx, userID)
	var users []models.PublicUser
	if val := args.Get(0); val != nil {
		users = val.([]models.PublicUser)
	}
	return users, args.Error(1)
}

func (m *FriendServiceMock) ListPending(ctx context.Context, userID int) ([]models.FriendRequest, error) {
	args := m.Called(ctx, userID)
	var reqs []models.FriendRequest
	if val := args.Get(0); val != nil {
		reqs = val.([]models.FriendRequest)
	}
	return reqs, args.Error(1)
}
