package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"friend-service/internal/auth"
	"friend-service/internal/mocks"
	"friend-service/internal/models"
	"friend-service/internal/repositories"
)

func testTokenIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer("test-secret", 15*time.Minute, 24*time.Hour)
}

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/signup/", handler.Signup)
	r.POST("/login/", handler.Login)
	r.POST("/token/refresh/", handler.Refresh)
	return r
}

func TestSignupCreated(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupAuthRouter(NewAuthHandler(users, testTokenIssuer(), nil))

	users.On("Create", mock.Anything, "alice@example.com", "Alice", "Smith", mock.Anything).
		Return(models.User{ID: 1, Email: "alice@example.com", FirstName: "Alice", LastName: "Smith"}, nil).Once()

	body := bytes.NewBufferString(`{"email":"Alice@Example.com","password":"hunter2","first_name":"Alice","last_name":"Smith"}`)
	req := httptest.NewRequest(http.MethodPost, "/signup/", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp models.PublicUser
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.NotContains(t, rec.Body.String(), "password")
	users.AssertExpectations(t)
}

func TestSignupInvalidEmail(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupAuthRouter(NewAuthHandler(users, testTokenIssuer(), nil))

	req := httptest.NewRequest(http.MethodPost, "/signup/", bytes.NewBufferString(`{"email":"not-an-email","password":"x"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSignupDuplicateEmail(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupAuthRouter(NewAuthHandler(users, testTokenIssuer(), nil))

	users.On("Create", mock.Anything, "alice@example.com", "", "", mock.Anything).
		Return(models.User{}, repositories.ErrEmailTaken).Once()

	req := httptest.NewRequest(http.MethodPost, "/signup/", bytes.NewBufferString(`{"email":"alice@example.com","password":"hunter2"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already registered")
	users.AssertExpectations(t)
}

func TestLoginSuccess(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupAuthRouter(NewAuthHandler(users, testTokenIssuer(), nil))

	hash, err := auth.HashPassword("hunter2")
	require.NoError(t, err)
	users.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(models.User{ID: 1, Email: "alice@example.com", PasswordHash: hash}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/login/", bytes.NewBufferString(`{"email":"Alice@example.com","password":"hunter2"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var pair auth.TokenPair
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&pair))
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
	users.AssertExpectations(t)
}

func TestLoginWrongPassword(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupAuthRouter(NewAuthHandler(users, testTokenIssuer(), nil))

	hash, err := auth.HashPassword("hunter2")
	require.NoError(t, err)
	users.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(models.User{ID: 1, PasswordHash: hash}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/login/", bytes.NewBufferString(`{"email":"alice@example.com","password":"wrong"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	users.AssertExpectations(t)
}

func TestLoginUnknownEmail(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupAuthRouter(NewAuthHandler(users, testTokenIssuer(), nil))

	users.On("GetByEmail", mock.Anything, "nobody@example.com").
		Return(models.User{}, repositories.ErrUserNotFound).Once()

	req := httptest.NewRequest(http.MethodPost, "/login/", bytes.NewBufferString(`{"email":"nobody@example.com","password":"x"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	users.AssertExpectations(t)
}

func TestRefreshSuccess(t *testing.T) {
	issuer := testTokenIssuer()
	router := setupAuthRouter(NewAuthHandler(new(mocks.UserRepositoryMock), issuer, nil))

	pair, err := issuer.IssuePair(7)
	require.NoError(t, err)

	body, err := json.Marshal(map[string]string{"refresh": pair.Refresh})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/token/refresh/", bytes.NewBuffer(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var fresh auth.TokenPair
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&fresh))
	assert.NotEmpty(t, fresh.Access)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	issuer := testTokenIssuer()
	router := setupAuthRouter(NewAuthHandler(new(mocks.UserRepositoryMock), issuer, nil))

	pair, err := issuer.IssuePair(7)
	require.NoError(t, err)

	body, err := json.Marshal(map[string]string{"refresh": pair.Access})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/token/refresh/", bytes.NewBuffer(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
