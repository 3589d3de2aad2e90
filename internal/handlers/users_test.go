package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"friend-service/internal/mocks"
	"friend-service/internal/models"
)

func setupUserRouter(handler *UserHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Next()
	})
	r.GET("/search/", handler.Search)
	return r
}

func TestSearchDefaults(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupUserRouter(NewUserHandler(users, 10, 100))

	users.On("Search", mock.Anything, "ali", 10, 0).
		Return([]models.PublicUser{{ID: 3, FirstName: "Alice"}}, 1, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/search/?keyword=ali", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Count    int                 `json:"count"`
		Page     int                 `json:"page"`
		PageSize int                 `json:"page_size"`
		Results  []models.PublicUser `json:"results"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 10, resp.PageSize)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Alice", resp.Results[0].FirstName)
	users.AssertExpectations(t)
}

func TestSearchPaging(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupUserRouter(NewUserHandler(users, 10, 100))

	users.On("Search", mock.Anything, "a", 25, 50).
		Return([]models.PublicUser{}, 120, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/search/?keyword=a&page=3&page_size=25", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	users.AssertExpectations(t)
}

func TestSearchPageSizeClamped(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupUserRouter(NewUserHandler(users, 10, 100))

	users.On("Search", mock.Anything, "", 100, 0).
		Return([]models.PublicUser{}, 0, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/search/?page_size=5000", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	users.AssertExpectations(t)
}

func TestSearchInvalidPageFallsBack(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupUserRouter(NewUserHandler(users, 10, 100))

	users.On("Search", mock.Anything, "bob", 10, 0).
		Return([]models.PublicUser{}, 0, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/search/?keyword=bob&page=-2&page_size=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	users.AssertExpectations(t)
}

func TestSearchRepoError(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	router := setupUserRouter(NewUserHandler(users, 10, 100))

	users.On("Search", mock.Anything, "x", 10, 0).
		Return(([]models.PublicUser)(nil), 0, assert.AnError).Once()

	req := httptest.NewRequest(http.MethodGet, "/search/?keyword=x", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	users.AssertExpectations(t)
}
