package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketplace-service/internal/models"
	"marketplace-service/internal/repository"
)

const testJWTSecret = "test-secret"

func setupUserRouter(repo *mockUserStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewUserHandler(repo, testJWTSecret)

	router := gin.New()
	user := router.Group("/user")
	{
		user.POST("/reg", handler.Register)
		user.GET("", handler.GetUsers)
		user.GET("/:id", handler.GetUser)
		user.PUT("/:id", handler.UpdateUser)
	}
	return router
}

func TestRegister_NewUserGetsToken(t *testing.T) {
	repo := new(mockUserStore)
	repo.On("GetByID", int64(42)).Return(nil, repository.ErrUserNotFound)
	repo.On("Create", mock.MatchedBy(func(u *models.User) bool {
		return u.ID == 42 && u.Name == "Aset" && u.Status == models.DefaultUserStatus
	})).Return(nil)

	router := setupUserRouter(repo)

	body, _ := json.Marshal(models.RegisterUserRequest{ID: 42, Name: "Aset", Img: "a.png"})
	req := httptest.NewRequest(http.MethodPost, "/user/reg", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool        `json:"success"`
		Data    models.User `json:"data"`
		Token   string      `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(42), resp.Data.ID)
	assert.NotEmpty(t, resp.Token)
	repo.AssertExpectations(t)
}

func TestRegister_ExistingUserReturnedWithoutToken(t *testing.T) {
	repo := new(mockUserStore)
	repo.On("GetByID", int64(42)).Return(&models.User{ID: 42, Name: "Aset", Status: "DEFAULT"}, nil)

	router := setupUserRouter(repo)

	body, _ := json.Marshal(models.RegisterUserRequest{ID: 42, Name: "Other name"})
	req := httptest.NewRequest(http.MethodPost, "/user/reg", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool        `json:"success"`
		Data    models.User `json:"data"`
		Token   string      `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Aset", resp.Data.Name)
	assert.Empty(t, resp.Token)
	repo.AssertNotCalled(t, "Create")
}

func TestRegister_MissingID(t *testing.T) {
	repo := new(mockUserStore)
	router := setupUserRouter(repo)

	req := httptest.NewRequest(http.MethodPost, "/user/reg", bytes.NewReader([]byte(`{"name":"Aset"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Create")
}

func TestGetUser_NotFound(t *testing.T) {
	repo := new(mockUserStore)
	repo.On("GetByID", int64(99)).Return(nil, repository.ErrUserNotFound)

	router := setupUserRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/user/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "USER_NOT_FOUND", resp.Error.Code)
}

func TestUpdateUser_PartialUpdate(t *testing.T) {
	repo := new(mockUserStore)
	repo.On("GetByID", int64(42)).Return(&models.User{ID: 42, Name: "Aset", Img: "a.png", Status: "DEFAULT"}, nil)
	repo.On("Update", mock.MatchedBy(func(u *models.User) bool {
		return u.Name == "Renamed" && u.Img == "a.png"
	})).Return(nil)

	router := setupUserRouter(repo)

	newName := "Renamed"
	body, _ := json.Marshal(models.UpdateUserRequest{Name: &newName})
	req := httptest.NewRequest(http.MethodPut, "/user/42", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}
