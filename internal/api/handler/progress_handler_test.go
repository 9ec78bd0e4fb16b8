package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JEerdekens/bookclub/internal/api/dto"
	"github.com/JEerdekens/bookclub/internal/api/models"
	"github.com/JEerdekens/bookclub/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProgressService mocks the ProgressService interface
type MockProgressService struct {
	mock.Mock
}

func (m *MockProgressService) Upsert(ctx context.Context, userID string, bookID int64, percent float64) (float64, error) {
	args := m.Called(ctx, userID, bookID, percent)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockProgressService) UpsertFromPages(ctx context.Context, userID string, bookID int64, pagesRead, totalPages int) (float64, error) {
	args := m.Called(ctx, userID, bookID, pagesRead, totalPages)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockProgressService) Get(ctx context.Context, userID string, bookID int64) (*models.Progress, error) {
	args := m.Called(ctx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Progress), args.Error(1)
}

func (m *MockProgressService) GetByUser(ctx context.Context, userID string) ([]models.Progress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Progress), args.Error(1)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// mockAuthMiddleware injects a fixed user the way AuthMiddleware would
func mockAuthMiddleware(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func TestUpdateProgress_WithPercent(t *testing.T) {
	mockService := new(MockProgressService)
	h := NewProgressHandler(mockService)
	router := setupRouter()
	router.Use(mockAuthMiddleware("user-1"))
	h.RegisterRoutes(router.Group("/progress"))

	mockService.On("Upsert", mock.Anything, "user-1", int64(5), 150.0).Return(100.0, nil)

	percent := 150.0
	body, _ := json.Marshal(dto.UpdateProgressRequest{Percent: &percent})
	req := httptest.NewRequest(http.MethodPost, "/progress/5", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.ProgressResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 100.0, resp.Percent)
	mockService.AssertExpectations(t)
}

func TestUpdateProgress_WithPages(t *testing.T) {
	mockService := new(MockProgressService)
	h := NewProgressHandler(mockService)
	router := setupRouter()
	router.Use(mockAuthMiddleware("user-1"))
	h.RegisterRoutes(router.Group("/progress"))

	mockService.On("UpsertFromPages", mock.Anything, "user-1", int64(5), 50, 200).Return(25.0, nil)

	pagesRead, totalPages := 50, 200
	body, _ := json.Marshal(dto.UpdateProgressRequest{PagesRead: &pagesRead, TotalPages: &totalPages})
	req := httptest.NewRequest(http.MethodPost, "/progress/5", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.ProgressResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 25.0, resp.Percent)
}

func TestUpdateProgress_MissingBody(t *testing.T) {
	mockService := new(MockProgressService)
	h := NewProgressHandler(mockService)
	router := setupRouter()
	router.Use(mockAuthMiddleware("user-1"))
	h.RegisterRoutes(router.Group("/progress"))

	body, _ := json.Marshal(dto.UpdateProgressRequest{})
	req := httptest.NewRequest(http.MethodPost, "/progress/5", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProgress_BookNotFound(t *testing.T) {
	mockService := new(MockProgressService)
	h := NewProgressHandler(mockService)
	router := setupRouter()
	router.Use(mockAuthMiddleware("user-1"))
	h.RegisterRoutes(router.Group("/progress"))

	mockService.On("Upsert", mock.Anything, "user-1", int64(99), 50.0).Return(0.0, service.ErrBookNotFound)

	percent := 50.0
	body, _ := json.Marshal(dto.UpdateProgressRequest{Percent: &percent})
	req := httptest.NewRequest(http.MethodPost, "/progress/99", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProgress_NoRecordYieldsZero(t *testing.T) {
	mockService := new(MockProgressService)
	h := NewProgressHandler(mockService)
	router := setupRouter()
	router.Use(mockAuthMiddleware("user-1"))
	h.RegisterRoutes(router.Group("/progress"))

	mockService.On("Get", mock.Anything, "user-1", int64(5)).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/progress/5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.ProgressResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0.0, resp.Percent)
}
