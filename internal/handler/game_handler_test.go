package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cyberwise-server/internal/handler"
	"cyberwise-server/internal/models"
	"cyberwise-server/internal/service"
	serviceMocks "cyberwise-server/internal/service/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRouter(svc service.GameplayService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler.NewGameHandler(svc, zap.NewNop()).RegisterRoutes(router)
	return router
}

func sampleView(sessionID string) *service.SessionView {
	return &service.SessionView{
		SessionID:     sessionID,
		Day:           service.DayView{ID: models.DayMonday, Title: "The Suspicious Email"},
		SecurityScore: 75,
		TrustLevel:    50,
		GameStarted:   true,
	}
}

func TestStartSession_GeneratesSessionID(t *testing.T) {
	mockService := new(serviceMocks.GameplayService)
	mockService.On("StartSession", mock.Anything, mock.MatchedBy(func(id string) bool {
		return id != ""
	})).Return(sampleView("generated"), nil).Once()
	router := setupRouter(mockService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/session/start", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, w.Header().Get(handler.SessionIDHeader))
	mockService.AssertExpectations(t)
}

func TestStartSession_KeepsProvidedSessionID(t *testing.T) {
	mockService := new(serviceMocks.GameplayService)
	mockService.On("StartSession", mock.Anything, "my-session").Return(sampleView("my-session"), nil).Once()
	router := setupRouter(mockService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/session/start", nil)
	req.Header.Set(handler.SessionIDHeader, "my-session")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "my-session", w.Header().Get(handler.SessionIDHeader))
	mockService.AssertExpectations(t)
}

func TestGetSession_RequiresHeader(t *testing.T) {
	mockService := new(serviceMocks.GameplayService)
	router := setupRouter(mockService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetSession", mock.Anything, mock.Anything)
}

func TestGetSession_NotFound(t *testing.T) {
	mockService := new(serviceMocks.GameplayService)
	mockService.On("GetSession", mock.Anything, "missing").Return(nil, models.ErrSessionNotFound).Once()
	router := setupRouter(mockService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set(handler.SessionIDHeader, "missing")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.ErrCodeSessionNotFound, resp.Code)
}

func TestMakeChoice(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockService := new(serviceMocks.GameplayService)
		mockService.On("MakeChoice", mock.Anything, "s1", "report").Return(sampleView("s1"), nil).Once()
		router := setupRouter(mockService)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/session/choice", strings.NewReader(`{"choice_id":"report"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(handler.SessionIDHeader, "s1")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var view service.SessionView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		assert.Equal(t, "s1", view.SessionID)
		mockService.AssertExpectations(t)
	})

	t.Run("missing choice_id", func(t *testing.T) {
		mockService := new(serviceMocks.GameplayService)
		router := setupRouter(mockService)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/session/choice", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(handler.SessionIDHeader, "s1")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "MakeChoice", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("locked choice maps to 403", func(t *testing.T) {
		mockService := new(serviceMocks.GameplayService)
		mockService.On("MakeChoice", mock.Anything, "s1", "escalate").Return(nil, models.ErrChoiceLocked).Once()
		router := setupRouter(mockService)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/session/choice", strings.NewReader(`{"choice_id":"escalate"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(handler.SessionIDHeader, "s1")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, models.ErrCodeChoiceLocked, resp.Code)
	})
}

func TestJumpToDay_PassesDay(t *testing.T) {
	mockService := new(serviceMocks.GameplayService)
	mockService.On("JumpToDay", mock.Anything, "s1", models.DayWednesday).Return(sampleView("s1"), nil).Once()
	router := setupRouter(mockService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/session/jump", strings.NewReader(`{"day":"wednesday"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(handler.SessionIDHeader, "s1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestGetEnding_NotCompleted(t *testing.T) {
	mockService := new(serviceMocks.GameplayService)
	mockService.On("GetEnding", mock.Anything, "s1").Return(nil, models.ErrGameNotCompleted).Once()
	router := setupRouter(mockService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/session/ending", nil)
	req.Header.Set(handler.SessionIDHeader, "s1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.ErrCodeGameNotCompleted, resp.Code)
}

func TestListContent(t *testing.T) {
	mockService := new(serviceMocks.GameplayService)
	mockService.On("ListDays", mock.Anything).Return([]models.DaySummary{
		{ID: models.DayMonday, DayIndex: 0, Title: "The Suspicious Email"},
	}, nil).Once()
	mockService.On("ListAchievements", mock.Anything).Return([]models.Achievement{
		{ID: "trust_builder", Name: "Trust Builder"},
	}, nil).Once()
	router := setupRouter(mockService)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/content/days", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/content/achievements", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}
