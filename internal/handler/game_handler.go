package handler

import (
	"net/http"

	"cyberwise-server/internal/models"
	"cyberwise-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionIDHeader - заголовок, идентифицирующий игровую сессию. Аутентификации
// нет: сессия анонимная, клиент хранит идентификатор у себя.
const SessionIDHeader = "X-Session-ID"

// GameHandler обслуживает HTTP API игрового цикла.
type GameHandler struct {
	gameplayService service.GameplayService
	logger          *zap.Logger
}

func NewGameHandler(gameplayService service.GameplayService, logger *zap.Logger) *GameHandler {
	return &GameHandler{
		gameplayService: gameplayService,
		logger:          logger.Named("GameHandler"),
	}
}

func (h *GameHandler) RegisterRoutes(router *gin.Engine) {
	sessionGroup := router.Group("/api/session")
	{
		sessionGroup.POST("/start", h.startSession)
		sessionGroup.GET("", h.getSession)
		sessionGroup.POST("/choice", h.makeChoice)
		sessionGroup.POST("/continue", h.continueSession)
		sessionGroup.POST("/back", h.goBack)
		sessionGroup.POST("/next-day", h.advanceDay)
		sessionGroup.POST("/jump", h.jumpToDay)
		sessionGroup.POST("/reset", h.resetSession)
		sessionGroup.POST("/achievement/dismiss", h.dismissAchievement)
		sessionGroup.POST("/trust-warning/dismiss", h.dismissTrustWarning)
		sessionGroup.GET("/ending", h.getEnding)
	}

	contentGroup := router.Group("/api/content")
	{
		contentGroup.GET("/days", h.listDays)
		contentGroup.GET("/achievements", h.listAchievements)
	}
}

// sessionID извлекает идентификатор сессии из заголовка. Пустой заголовок -
// ошибка клиента для всех операций, кроме /start.
func sessionID(c *gin.Context) (string, bool) {
	id := c.GetHeader(SessionIDHeader)
	if id == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    models.ErrCodeValidation,
			Message: "Missing " + SessionIDHeader + " header",
		})
		return "", false
	}
	return id, true
}

// startSession начинает новую игру. Если клиент не прислал идентификатор
// сессии, генерируем новый и возвращаем его в заголовке ответа.
func (h *GameHandler) startSession(c *gin.Context) {
	id := c.GetHeader(SessionIDHeader)
	if id == "" {
		id = uuid.NewString()
	}

	view, err := h.gameplayService.StartSession(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.Header(SessionIDHeader, id)
	c.JSON(http.StatusCreated, view)
}

func (h *GameHandler) getSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.gameplayService.GetSession(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *GameHandler) makeChoice(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req choiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    models.ErrCodeValidation,
			Message: "choice_id is required",
		})
		return
	}

	view, err := h.gameplayService.MakeChoice(c.Request.Context(), id, req.ChoiceID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *GameHandler) continueSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.gameplayService.Continue(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *GameHandler) goBack(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.gameplayService.GoBack(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *GameHandler) advanceDay(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.gameplayService.AdvanceDay(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *GameHandler) jumpToDay(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req jumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    models.ErrCodeValidation,
			Message: "day is required",
		})
		return
	}

	view, err := h.gameplayService.JumpToDay(c.Request.Context(), id, models.DayID(req.Day))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *GameHandler) resetSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.gameplayService.ResetSession(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *GameHandler) dismissAchievement(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.gameplayService.DismissAchievement(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *GameHandler) dismissTrustWarning(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.gameplayService.DismissTrustWarning(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *GameHandler) getEnding(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := h.gameplayService.GetEnding(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *GameHandler) listDays(c *gin.Context) {
	days, err := h.gameplayService.ListDays(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

func (h *GameHandler) listAchievements(c *gin.Context) {
	achievements, err := h.gameplayService.ListAchievements(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"achievements": achievements})
}
