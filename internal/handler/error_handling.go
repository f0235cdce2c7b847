package handler

import (
	"errors"
	"net/http"

	"cyberwise-server/internal/game"
	"cyberwise-server/internal/models"
	"cyberwise-server/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var errResp models.ErrorResponse

	switch {
	case errors.Is(err, models.ErrSessionNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Code: models.ErrCodeSessionNotFound, Message: "Session not found"}
	case errors.Is(err, models.ErrScenarioNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Code: models.ErrCodeScenarioNotFound, Message: "Scenario content not found"}
	case errors.Is(err, models.ErrStepNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Code: models.ErrCodeStepNotFound, Message: "Current step is out of range"}
	case errors.Is(err, models.ErrChoiceNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Code: models.ErrCodeChoiceNotFound, Message: "Choice not found on current step"}
	case errors.Is(err, models.ErrChoiceLocked):
		statusCode = http.StatusForbidden
		errResp = models.ErrorResponse{Code: models.ErrCodeChoiceLocked, Message: "Choice requires a higher trust level"}
	case errors.Is(err, models.ErrGameNotStarted):
		statusCode = http.StatusConflict
		errResp = models.ErrorResponse{Code: models.ErrCodeGameNotStarted, Message: "Game has not been started"}
	case errors.Is(err, models.ErrGameNotCompleted):
		statusCode = http.StatusConflict
		errResp = models.ErrorResponse{Code: models.ErrCodeGameNotCompleted, Message: "Game is not completed yet"}
	case errors.Is(err, models.ErrUnknownDay):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Code: models.ErrCodeUnknownDay, Message: "Unknown day identifier"}
	case errors.Is(err, service.ErrDayLocked):
		statusCode = http.StatusForbidden
		errResp = models.ErrorResponse{Code: models.ErrCodeDayLocked, Message: "Day is not unlocked yet"}
	case errors.Is(err, service.ErrDayNotCompleted):
		statusCode = http.StatusConflict
		errResp = models.ErrorResponse{Code: models.ErrCodeDayNotCompleted, Message: "Current day is not completed"}
	case errors.Is(err, game.ErrAlreadyShowingFeedback), errors.Is(err, game.ErrNotShowingFeedback):
		statusCode = http.StatusConflict
		errResp = models.ErrorResponse{Code: models.ErrCodeInvalidPhase, Message: err.Error()}
	default:
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResp = models.ErrorResponse{Code: models.ErrCodeInternal, Message: "An unexpected internal error occurred"}
	}

	c.AbortWithStatusJSON(statusCode, errResp)
}
