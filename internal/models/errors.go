package models

import "errors"

// Application-wide standard errors
var (
	// Common Resource/DB Errors
	ErrNotFound         = errors.New("resource not found") // General not found
	ErrScenarioNotFound = errors.New("scenario for day not found")
	ErrSessionNotFound  = errors.New("game session not found")

	// Content lookup errors - указывают на баг контента или клиента,
	// никогда не подменяем дефолтным шагом.
	ErrStepNotFound   = errors.New("scenario step not found at current position")
	ErrBranchNotFound = errors.New("scenario branch not found")
	ErrChoiceNotFound = errors.New("choice not found in current step")

	// Gameplay Errors
	ErrGameNotStarted   = errors.New("game has not been started")
	ErrGameNotCompleted = errors.New("game is not completed yet")
	ErrChoiceLocked     = errors.New("choice is locked by trust level requirement")
	ErrUnknownDay       = errors.New("unknown day identifier")

	// General Request/Server Errors
	ErrInternalServer = errors.New("internal server error")
	ErrBadRequest     = errors.New("bad request")
	ErrInvalidInput   = errors.New("invalid input data")
)
