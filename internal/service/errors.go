package service

import "errors"

// Ошибки уровня сервиса. Ошибки контента и сессий приходят из models,
// ошибки порядка операций - из пакета game.
var (
	// ErrDayLocked - попытка перейти на день, который еще не открыт
	// (дни открываются последовательно).
	ErrDayLocked = errors.New("day is locked")
	// ErrDayNotCompleted - попытка перейти к следующему дню до того, как
	// текущий день пройден.
	ErrDayNotCompleted = errors.New("current day is not completed")
)
