package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда сессия или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrProviderUnavailable — транспортная ошибка при обращении к провайдеру
	// вопросов (сеть, таймаут, некорректный ответ).
	ErrProviderUnavailable = errors.New("question provider unavailable")

	// ErrProviderRejected — провайдер ответил, но с ненулевым кодом статуса
	// (например, недопустимая комбинация фильтров).
	ErrProviderRejected = errors.New("question provider rejected request")
)
