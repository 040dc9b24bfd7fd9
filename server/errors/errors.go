package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"pcrimport/detection"
	"pcrimport/extractors"
	"pcrimport/formats"
	"pcrimport/importer"
	"pcrimport/internal/application/pipeline"
)

// AppError ошибка приложения с HTTP статусом
type AppError struct {
	Code    int    `json:"status_code"` // HTTP статус код
	Message string `json:"message"`     // Сообщение для пользователя
	Kind    string `json:"kind,omitempty"`
	Err     error  `json:"-"` // Внутренняя ошибка для логов
}

// Error реализует интерфейс error
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap возвращает вложенную ошибку для errors.Is и errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode возвращает HTTP статус код ошибки
func (e *AppError) StatusCode() int {
	return e.Code
}

// NewNotFoundError создает ошибку 404 Not Found
func NewNotFoundError(message string, err error) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Kind: "not_found", Err: err}
}

// NewValidationError создает ошибку 400 Bad Request
func NewValidationError(message string, err error) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Kind: "validation", Err: err}
}

// NewUnprocessableError создает ошибку 422: файл прочитан, но не подходит
func NewUnprocessableError(kind, message string, err error) *AppError {
	return &AppError{Code: http.StatusUnprocessableEntity, Message: message, Kind: kind, Err: err}
}

// NewTooManyRequestsError создает ошибку 429
func NewTooManyRequestsError(message string) *AppError {
	return &AppError{Code: http.StatusTooManyRequests, Message: message, Kind: "rate_limited"}
}

// NewInternalError создает ошибку 500. Для пользователя общее сообщение,
// детали только в логах.
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: "internal server error",
		Kind:    "internal",
		Err:     errors.Join(errors.New(message), err),
	}
}

// FromImport переводит ошибку конвейера импорта в AppError
func FromImport(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, importer.ErrUnreadableFile):
		return &AppError{Code: http.StatusBadRequest, Message: "file is not a readable spreadsheet", Kind: "unreadable_file", Err: err}
	case errors.Is(err, formats.ErrUnknownFormat):
		return NewNotFoundError("unknown format", err)
	case errors.Is(err, importer.ErrNoHeaderFound):
		return NewUnprocessableError("no_header", "no header row found", err)
	case errors.Is(err, detection.ErrNoCandidate):
		return NewUnprocessableError("no_candidate", "no format matches the file", err)
	case errors.Is(err, extractors.ErrMissingRequiredColumn):
		return NewUnprocessableError("missing_column", "required column is missing", err)
	case errors.Is(err, extractors.ErrIncompleteFile):
		return NewUnprocessableError("incomplete_file", "file is incomplete", err)
	case errors.Is(err, pipeline.ErrNoUsableRows):
		return NewUnprocessableError("no_usable_rows", "file produced no usable rows", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &AppError{Code: http.StatusServiceUnavailable, Message: "request cancelled", Kind: "cancelled", Err: err}
	}
	return NewInternalError("import failed", err)
}
