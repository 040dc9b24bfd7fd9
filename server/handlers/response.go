package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "pcrimport/server/errors"
	"pcrimport/server/middleware"
)

// ErrorResponse тело ответа об ошибке
type ErrorResponse struct {
	Error     bool   `json:"error"`
	Kind      string `json:"kind,omitempty"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// SendJSONError отправляет ошибку в JSON и логирует её. Статус и текст
// берутся из AppError, остальные ошибки переводятся через FromImport.
func SendJSONError(c *gin.Context, logger *slog.Logger, err error) {
	appErr := apperrors.FromImport(err)
	reqID := middleware.GetRequestIDFromGin(c)

	attrs := []any{
		"error", appErr.Err,
		"kind", appErr.Kind,
		"status_code", appErr.Code,
		"request_id", reqID,
		"path", c.Request.URL.Path,
	}
	if appErr.Code >= http.StatusInternalServerError {
		logger.Error("Request failed", attrs...)
	} else {
		logger.Info("Request rejected", attrs...)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(appErr.Code, ErrorResponse{
		Error:     true,
		Kind:      appErr.Kind,
		Message:   appErr.Message,
		RequestID: reqID,
	})
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	// multipart местами оборачивает ошибку через %v
	return strings.Contains(err.Error(), "request body too large")
}
