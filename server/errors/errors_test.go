package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"pcrimport/detection"
	"pcrimport/extractors"
	"pcrimport/formats"
	"pcrimport/importer"
	"pcrimport/internal/application/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromImport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		kind string
	}{
		{"unreadable", importer.ErrUnreadableFile, http.StatusBadRequest, "unreadable_file"},
		{"unknown format", formats.ErrUnknownFormat, http.StatusNotFound, "not_found"},
		{"no header", importer.ErrNoHeaderFound, http.StatusUnprocessableEntity, "no_header"},
		{"no candidate", detection.ErrNoCandidate, http.StatusUnprocessableEntity, "no_candidate"},
		{"missing column", extractors.ErrMissingRequiredColumn, http.StatusUnprocessableEntity, "missing_column"},
		{"incomplete", extractors.ErrIncompleteFile, http.StatusUnprocessableEntity, "incomplete_file"},
		{"no rows", pipeline.ErrNoUsableRows, http.StatusUnprocessableEntity, "no_usable_rows"},
		{"cancelled", context.Canceled, http.StatusServiceUnavailable, "cancelled"},
		{"other", errors.New("disk full"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("processing run.xlsx: %w", tt.err)
			appErr := FromImport(wrapped)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.code, appErr.StatusCode())
			assert.Equal(t, tt.kind, appErr.Kind)
			assert.ErrorIs(t, appErr, tt.err)
		})
	}
}

func TestFromImport_Passthrough(t *testing.T) {
	assert.Nil(t, FromImport(nil))

	original := NewValidationError("bad sheet", nil)
	assert.Same(t, original, FromImport(fmt.Errorf("wrapped: %w", original)))
}

func TestInternalErrorHidesDetails(t *testing.T) {
	err := NewInternalError("save upload", errors.New("permission denied"))
	assert.Equal(t, "internal server error", err.Message)
	assert.Contains(t, err.Error(), "permission denied")
}
