package server

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger создает структурированный JSON логгер. Вывод по умолчанию в stdout.
func NewLogger(level slog.Level, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: true, // файл и строка источника
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
