package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/minesweeper/internal/api/apierr"
	"github.com/mcoot/minesweeper/internal/middleware"
)

// Logging logs every API request under the "api" component
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("component", "api")))
}

// Recovery answers a panicking API handler with a JSON 500
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger.With(slog.String("component", "api")), writeInternalError)
}

func writeInternalError(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
