package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/minesweeper/internal/middleware"
	"github.com/mcoot/minesweeper/internal/web/templates/layout"
	"github.com/mcoot/minesweeper/internal/web/templates/pages"
)

// Logging logs every page and fragment request under the "web" component
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("component", "web")))
}

// Recovery renders the error page when a handler panics
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger.With(slog.String("component", "web")), renderPanicPage)
}

func renderPanicPage(w http.ResponseWriter, r *http.Request, _ any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_ = pages.Error(pages.ErrorData{
		PageData: layout.PageData{Title: "Error"},
		Status:   http.StatusInternalServerError,
		Message:  "Something went wrong. Please try again later.",
	}).Render(r.Context(), w)
}
