package handler

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/minesweeper/internal/web/middleware"
	"github.com/mcoot/minesweeper/internal/web/templates"
	"github.com/mcoot/minesweeper/internal/web/templates/layout"
	"github.com/mcoot/minesweeper/internal/web/templates/pages"
)

// render writes a component as an HTML response. The component is rendered
// in full before anything is written so a failure can still become a 500.
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	html, err := templates.RenderString(r.Context(), c)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(html))
}

// renderError writes a full error page
func renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render(w, r, status, pages.Error(pages.ErrorData{
		PageData: pageData(r, http.StatusText(status)),
		Status:   status,
		Message:  message,
	}))
}

// pageData fills the layout data shared by every page
func pageData(r *http.Request, title string) layout.PageData {
	return layout.PageData{
		Title:  title,
		Player: middleware.GetPlayer(r.Context()),
		Flash:  middleware.GetFlash(r.Context()),
	}
}

// redirect sends the browser elsewhere, using HX-Redirect for htmx requests
func redirect(w http.ResponseWriter, r *http.Request, location string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", location)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// NotFound renders the 404 page for unknown routes
func NotFound(w http.ResponseWriter, r *http.Request) {
	renderError(w, r, http.StatusNotFound, "That page doesn't exist.")
}
