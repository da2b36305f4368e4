package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mcoot/minesweeper/internal/services/auth"
	"github.com/mcoot/minesweeper/internal/web/middleware"
	"github.com/mcoot/minesweeper/internal/web/templates/pages"
)

const sessionCookieMaxAge = 86400 // matches the default session duration

// AuthHandler handles authentication pages and actions
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetPlayer(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	render(w, r, http.StatusOK, pages.Login(pages.LoginData{
		PageData: pageData(r, "Login"),
		Next:     r.URL.Query().Get("next"),
	}))
}

// RegisterPage renders the registration page
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetPlayer(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	render(w, r, http.StatusOK, pages.Register(pages.RegisterData{
		PageData:    pageData(r, "Register"),
		FieldErrors: make(map[string]string),
	}))
}

// CreateGuest handles guest player creation. A blank name falls back to
// the default guest name.
func (h *AuthHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	session, err := h.authService.CreateGuestPlayer(r.Context(), r.FormValue("display_name"))
	if err != nil {
		middleware.SetFlash(w, middleware.FlashError, "Failed to create guest player")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.setSessionCookie(w, session.Token)
	middleware.SetFlash(w, middleware.FlashSuccess, "Welcome, "+session.Player.DisplayName+"!")
	http.Redirect(w, r, safeNext(r.FormValue("next")), http.StatusSeeOther)
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, r, "Invalid form data", "", "")
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	next := r.FormValue("next")

	if username == "" || password == "" {
		h.renderLoginError(w, r, "Username and password are required", username, next)
		return
	}

	session, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		h.renderLoginError(w, r, "Invalid username or password", username, next)
		return
	}

	h.setSessionCookie(w, session.Token)
	middleware.SetFlash(w, middleware.FlashSuccess, "Welcome back, "+session.Player.DisplayName+"!")
	http.Redirect(w, r, safeNext(next), http.StatusSeeOther)
}

// Register handles registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderRegisterError(w, r, "Invalid form data", "", "", nil)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	displayName := strings.TrimSpace(r.FormValue("display_name"))
	password := r.FormValue("password")

	fieldErrors := make(map[string]string)
	if username == "" {
		fieldErrors["username"] = "Username is required"
	}
	if password == "" {
		fieldErrors["password"] = "Password is required"
	}
	if password != r.FormValue("password_confirm") {
		fieldErrors["password_confirm"] = "Passwords do not match"
	}
	if len(fieldErrors) > 0 {
		h.renderRegisterError(w, r, "", username, displayName, fieldErrors)
		return
	}

	session, err := h.authService.RegisterPlayer(r.Context(), username, password, displayName)
	switch {
	case errors.Is(err, auth.ErrUsernameExists):
		fieldErrors["username"] = "Username already taken"
	case errors.Is(err, auth.ErrInvalidUsername):
		fieldErrors["username"] = "Username must be 3-32 letters, digits, '-' or '_'"
	case errors.Is(err, auth.ErrInvalidPassword):
		fieldErrors["password"] = "Password must be at least 8 characters"
	case err != nil:
		h.renderRegisterError(w, r, "Registration failed, please try again", username, displayName, nil)
		return
	}
	if len(fieldErrors) > 0 {
		h.renderRegisterError(w, r, "", username, displayName, fieldErrors)
		return
	}

	h.setSessionCookie(w, session.Token)
	middleware.SetFlash(w, middleware.FlashSuccess, "Account created! Welcome, "+session.Player.DisplayName+"!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout ends the session and clears the cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.GetSessionToken(r.Context()); token != "" {
		h.authService.InvalidateSession(token)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.SetFlash(w, middleware.FlashInfo, "You have been logged out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   sessionCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, errorMsg, username, next string) {
	render(w, r, http.StatusUnprocessableEntity, pages.Login(pages.LoginData{
		PageData: pageData(r, "Login"),
		Username: username,
		Error:    errorMsg,
		Next:     next,
	}))
}

func (h *AuthHandler) renderRegisterError(w http.ResponseWriter, r *http.Request, errorMsg, username, displayName string, fieldErrors map[string]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string]string)
	}

	render(w, r, http.StatusUnprocessableEntity, pages.Register(pages.RegisterData{
		PageData:    pageData(r, "Register"),
		Username:    username,
		DisplayName: displayName,
		Error:       errorMsg,
		FieldErrors: fieldErrors,
	}))
}

// safeNext only follows local paths after sign-in
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}
