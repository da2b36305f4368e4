package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/services/auth"
)

type contextKey string

const (
	playerContextKey  contextKey = "player"
	sessionContextKey contextKey = "session"
)

// SessionCookieName is the cookie holding the session token
const SessionCookieName = "session"

// GetPlayer retrieves the authenticated player from the request context
// Returns nil if no player is authenticated
func GetPlayer(ctx context.Context) *model.Player {
	player, _ := ctx.Value(playerContextKey).(*model.Player)
	return player
}

// GetSessionToken retrieves the session token of the authenticated player
func GetSessionToken(ctx context.Context) string {
	token, _ := ctx.Value(sessionContextKey).(string)
	return token
}

// Auth returns middleware that requires authentication
// Redirects to home page if not authenticated
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := getSession(r, authService)
			if session == nil {
				// Store original URL to redirect back after auth
				redirectURL := "/?next=" + url.QueryEscape(r.URL.Path)
				if r.Header.Get("HX-Request") == "true" {
					w.Header().Set("HX-Redirect", redirectURL)
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				http.Redirect(w, r, redirectURL, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(withSession(r.Context(), session)))
		})
	}
}

// OptionalAuth returns middleware that attempts authentication but doesn't require it
// Sets player in context if authenticated, nil otherwise
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if session := getSession(r, authService); session != nil {
				ctx = withSession(ctx, session)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func withSession(ctx context.Context, session *auth.Session) context.Context {
	player := session.Player
	ctx = context.WithValue(ctx, playerContextKey, &player)
	return context.WithValue(ctx, sessionContextKey, session.Token)
}

func getSession(r *http.Request, authService *auth.Service) *auth.Session {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	session, err := authService.ValidateSession(cookie.Value)
	if err != nil {
		return nil
	}

	return session
}
