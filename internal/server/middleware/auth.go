package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"budgetplanner/internal/auth"
	"budgetplanner/internal/config"
	"budgetplanner/internal/server/handlers"
)

// SessionMiddleware authenticates requests from the session cookies.
// A valid access cookie is the fast path; otherwise the refresh cookie
// is verified against the token ledger and a fresh access cookie is
// set on the response. Unauthenticated browser requests are redirected
// to /login, API requests get 401 JSON.
func SessionMiddleware(logger *slog.Logger, cfg *config.Config, resolver *auth.SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			user, renewed, err := resolver.Resolve(ctx, cookieValue(r, handlers.AccessTokenCookie), cookieValue(r, handlers.RefreshTokenCookie))
			if err != nil {
				logger.ErrorContext(ctx, "session resolution failed", slog.Any("error", err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			if user == nil {
				reject(w, r, cfg)
				return
			}

			if renewed != "" {
				handlers.SetAccessCookie(w, cfg, renewed)
				logger.DebugContext(ctx, "access token renewed from refresh token",
					slog.Int64("user_id", user.ID))
			}

			next.ServeHTTP(w, r.WithContext(handlers.WithUser(ctx, user)))
		})
	}
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func reject(w http.ResponseWriter, r *http.Request, cfg *config.Config) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Unauthorized","message":"not authenticated"}`))
		return
	}

	// Stale cookies would bounce the browser straight back here.
	handlers.ClearSessionCookies(w, cfg)
	http.Redirect(w, r, "/login", http.StatusFound)
}
