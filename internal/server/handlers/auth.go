package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"budgetplanner/internal/auth"
	"budgetplanner/internal/config"
	"budgetplanner/internal/models"
	"budgetplanner/internal/storage"
)

// AuthHandler serves the login page and manages the session cookies.
type AuthHandler struct {
	logger *slog.Logger
	cfg    *config.Config
	users  storage.UserStorage
	tokens *auth.TokenService
	render *Renderer
}

// NewAuthHandler creates a new handler for login and logout.
func NewAuthHandler(logger *slog.Logger, cfg *config.Config, users storage.UserStorage, tokens *auth.TokenService, render *Renderer) *AuthHandler {
	return &AuthHandler{
		logger: logger,
		cfg:    cfg,
		users:  users,
		tokens: tokens,
		render: render,
	}
}

// loginView holds data for the login page. User is always nil; the
// field exists so the shared layout can hide the navigation bar.
type loginView struct {
	User  *models.User
	Error string
}

// LoginPage handles GET /login.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	// Already authenticated sessions go straight to the dashboard.
	if UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	h.render.Render(w, "login.html", loginView{})
}

// Login handles POST /login. On success both session cookies are set
// and the browser is redirected to the dashboard; on bad credentials
// the login page is re-rendered with a generic error that does not
// reveal whether the username exists.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		h.render.Render(w, "login.html", loginView{Error: "Invalid form submission"})
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	user, err := h.users.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, storage.ErrUserNotFound) {
		h.logger.ErrorContext(ctx, "failed to load user for login", slog.Any("error", err))
		h.render.Render(w, "login.html", loginView{Error: "Something went wrong, please try again"})
		return
	}

	if user == nil || !auth.CheckPassword(password, user.PasswordHash) {
		h.logger.WarnContext(ctx, "failed login attempt", slog.String("username", username))
		h.render.Render(w, "login.html", loginView{Error: "Invalid username or password"})
		return
	}

	accessToken, err := h.tokens.IssueAccess(user)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue access token", slog.Any("error", err))
		h.render.Render(w, "login.html", loginView{Error: "Something went wrong, please try again"})
		return
	}

	refreshToken, err := h.tokens.IssueRefresh(ctx, user)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue refresh token", slog.Any("error", err))
		h.render.Render(w, "login.html", loginView{Error: "Something went wrong, please try again"})
		return
	}

	SetAccessCookie(w, h.cfg, accessToken)
	SetRefreshCookie(w, h.cfg, refreshToken)

	h.logger.InfoContext(ctx, "user logged in",
		slog.String("username", user.Username),
		slog.Int64("user_id", user.ID))

	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout handles GET /logout. The refresh token is revoked in the
// ledger before the cookies are cleared, so a stolen copy of the
// cookie is dead after logout as well.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cookie, err := r.Cookie(RefreshTokenCookie); err == nil && cookie.Value != "" {
		if err := h.tokens.Revoke(ctx, cookie.Value); err != nil {
			// Cookies are cleared regardless; the row stays revocable later.
			h.logger.ErrorContext(ctx, "failed to revoke refresh token on logout", slog.Any("error", err))
		}
	}

	ClearSessionCookies(w, h.cfg)
	http.Redirect(w, r, "/login", http.StatusFound)
}
