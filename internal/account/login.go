package account

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/asistenciav2/portal/internal/menu"
	"github.com/asistenciav2/portal/internal/store"
	"github.com/asistenciav2/portal/pkg/log"
	"github.com/pkg/errors"
)

const (
	loginErrorInvalid  = "invalid"
	loginErrorNotFound = "notfound"
	loginErrorDatabase = "database"
)

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(ctx, "could not parse login form", log.Error(errors.WithStack(err)))
		h.redirectLoginError(w, r, loginErrorInvalid)
		return
	}

	identifier := r.PostFormValue("identifier")
	password := r.PostFormValue("password")

	user, err := h.users.Authenticate(ctx, identifier, password)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			h.redirectLoginError(w, r, loginErrorNotFound)
		case errors.Is(err, store.ErrInvalidPassword):
			h.redirectLoginError(w, r, loginErrorInvalid)
		default:
			slog.ErrorContext(ctx, "could not authenticate user", log.Error(errors.WithStack(err)))
			h.redirectLoginError(w, r, loginErrorDatabase)
		}

		return
	}

	sessionID, err := h.storeSessionUser(w, r, user)
	if err != nil {
		slog.ErrorContext(ctx, "could not store session user", log.Error(errors.WithStack(err)))
		h.redirectLoginError(w, r, loginErrorDatabase)
		return
	}

	ctx = log.WithAttrs(ctx, slog.String("user", user.UserSubject()), slog.String("sid", sessionID))

	if err := h.users.TouchLastAccess(ctx, user.ID); err != nil {
		slog.ErrorContext(ctx, "could not update last access", log.Error(errors.WithStack(err)))
	}

	slog.InfoContext(ctx, "user logged in", slog.String("role", user.Role))

	role := menu.RoleUser
	if user.IsAdmin() {
		role = menu.RoleAdmin
	}

	http.Redirect(w, r, h.layout.DashboardFor(role), http.StatusFound)
}

func (h *Handler) redirectLoginError(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, fmt.Sprintf("%s?error=%s", h.layout.LoginPath, code), http.StatusFound)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.clearSession(w, r); err != nil {
		slog.ErrorContext(r.Context(), "could not clear session", log.Error(errors.WithStack(err)))
	}

	http.Redirect(w, r, h.layout.LoginPath, http.StatusFound)
}
