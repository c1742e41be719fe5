package account

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/asistenciav2/portal/internal/store"
	"github.com/asistenciav2/portal/internal/ui"
	"github.com/asistenciav2/portal/pkg/log"
	"github.com/pkg/errors"
)

// handleChangePassword lets the session user replace its own password.
func (h *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	profile := h.prefix + "/perfil.html"

	sessUser, err := h.retrieveSessionUser(r)
	if err != nil {
		ui.WriteStatus(w, r, http.StatusUnauthorized, ui.StatusUnauthorized, h.layout.LoginPath)
		return
	}

	ctx = log.WithAttrs(ctx, slog.Int64("userID", sessUser.ID))

	current := r.PostFormValue("currentPassword")
	next := r.PostFormValue("newPassword")

	if strings.TrimSpace(current) == "" || strings.TrimSpace(next) == "" {
		ui.WriteStatus(w, r, http.StatusOK, ui.StatusFieldsRequired, profile)
		return
	}

	err = h.users.ChangePassword(ctx, sessUser.ID, current, next)
	switch {
	case err == nil:
		slog.InfoContext(ctx, "password changed")
		ui.WriteStatus(w, r, http.StatusOK, ui.StatusPasswordUpdated, profile)
	case errors.Is(err, store.ErrPasswordTooShort):
		ui.WriteStatus(w, r, http.StatusOK, ui.StatusPasswordTooShort, profile)
	case errors.Is(err, store.ErrInvalidPassword):
		ui.WriteStatus(w, r, http.StatusOK, ui.StatusPasswordInvalid, profile)
	case errors.Is(err, store.ErrNotFound):
		ui.WriteStatus(w, r, http.StatusOK, ui.StatusUserNotFound, profile)
	default:
		slog.ErrorContext(ctx, "could not change password", log.Error(errors.WithStack(err)))
		ui.WriteStatus(w, r, http.StatusInternalServerError, ui.StatusServerError, profile)
	}
}
