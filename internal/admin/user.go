package admin

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/asistenciav2/portal/internal/authn"
	"github.com/asistenciav2/portal/internal/store"
	"github.com/asistenciav2/portal/internal/ui"
	"github.com/asistenciav2/portal/pkg/log"
	"github.com/pkg/errors"
)

var ErrForbidden = errors.New("forbidden")

func currentAdmin(ctx context.Context) (*store.User, error) {
	user, err := authn.ContextUserAs[*store.User](ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if !user.IsAdmin() {
		return nil, errors.WithStack(ErrForbidden)
	}

	return user, nil
}

func (h *Handler) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := currentAdmin(r.Context()); err != nil {
			if errors.Is(err, ErrForbidden) {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}

			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		next(w, r)
	}
}

// serveUsers lists the users as JSON.
func (h *Handler) serveUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, _ := parseFilter(r)

	users, err := h.store.ListUsers(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "could not list users", log.Error(errors.WithStack(err)))
		ui.WriteJSON(w, r, http.StatusInternalServerError, map[string]any{
			"error": ui.StatusServerError.Message(),
			"users": []UserTemplateData{},
		})
		return
	}

	data := make([]UserTemplateData, 0, len(users))
	for _, u := range users {
		data = append(data, NewUserTemplateData(u))
	}

	ui.WriteJSON(w, r, http.StatusOK, data)
}

// serveCreateUser creates an active user with the submitted password.
func (h *Handler) serveCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user := userFromForm(r)
	user.Active = true

	password := r.PostFormValue("password")

	if user.Nombre == "" || (user.Email == "" && user.DNI == "") || password == "" {
		ui.WriteStatus(w, r, http.StatusBadRequest, ui.StatusFieldsRequired, h.usersPage())
		return
	}

	created, err := h.store.CreateUser(ctx, user, password)
	switch {
	case err == nil:
		slog.InfoContext(ctx, "user created", slog.Int64("id", created.ID), slog.String("role", created.Role))
		ui.WriteStatus(w, r, http.StatusOK, ui.StatusUserCreated, h.usersPage())
	case errors.Is(err, store.ErrAlreadyExists):
		ui.WriteStatus(w, r, http.StatusConflict, ui.StatusUserExists, h.usersPage())
	case errors.Is(err, store.ErrPasswordTooShort):
		ui.WriteStatus(w, r, http.StatusBadRequest, ui.StatusPasswordTooShort, h.usersPage())
	default:
		slog.ErrorContext(ctx, "could not create user", log.Error(errors.WithStack(err)))
		ui.WriteStatus(w, r, http.StatusInternalServerError, ui.StatusServerError, h.usersPage())
	}
}

// serveUpdateUser saves the name, email, role and state of a user.
func (h *Handler) serveUpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	admin, err := currentAdmin(ctx)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}

	userID, err := strconv.ParseInt(r.PostFormValue("id"), 10, 64)
	if err != nil {
		ui.WriteStatus(w, r, http.StatusBadRequest, ui.StatusFieldsRequired, h.usersPage())
		return
	}

	user := userFromForm(r)
	user.ID = userID
	user.Active = r.PostFormValue("estado") != "0"

	// Administrators cannot lock themselves out
	if user.ID == admin.ID && (!user.Active || !user.IsAdmin()) {
		ui.WriteStatus(w, r, http.StatusBadRequest, ui.StatusSelfLockout, h.usersPage())
		return
	}

	updated, err := h.store.UpdateUser(ctx, user)
	switch {
	case err == nil:
		slog.InfoContext(ctx, "user updated", slog.Int64("id", updated.ID), slog.String("role", updated.Role), slog.Bool("active", updated.Active))
		ui.WriteStatus(w, r, http.StatusOK, ui.StatusUserUpdated, h.usersPage())
	case errors.Is(err, store.ErrNotFound):
		ui.WriteStatus(w, r, http.StatusNotFound, ui.StatusUserNotFound, h.usersPage())
	case errors.Is(err, store.ErrAlreadyExists):
		ui.WriteStatus(w, r, http.StatusConflict, ui.StatusUserExists, h.usersPage())
	default:
		slog.ErrorContext(ctx, "could not update user", log.Error(errors.WithStack(err)), slog.Int64("id", userID))
		ui.WriteStatus(w, r, http.StatusInternalServerError, ui.StatusServerError, h.usersPage())
	}
}

// serveResetPassword replaces the password of a user without checking the
// current one.
func (h *Handler) serveResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := strconv.ParseInt(r.PostFormValue("id"), 10, 64)
	if err != nil || r.PostFormValue("password") == "" {
		ui.WriteStatus(w, r, http.StatusBadRequest, ui.StatusFieldsRequired, h.usersPage())
		return
	}

	err = h.store.SetPassword(ctx, userID, r.PostFormValue("password"))
	switch {
	case err == nil:
		slog.InfoContext(ctx, "password reset", slog.Int64("id", userID))
		ui.WriteStatus(w, r, http.StatusOK, ui.StatusPasswordReset, h.usersPage())
	case errors.Is(err, store.ErrNotFound):
		ui.WriteStatus(w, r, http.StatusNotFound, ui.StatusUserNotFound, h.usersPage())
	case errors.Is(err, store.ErrPasswordTooShort):
		ui.WriteStatus(w, r, http.StatusBadRequest, ui.StatusPasswordTooShort, h.usersPage())
	default:
		slog.ErrorContext(ctx, "could not reset password", log.Error(errors.WithStack(err)), slog.Int64("id", userID))
		ui.WriteStatus(w, r, http.StatusInternalServerError, ui.StatusServerError, h.usersPage())
	}
}

// userFromForm reads the user fields shared by creation and update. The
// role is "ADMIN" for administrators, anything else for standard users.
func userFromForm(r *http.Request) *store.User {
	user := &store.User{
		Nombre:    strings.TrimSpace(r.PostFormValue("nombre")),
		Apellidos: strings.TrimSpace(r.PostFormValue("apellidos")),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		DNI:       strings.TrimSpace(r.PostFormValue("dni")),
		Role:      store.RoleUser,
	}

	if strings.EqualFold(r.PostFormValue("rol"), "ADMIN") {
		user.Role = store.RoleAdministrator
	}

	return user
}
