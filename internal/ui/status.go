package ui

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/asistenciav2/portal/pkg/log"
	"github.com/pkg/errors"
)

// Status is the outcome of a form submission, carried back to the page in
// the "status" query parameter.
type Status string

const (
	StatusPasswordUpdated  Status = "password-updated"
	StatusPasswordReset    Status = "password-reset"
	StatusUserCreated      Status = "user-created"
	StatusUserUpdated      Status = "user-updated"
	StatusFieldsRequired   Status = "fields-required"
	StatusPasswordTooShort Status = "password-short"
	StatusPasswordInvalid  Status = "password-invalid"
	StatusUserExists       Status = "user-exists"
	StatusUserNotFound     Status = "user-notfound"
	StatusSelfLockout      Status = "self-lockout"
	StatusUnauthorized     Status = "unauthorized"
	StatusServerError      Status = "server-error"
)

var statusMessages = map[Status]string{
	StatusPasswordUpdated:  "Contraseña actualizada correctamente",
	StatusPasswordReset:    "Contraseña actualizada",
	StatusUserCreated:      "Usuario creado",
	StatusUserUpdated:      "Usuario actualizado",
	StatusFieldsRequired:   "Todos los campos son requeridos",
	StatusPasswordTooShort: "La contraseña debe tener al menos 6 caracteres",
	StatusPasswordInvalid:  "La contraseña actual es incorrecta",
	StatusUserExists:       "Ya existe un usuario con ese correo o DNI",
	StatusUserNotFound:     "Usuario no encontrado",
	StatusSelfLockout:      "No puede desactivar ni quitar el rol de administrador a su propia cuenta",
	StatusUnauthorized:     "No autorizado",
	StatusServerError:      "Error de base de datos, inténtelo más tarde",
}

func (s Status) Message() string {
	return statusMessages[s]
}

func (s Status) Success() bool {
	switch s {
	case StatusPasswordUpdated, StatusPasswordReset, StatusUserCreated, StatusUserUpdated:
		return true
	default:
		return false
	}
}

type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WantsJSON reports whether the client asked for a JSON response.
func WantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// WriteStatus answers a form submission: JSON clients get the status with
// the given HTTP code, browsers are redirected to target with the status in
// the query string.
func WriteStatus(w http.ResponseWriter, r *http.Request, code int, status Status, target string) {
	if WantsJSON(r) {
		WriteJSON(w, r, code, StatusResponse{
			Success: status.Success(),
			Message: status.Message(),
		})
		return
	}

	u, err := url.Parse(target)
	if err != nil {
		slog.ErrorContext(r.Context(), "could not parse redirect target", log.Error(errors.WithStack(err)), slog.String("target", target))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := u.Query()
	query.Set("status", string(status))
	u.RawQuery = query.Encode()

	http.Redirect(w, r, u.String(), http.StatusSeeOther)
}

func WriteJSON(w http.ResponseWriter, r *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.ErrorContext(r.Context(), "could not encode response", log.Error(errors.WithStack(err)))
	}
}
