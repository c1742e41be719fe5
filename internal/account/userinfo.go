package account

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/asistenciav2/portal/internal/store"
	"github.com/asistenciav2/portal/pkg/log"
	"github.com/pkg/errors"
)

type UserInfo struct {
	Success   bool   `json:"success"`
	ID        int64  `json:"id,omitempty"`
	Nombre    string `json:"nombre,omitempty"`
	Apellidos string `json:"apellidos,omitempty"`
	IsAdmin   bool   `json:"isAdmin"`
}

// handleUserInfo reports the session user. Anonymous requests get a
// successful response carrying success=false.
func (h *Handler) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessUser, err := h.retrieveSessionUser(r)
	if err != nil {
		if !errors.Is(err, errSessionNotFound) {
			slog.WarnContext(ctx, "could not retrieve session user", log.Error(errors.WithStack(err)))
		}

		h.writeUserInfo(w, r, UserInfo{Success: false})
		return
	}

	user, err := h.users.GetUser(ctx, sessUser.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeUserInfo(w, r, UserInfo{Success: false})
			return
		}

		slog.ErrorContext(ctx, "could not retrieve user", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	nombre := user.Nombre
	if nombre == "" {
		nombre = sessUser.Subject
	}

	h.writeUserInfo(w, r, UserInfo{
		Success:   true,
		ID:        user.ID,
		Nombre:    nombre,
		Apellidos: user.Apellidos,
		IsAdmin:   user.IsAdmin(),
	})
}

func (h *Handler) writeUserInfo(w http.ResponseWriter, r *http.Request, info UserInfo) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	if err := json.NewEncoder(w).Encode(info); err != nil {
		slog.ErrorContext(r.Context(), "could not encode user info", log.Error(errors.WithStack(err)))
	}
}
