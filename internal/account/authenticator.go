package account

import (
	"log/slog"
	"net/http"

	"github.com/asistenciav2/portal/internal/authn"
	"github.com/asistenciav2/portal/pkg/log"
	"github.com/pkg/errors"
)

// Authenticator resolves the session user. When authoritative, anonymous
// requests are redirected to the login page.
func (h *Handler) Authenticator(authoritative bool) authn.Authenticator {
	return authn.AuthenticateFunc(func(w http.ResponseWriter, r *http.Request) (authn.User, error) {
		ctx := r.Context()

		sessUser, err := h.retrieveSessionUser(r)
		if err == nil {
			user, err := h.users.GetUser(ctx, sessUser.ID)
			if err == nil {
				return user, nil
			}

			slog.WarnContext(ctx, "could not retrieve session user", log.Error(errors.WithStack(err)), slog.Int64("userID", sessUser.ID))
		}

		if !authoritative {
			return nil, nil
		}

		http.Redirect(w, r, h.layout.LoginPath, http.StatusFound)

		return nil, errors.WithStack(authn.ErrCancel)
	})
}
