package setup

import (
	"log/slog"
	"net/http"

	"github.com/asistenciav2/portal/internal/authn"
	"github.com/asistenciav2/portal/internal/store"
	"github.com/asistenciav2/portal/pkg/log"
	"github.com/pkg/errors"
)

// onAuthenticated adds the user role to the request logging context.
func onAuthenticated(r *http.Request, user authn.User) (*http.Request, error) {
	storeUser, ok := user.(*store.User)
	if !ok {
		return nil, errors.Errorf("unexpected user type '%T'", user)
	}

	ctx := log.WithAttrs(r.Context(), slog.String("role", storeUser.Role))

	return r.WithContext(ctx), nil
}
