package setup

import (
	"context"
	"log/slog"
	"time"

	"github.com/asistenciav2/portal/internal/config"
	"github.com/asistenciav2/portal/internal/identity"
	"github.com/pkg/errors"
)

var NewIdentityClientFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*identity.Client, error) {
	endpoint := string(conf.Identity.Endpoint)
	if endpoint == "" {
		derived, err := identity.LoopbackEndpoint(string(conf.HTTP.Address))
		if err != nil {
			return nil, errors.Wrap(err, "could not derive identity endpoint")
		}

		endpoint = derived

		slog.DebugContext(ctx, "identity endpoint derived from listen address", slog.String("endpoint", endpoint))
	}

	funcs := []identity.OptionFunc{
		identity.WithEndpoint(endpoint),
	}

	if conf.Identity.Timeout != nil {
		funcs = append(funcs, identity.WithTimeout(time.Duration(*conf.Identity.Timeout)))
	}

	return identity.NewClient(funcs...), nil
})
