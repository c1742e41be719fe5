package setup

import (
	"context"
	"time"

	"github.com/asistenciav2/portal/internal/account"
	"github.com/asistenciav2/portal/internal/config"
	"github.com/asistenciav2/portal/internal/ratelimit"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

var NewAccountHandlerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*account.Handler, error) {
	store, err := NewStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	sessionStore, err := NewSessionStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	loginLimit := conf.RateLimit.Login
	loginLimiter := ratelimit.New(rate.Limit(loginLimit.Rate), int(loginLimit.Burst))

	if loginLimit.Idle != nil && *loginLimit.Idle > 0 {
		idle := time.Duration(*loginLimit.Idle)
		loginLimiter.PruneEvery(ctx, idle, idle)
	}

	handler := account.NewHandler(
		sessionStore, store,
		account.WithSessionName(string(conf.HTTP.Session.Name)),
		account.WithLayout(conf.Menu.Layout()),
		account.WithRateLimiter(loginLimiter),
	)

	return handler, nil
})
