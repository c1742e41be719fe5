package setup

import (
	"context"
	"log/slog"

	"github.com/asistenciav2/portal/internal/config"
	"github.com/asistenciav2/portal/internal/store"
	"github.com/pkg/errors"
)

var NewStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*store.Store, error) {
	store := store.NewStore(string(conf.Store.Path))

	if err := store.HealthCheck(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := provisionUsers(ctx, store, conf.Store.Users); err != nil {
		return nil, errors.WithStack(err)
	}

	return store, nil
})

func provisionUsers(ctx context.Context, st *store.Store, users []config.User) error {
	for _, u := range users {
		if u.Email == "" {
			continue
		}

		role := string(u.Role)
		if role != store.RoleAdministrator {
			role = store.RoleUser
		}

		saved, err := st.SaveUser(ctx, &store.User{
			Nombre:    string(u.Nombre),
			Apellidos: string(u.Apellidos),
			Email:     string(u.Email),
			DNI:       string(u.DNI),
			Role:      role,
			Active:    true,
		}, string(u.Password))
		if err != nil {
			return errors.Wrapf(err, "could not provision user '%s'", u.Email)
		}

		slog.DebugContext(ctx, "user provisioned", slog.Int64("id", saved.ID), slog.String("email", saved.Email), slog.String("role", saved.Role))
	}

	count, err := st.CountUsers(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	slog.InfoContext(ctx, "user store ready", slog.Int64("users", count))

	return nil
}
