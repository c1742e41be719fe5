package authn

import (
	"context"

	"github.com/pkg/errors"
)

type contextKey string

const contextKeyUser contextKey = "authnUser"

func ContextUser(ctx context.Context) (User, error) {
	user, ok := ctx.Value(contextKeyUser).(User)
	if !ok {
		return nil, errors.Wrap(ErrUnauthenticated, "no user in context")
	}

	return user, nil
}

// ContextUserAs returns the context user when it has the expected type.
func ContextUserAs[T User](ctx context.Context) (T, error) {
	var zero T

	user, err := ContextUser(ctx)
	if err != nil {
		return zero, errors.WithStack(err)
	}

	typed, ok := user.(T)
	if !ok {
		return zero, errors.Errorf("unexpected user type '%T'", user)
	}

	return typed, nil
}

func WithContextUser(ctx context.Context, user User) context.Context {
	return setContextUser(ctx, user)
}

func setContextUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, contextKeyUser, user)
}
