package setup

import (
	"context"
	"sync"

	"github.com/asistenciav2/portal/internal/config"
	"github.com/pkg/errors"
)

// createFromConfigOnce memoizes the result of fn for each configuration.
func createFromConfigOnce[T any](fn func(ctx context.Context, conf *config.Config) (T, error)) func(ctx context.Context, conf *config.Config) (T, error) {
	var (
		mutex   sync.Mutex
		results = map[*config.Config]T{}
	)

	return func(ctx context.Context, conf *config.Config) (T, error) {
		mutex.Lock()
		defer mutex.Unlock()

		if result, exists := results[conf]; exists {
			return result, nil
		}

		result, err := fn(ctx, conf)
		if err != nil {
			return *new(T), errors.WithStack(err)
		}

		results[conf] = result

		return result, nil
	}
}
