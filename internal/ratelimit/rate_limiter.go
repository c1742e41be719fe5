package ratelimit

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/asistenciav2/portal/internal/syncx"
	"github.com/asistenciav2/portal/pkg/log"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

type RateLimiter struct {
	rate  rate.Limit
	burst int
	keys  syncx.Map[string, *visitor]
	now   func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

type GetKeyFunc func(r *http.Request) (string, error)

// Allow reports whether an event may happen now for the given key.
func (l *RateLimiter) Allow(key string) bool {
	v, exists := l.keys.Load(key)
	if !exists {
		v, _ = l.keys.LoadOrStore(key, &visitor{limiter: rate.NewLimiter(l.rate, l.burst)})
	}

	now := l.now()
	v.lastSeen.Store(now.UnixNano())

	return v.limiter.AllowN(now, 1)
}

// Prune forgets the keys not seen for longer than idle and returns how many
// were removed.
func (l *RateLimiter) Prune(idle time.Duration) int {
	threshold := l.now().Add(-idle).UnixNano()
	pruned := 0

	l.keys.Range(func(key string, v *visitor) bool {
		if v.lastSeen.Load() < threshold {
			l.keys.Delete(key)
			pruned++
		}

		return true
	})

	return pruned
}

// PruneEvery runs Prune on each interval until ctx is done.
func (l *RateLimiter) PruneEvery(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if pruned := l.Prune(idle); pruned > 0 {
					slog.DebugContext(ctx, "idle rate limiter keys pruned", slog.Int("pruned", pruned))
				}
			}
		}
	}()
}

func (l *RateLimiter) Middleware(getKey GetKeyFunc) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			key, err := getKey(r)
			if err != nil {
				slog.ErrorContext(ctx, "could not retrieve rate limiter key", log.Error(errors.WithStack(err)))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			if !l.Allow(key) {
				slog.WarnContext(ctx, "rate limit exceeded", slog.String("key", key))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP keys requests by the remote host.
func ClientIP(r *http.Request) (string, error) {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return host, nil
}

func New(rate rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		rate:  rate,
		burst: burst,
		now:   time.Now,
	}
}
