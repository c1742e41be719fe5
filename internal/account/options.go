package account

import (
	"github.com/asistenciav2/portal/internal/menu"
	"github.com/asistenciav2/portal/internal/ratelimit"
)

type Options struct {
	SessionName string
	Prefix      string
	Layout      menu.Layout
	RateLimiter *ratelimit.RateLimiter
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		SessionName: "asistencia_session",
		Prefix:      menu.BasePath,
		Layout:      menu.DefaultLayout(),
		RateLimiter: ratelimit.New(1, 10),
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithSessionName(sessionName string) OptionFunc {
	return func(opts *Options) {
		opts.SessionName = sessionName
	}
}

func WithPrefix(prefix string) OptionFunc {
	return func(opts *Options) {
		opts.Prefix = prefix
	}
}

func WithLayout(layout menu.Layout) OptionFunc {
	return func(opts *Options) {
		opts.Layout = layout
	}
}

func WithRateLimiter(limiter *ratelimit.RateLimiter) OptionFunc {
	return func(opts *Options) {
		opts.RateLimiter = limiter
	}
}
