package menu

import "log/slog"

type Options struct {
	Layout Layout
	Logger *slog.Logger
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Layout: DefaultLayout(),
		Logger: slog.Default(),
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithLayout(layout Layout) OptionFunc {
	return func(opts *Options) {
		opts.Layout = layout
	}
}

func WithLogger(logger *slog.Logger) OptionFunc {
	return func(opts *Options) {
		opts.Logger = logger
	}
}
