package identity

import (
	"net/http"
	"time"
)

type Options struct {
	Endpoint   string
	HTTPClient *http.Client
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		HTTPClient: &http.Client{},
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithEndpoint(endpoint string) OptionFunc {
	return func(opts *Options) {
		opts.Endpoint = endpoint
	}
}

func WithHTTPClient(client *http.Client) OptionFunc {
	return func(opts *Options) {
		opts.HTTPClient = client
	}
}

// WithTimeout bounds the identity request. Zero disables the timeout.
func WithTimeout(timeout time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.HTTPClient = &http.Client{
			Transport: opts.HTTPClient.Transport,
			Timeout:   timeout,
		}
	}
}
