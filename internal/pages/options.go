package pages

import (
	"net/http"

	"github.com/asistenciav2/portal/internal/menu"
)

// IdentitySourceFunc returns the identity source bound to the given request.
type IdentitySourceFunc func(r *http.Request) menu.IdentitySource

type Options struct {
	Prefix string
	Layout menu.Layout
	Pages  map[string]Page
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Prefix: menu.BasePath,
		Layout: menu.DefaultLayout(),
		Pages:  DefaultPages(),
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
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

func WithPages(pages map[string]Page) OptionFunc {
	return func(opts *Options) {
		opts.Pages = pages
	}
}

// WithPageData sets the content loader of the named page.
func WithPageData(name string, fn DataFunc) OptionFunc {
	return func(opts *Options) {
		page, exists := opts.Pages[name]
		if !exists {
			return
		}

		page.Data = fn
		opts.Pages[name] = page
	}
}
