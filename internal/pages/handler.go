package pages

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/asistenciav2/portal/internal/authn"
	"github.com/asistenciav2/portal/internal/dom"
	"github.com/asistenciav2/portal/internal/menu"
	"github.com/asistenciav2/portal/internal/store"
	"github.com/asistenciav2/portal/internal/ui"
	"github.com/asistenciav2/portal/pkg/log"
	"github.com/pkg/errors"
)

type Handler struct {
	mux      *http.ServeMux
	prefix   string
	layout   menu.Layout
	pages    map[string]Page
	identity IdentitySourceFunc
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(identity IdentitySourceFunc, funcs ...OptionFunc) *Handler {
	opts := NewOptions(funcs...)
	h := &Handler{
		mux:      http.NewServeMux(),
		prefix:   opts.Prefix,
		layout:   opts.Layout,
		pages:    opts.Pages,
		identity: identity,
	}

	h.mux.HandleFunc(fmt.Sprintf("GET %s/{page}", h.prefix), h.servePage)
	h.mux.HandleFunc(fmt.Sprintf("GET %s/{$}", h.prefix), h.serveIndex)
	h.mux.HandleFunc("GET /{$}", h.serveIndex)

	return h
}

func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.layout.DashboardPath, http.StatusFound)
}

func (h *Handler) servePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := r.PathValue("page")

	page, exists := h.pages[name]
	if !exists {
		http.NotFound(w, r)
		return
	}

	ctx = log.WithAttrs(ctx, slog.String("page", name))

	doc, err := h.renderTemplate(r, page)
	if err != nil {
		slog.ErrorContext(ctx, "could not render page template", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var redirect string
	navigator := menu.NavigatorFunc(func(target string) {
		if redirect == "" {
			redirect = target
		}
	})

	ctrl := menu.NewController(h.identity(r), navigator, doc, r.URL.RequestURI(), menu.WithLayout(h.layout))

	access, err := ctrl.Initialize(ctx)
	if redirect != "" {
		slog.DebugContext(ctx, "page redirected", slog.String("target", redirect), slog.String("access", access.String()))
		http.Redirect(w, r, redirect, http.StatusFound)
		return
	}

	if err != nil {
		slog.DebugContext(ctx, "page rendered without menu", log.Error(err))
	}

	applyClick(doc, r.URL.Query().Get("click"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := doc.Render(w); err != nil {
		slog.ErrorContext(ctx, "could not write page", log.Error(errors.WithStack(err)))
	}
}

func (h *Handler) renderTemplate(r *http.Request, page Page) (*dom.Document, error) {
	data := PageTemplateData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: page.Title,
			BasePath:  h.prefix,
		},
		Page:         page,
		ErrorMessage: loginErrors[r.URL.Query().Get("error")],
		Status:       ui.Status(r.URL.Query().Get("status")),
	}

	if user, err := authn.ContextUserAs[*store.User](r.Context()); err == nil {
		data.User = user
	}

	if page.Data != nil {
		pageData, err := page.Data(r)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		data.Data = pageData
	}

	var buff bytes.Buffer
	if err := templates.ExecuteTemplate(&buff, page.Template, data); err != nil {
		return nil, errors.WithStack(err)
	}

	doc, err := dom.Parse(&buff)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return doc, nil
}

// applyClick replays a click on the element with the given id, for clients
// without scripting.
func applyClick(doc *dom.Document, id string) {
	if id == "" {
		return
	}

	target, exists := doc.Element(id)

	if exists && target.HasClass(menu.ClassTrigger) {
		menu.Toggle(doc)
	}

	menu.DismissOutside(doc, target)
}

var _ http.Handler = &Handler{}
