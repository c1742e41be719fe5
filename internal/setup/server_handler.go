package setup

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/asistenciav2/portal/internal/admin"
	"github.com/asistenciav2/portal/internal/authn"
	"github.com/asistenciav2/portal/internal/config"
	"github.com/asistenciav2/portal/internal/menu"
	"github.com/asistenciav2/portal/internal/pages"
	"github.com/asistenciav2/portal/internal/ui"
	"github.com/pkg/errors"

	sloghttp "github.com/samber/slog-http"
)

func NewHandlerFromConfig(ctx context.Context, conf *config.Config) (http.Handler, error) {
	mux := &http.ServeMux{}

	slogMiddleware := sloghttp.New(slog.Default())

	accountHandler, err := NewAccountHandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	mux.Handle(menu.BasePath+"/login", slogMiddleware(accountHandler))
	mux.Handle(menu.BasePath+"/logout", slogMiddleware(accountHandler))
	mux.Handle(menu.BasePath+"/api/", slogMiddleware(accountHandler))

	staticHandler := ui.StaticHandler(menu.BasePath)

	mux.Handle(menu.BasePath+"/js/", staticHandler)
	mux.Handle(menu.BasePath+"/css/", staticHandler)

	client, err := NewIdentityClientFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	store, err := NewStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	adminHandler := admin.NewHandler(menu.BasePath, store)

	pagesHandler := pages.NewHandler(
		func(r *http.Request) menu.IdentitySource {
			return client.ForRequest(r)
		},
		pages.WithLayout(conf.Menu.Layout()),
		pages.WithPageData("perfiles.html", adminHandler.UsersPageData),
	)

	uiAuth := authn.Chain(
		authn.WithAuthenticators(
			accountHandler.Authenticator(true),
		),
		authn.WithOnAuthenticated(onAuthenticated),
		authn.WithPublicPaths(
			[]string{"/login.html", "/login"},
			[]string{"/css/", "/js/", "/api/userInfo"},
		),
	)

	mux.Handle(menu.BasePath+"/api/users", uiAuth(slogMiddleware(adminHandler)))
	mux.Handle(menu.BasePath+"/api/users/", uiAuth(slogMiddleware(adminHandler)))
	mux.Handle("/", uiAuth(slogMiddleware(pagesHandler)))

	return mux, nil
}
