package account

import (
	"context"
	"fmt"
	"net/http"

	"github.com/asistenciav2/portal/internal/menu"
	"github.com/asistenciav2/portal/internal/ratelimit"
	"github.com/asistenciav2/portal/internal/store"
	"github.com/gorilla/sessions"
)

type UserStore interface {
	Authenticate(ctx context.Context, identifier, password string) (*store.User, error)
	GetUser(ctx context.Context, id int64) (*store.User, error)
	TouchLastAccess(ctx context.Context, id int64) error
	ChangePassword(ctx context.Context, id int64, current, next string) error
}

type Handler struct {
	mux          *http.ServeMux
	sessionStore sessions.Store
	sessionName  string
	users        UserStore
	prefix       string
	layout       menu.Layout
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(sessionStore sessions.Store, users UserStore, funcs ...OptionFunc) *Handler {
	opts := NewOptions(funcs...)
	h := &Handler{
		mux:          http.NewServeMux(),
		sessionStore: sessionStore,
		sessionName:  opts.SessionName,
		users:        users,
		prefix:       opts.Prefix,
		layout:       opts.Layout,
	}

	loginLimiter := opts.RateLimiter.Middleware(ratelimit.ClientIP)

	h.mux.Handle(fmt.Sprintf("POST %s/login", h.prefix), loginLimiter(http.HandlerFunc(h.handleLogin)))
	h.mux.HandleFunc(fmt.Sprintf("GET %s/logout", h.prefix), h.handleLogout)
	h.mux.HandleFunc(fmt.Sprintf("POST %s/logout", h.prefix), h.handleLogout)
	h.mux.HandleFunc(fmt.Sprintf("GET %s/api/userInfo", h.prefix), h.handleUserInfo)
	h.mux.HandleFunc(fmt.Sprintf("POST %s/api/userInfo", h.prefix), h.handleUserInfo)
	h.mux.HandleFunc(fmt.Sprintf("POST %s/api/changePassword", h.prefix), h.handleChangePassword)

	return h
}

var _ http.Handler = &Handler{}
