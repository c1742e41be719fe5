package admin

import (
	"fmt"
	"net/http"

	"github.com/asistenciav2/portal/internal/store"
)

type Handler struct {
	prefix string
	store  *store.Store
	mux    *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(prefix string, store *store.Store) *Handler {
	handler := &Handler{
		prefix: prefix,
		store:  store,
		mux:    &http.ServeMux{},
	}

	handler.mux.HandleFunc(fmt.Sprintf("GET %s/api/users", prefix), handler.requireAdmin(handler.serveUsers))
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/api/users", prefix), handler.requireAdmin(handler.serveCreateUser))
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/api/users/update", prefix), handler.requireAdmin(handler.serveUpdateUser))
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/api/users/reset-password", prefix), handler.requireAdmin(handler.serveResetPassword))

	return handler
}

func (h *Handler) usersPage() string {
	return h.prefix + "/perfiles.html"
}

var _ http.Handler = &Handler{}
