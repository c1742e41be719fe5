package admin

import (
	"net/http"
	"strings"

	"github.com/asistenciav2/portal/internal/menu"
	"github.com/asistenciav2/portal/internal/store"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// UserTemplateData is a user row of the profiles page and of the users
// endpoint.
type UserTemplateData struct {
	ID              int64     `json:"id"`
	DNI             string    `json:"dni"`
	Nombre          string    `json:"nombre"`
	Apellidos       string    `json:"apellidos"`
	Email           string    `json:"email"`
	Role            menu.Role `json:"rol"`
	Estado          int       `json:"estado"`
	HumanLastAccess string    `json:"-"`
}

func (u UserTemplateData) Active() bool {
	return u.Estado == 1
}

func NewUserTemplateData(user *store.User) UserTemplateData {
	data := UserTemplateData{
		ID:              user.ID,
		DNI:             user.DNI,
		Nombre:          user.Nombre,
		Apellidos:       user.Apellidos,
		Email:           user.Email,
		Role:            menu.RoleUser,
		HumanLastAccess: "-",
	}

	if user.IsAdmin() {
		data.Role = menu.RoleAdmin
	}

	if user.Active {
		data.Estado = 1
	}

	if !user.LastAccess.IsZero() {
		data.HumanLastAccess = humanize.Time(user.LastAccess)
	}

	return data
}

// UsersTemplateData is the content of the profiles page.
type UsersTemplateData struct {
	Users  []UserTemplateData
	Query  string
	Estado string
	Action string
}

// UsersPageData lists the users for the profiles page. Non administrators
// get no data.
func (h *Handler) UsersPageData(r *http.Request) (any, error) {
	if _, err := currentAdmin(r.Context()); err != nil {
		return nil, nil
	}

	filter, estado := parseFilter(r)

	users, err := h.store.ListUsers(r.Context(), filter)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	data := UsersTemplateData{
		Users:  make([]UserTemplateData, 0, len(users)),
		Query:  filter.Query,
		Estado: estado,
		Action: h.prefix + "/api/users",
	}

	for _, u := range users {
		data.Users = append(data.Users, NewUserTemplateData(u))
	}

	return data, nil
}

// parseFilter reads the "q" and "estado" parameters. Estado values other
// than 0 and 1 match every user.
func parseFilter(r *http.Request) (store.UserFilter, string) {
	query := r.URL.Query()

	filter := store.UserFilter{
		Query: strings.TrimSpace(query.Get("q")),
	}

	estado := query.Get("estado")
	switch estado {
	case "0", "1":
		active := estado == "1"
		filter.Active = &active
	default:
		estado = ""
	}

	return filter, estado
}
