package pages

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/asistenciav2/portal/internal/store"
	"github.com/asistenciav2/portal/internal/ui"
	"github.com/pkg/errors"
)

//go:embed templates/**
var templateFs embed.FS

var templates *template.Template

func init() {
	tmpl, err := ui.Templates(nil, templateFs)
	if err != nil {
		panic(errors.WithStack(err))
	}

	templates = tmpl
}

// DataFunc loads the page specific content for a request.
type DataFunc func(r *http.Request) (any, error)

// Page describes a page served by the handler.
type Page struct {
	Title       string
	Heading     string
	Description string
	Template    string
	Data        DataFunc
}

type PageTemplateData struct {
	ui.HeadTemplateData
	Page         Page
	User         *store.User
	ErrorMessage string
	Status       ui.Status
	Data         any
}

const (
	templatePage    = "page"
	templateLogin   = "login"
	templateProfile = "profile"
	templateUsers   = "users"
)

var loginErrors = map[string]string{
	"invalid":  "Usuario o contraseña incorrectos",
	"notfound": "Usuario no encontrado o inactivo",
	"database": "No se pudo verificar el usuario, inténtelo más tarde",
}

func DefaultPages() map[string]Page {
	return map[string]Page{
		"login.html":            {Title: "Iniciar sesión", Template: templateLogin},
		"dashboard_admin.html":  {Title: "Dashboard Admin", Heading: "Panel de administración", Description: "Resumen de asistencia de todo el personal.", Template: templatePage},
		"biometric_sync.html":   {Title: "Sincronización", Heading: "Sincronización biométrica", Description: "Importación de marcaciones desde los equipos biométricos.", Template: templatePage},
		"procesados.html":       {Title: "Procesados", Heading: "Datos procesados", Description: "Marcaciones procesadas por usuario y fecha.", Template: templatePage},
		"permisos.html":         {Title: "Permisos", Heading: "Permisos", Description: "Gestión de permisos del personal.", Template: templatePage},
		"consolidado.html":      {Title: "Consolidado", Heading: "Consolidado", Description: "Consolidado mensual de asistencia.", Template: templatePage},
		"perfiles.html":         {Title: "Perfiles", Heading: "Perfiles", Description: "Gestión de cuentas de usuario.", Template: templateUsers},
		"dashboard.html":        {Title: "Dashboard", Heading: "Mi asistencia", Description: "Resumen de su asistencia.", Template: templatePage},
		"procesados_user.html":  {Title: "Procesados", Heading: "Mis marcaciones", Description: "Sus marcaciones procesadas.", Template: templatePage},
		"permiso_user.html":     {Title: "Mis Permisos", Heading: "Mis permisos", Description: "Sus solicitudes de permiso.", Template: templatePage},
		"consolidado_user.html": {Title: "Consolidado", Heading: "Mi consolidado", Description: "Su consolidado mensual.", Template: templatePage},
		"perfil.html":           {Title: "Mi Perfil", Heading: "Mi perfil", Template: templateProfile},
	}
}
