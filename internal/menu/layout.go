package menu

import "fmt"

// Entry is a static menu link.
type Entry struct {
	Icon   string
	Label  string
	Target string
}

func (e Entry) Text() string {
	return fmt.Sprintf("%s %s", e.Icon, e.Label)
}

// Layout holds the static configuration of the menu: entries per role,
// admin only pages and the navigation targets.
type Layout struct {
	Entries         map[Role][]Entry
	RestrictedPages []string

	LoginPath          string
	AdminDashboardPath string
	DashboardPath      string

	Logout Entry

	HeaderFallbacks map[Role]string
	DefaultInitial  string
}

func (l Layout) EntriesFor(role Role) []Entry {
	return l.Entries[role]
}

func (l Layout) IsRestricted(page string) bool {
	for _, p := range l.RestrictedPages {
		if p == page {
			return true
		}
	}

	return false
}

// DashboardFor returns the landing page of the given role.
func (l Layout) DashboardFor(role Role) string {
	if role == RoleAdmin {
		return l.AdminDashboardPath
	}

	return l.DashboardPath
}

const BasePath = "/asistenciaV2r"

func DefaultLayout() Layout {
	return Layout{
		Entries: map[Role][]Entry{
			RoleAdmin: {
				{Icon: "🏠", Label: "Dashboard Admin", Target: BasePath + "/dashboard_admin.html"},
				{Icon: "🔄", Label: "Sincronización", Target: BasePath + "/biometric_sync.html"},
				{Icon: "📋", Label: "Procesados", Target: BasePath + "/procesados.html"},
				{Icon: "🔐", Label: "Permisos", Target: BasePath + "/permisos.html"},
				{Icon: "📊", Label: "Consolidado", Target: BasePath + "/consolidado.html"},
				{Icon: "👥", Label: "Perfiles", Target: BasePath + "/perfiles.html"},
			},
			RoleUser: {
				{Icon: "🏠", Label: "Dashboard", Target: BasePath + "/dashboard.html"},
				{Icon: "📋", Label: "Procesados", Target: BasePath + "/procesados_user.html"},
				{Icon: "🔐", Label: "Mis Permisos", Target: BasePath + "/permiso_user.html"},
				{Icon: "📊", Label: "Consolidado", Target: BasePath + "/consolidado_user.html"},
				{Icon: "👤", Label: "Mi Perfil", Target: BasePath + "/perfil.html"},
			},
		},
		RestrictedPages: []string{
			"biometric_sync.html",
			"perfiles.html",
			"dashboard_admin.html",
		},
		LoginPath:          BasePath + "/login.html",
		AdminDashboardPath: BasePath + "/dashboard_admin.html",
		DashboardPath:      BasePath + "/dashboard.html",
		Logout: Entry{
			Icon:   "🚪",
			Label:  "Cerrar Sesión",
			Target: BasePath + "/logout",
		},
		HeaderFallbacks: map[Role]string{
			RoleAdmin: "Administrador",
			RoleUser:  "Usuario",
		},
		DefaultInitial: "U",
	}
}
