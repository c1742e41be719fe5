package config

import (
	"github.com/asistenciav2/portal/internal/menu"
	"github.com/goccy/go-yaml"
)

type Menu struct {
	Admin           []MenuEntry             `yaml:"admin"`
	User            []MenuEntry             `yaml:"user"`
	Logout          MenuEntry               `yaml:"logout"`
	RestrictedPages InterpolatedStringSlice `yaml:"restrictedPages"`
	Paths           MenuPaths               `yaml:"paths"`
	Labels          MenuLabels              `yaml:"labels"`
}

type MenuEntry struct {
	Icon   InterpolatedString `yaml:"icon"`
	Label  InterpolatedString `yaml:"label"`
	Target InterpolatedString `yaml:"target"`
}

type MenuPaths struct {
	Login          InterpolatedString `yaml:"login"`
	AdminDashboard InterpolatedString `yaml:"adminDashboard"`
	Dashboard      InterpolatedString `yaml:"dashboard"`
}

type MenuLabels struct {
	Admin          InterpolatedString `yaml:"admin"`
	User           InterpolatedString `yaml:"user"`
	DefaultInitial InterpolatedString `yaml:"defaultInitial"`
}

func NewDefaultMenuConfig() Menu {
	layout := menu.DefaultLayout()

	return Menu{
		Admin:           toMenuEntries(layout.Entries[menu.RoleAdmin]),
		User:            toMenuEntries(layout.Entries[menu.RoleUser]),
		Logout:          toMenuEntry(layout.Logout),
		RestrictedPages: InterpolatedStringSlice(layout.RestrictedPages),
		Paths: MenuPaths{
			Login:          InterpolatedString(layout.LoginPath),
			AdminDashboard: InterpolatedString(layout.AdminDashboardPath),
			Dashboard:      InterpolatedString(layout.DashboardPath),
		},
		Labels: MenuLabels{
			Admin:          InterpolatedString(layout.HeaderFallbacks[menu.RoleAdmin]),
			User:           InterpolatedString(layout.HeaderFallbacks[menu.RoleUser]),
			DefaultInitial: InterpolatedString(layout.DefaultInitial),
		},
	}
}

// Layout converts the menu section into a menu.Layout.
func (m Menu) Layout() menu.Layout {
	return menu.Layout{
		Entries: map[menu.Role][]menu.Entry{
			menu.RoleAdmin: fromMenuEntries(m.Admin),
			menu.RoleUser:  fromMenuEntries(m.User),
		},
		RestrictedPages:    []string(m.RestrictedPages),
		LoginPath:          string(m.Paths.Login),
		AdminDashboardPath: string(m.Paths.AdminDashboard),
		DashboardPath:      string(m.Paths.Dashboard),
		Logout:             fromMenuEntry(m.Logout),
		HeaderFallbacks: map[menu.Role]string{
			menu.RoleAdmin: string(m.Labels.Admin),
			menu.RoleUser:  string(m.Labels.User),
		},
		DefaultInitial: string(m.Labels.DefaultInitial),
	}
}

func toMenuEntries(entries []menu.Entry) []MenuEntry {
	converted := make([]MenuEntry, 0, len(entries))
	for _, e := range entries {
		converted = append(converted, toMenuEntry(e))
	}

	return converted
}

func toMenuEntry(e menu.Entry) MenuEntry {
	return MenuEntry{
		Icon:   InterpolatedString(e.Icon),
		Label:  InterpolatedString(e.Label),
		Target: InterpolatedString(e.Target),
	}
}

func fromMenuEntries(entries []MenuEntry) []menu.Entry {
	converted := make([]menu.Entry, 0, len(entries))
	for _, e := range entries {
		converted = append(converted, fromMenuEntry(e))
	}

	return converted
}

func fromMenuEntry(e MenuEntry) menu.Entry {
	return menu.Entry{
		Icon:   string(e.Icon),
		Label:  string(e.Label),
		Target: string(e.Target),
	}
}

func NewMenuConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":                 []*yaml.Comment{yaml.HeadComment(" Navigation menu configuration")},
		".admin":           []*yaml.Comment{yaml.HeadComment(" Entries of the administrator menu, in display order")},
		".user":            []*yaml.Comment{yaml.HeadComment(" Entries of the standard user menu, in display order")},
		".logout":          []*yaml.Comment{yaml.HeadComment(" Logout entry, always rendered last")},
		".restrictedPages": []*yaml.Comment{yaml.HeadComment(" Pages only reachable by administrators")},
		".labels":          []*yaml.Comment{yaml.HeadComment(" Menu header fallbacks when the user has no name")},
	}
}
