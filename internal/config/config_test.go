package config

import (
	"os"
	"slices"
	"testing"
	"time"

	"github.com/asistenciav2/portal/internal/menu"
	"github.com/pkg/errors"
)

func TestDefaultConfigLayout(t *testing.T) {
	getEnv = func(key string) string { return "" }
	defer func() { getEnv = os.Getenv }()

	conf := NewDefaultConfig()

	if err := Interpolate(conf); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := ":8080", string(conf.HTTP.Address); e != g {
		t.Errorf("conf.HTTP.Address: expected '%v', got '%v'", e, g)
	}

	if e, g := "", string(conf.Identity.Endpoint); e != g {
		t.Errorf("conf.Identity.Endpoint: expected '%v', got '%v'", e, g)
	}

	if conf.RateLimit.Login.Idle == nil {
		t.Fatalf("conf.RateLimit.Login.Idle: expected a value")
	}

	if e, g := 10*time.Minute, time.Duration(*conf.RateLimit.Login.Idle); e != g {
		t.Errorf("conf.RateLimit.Login.Idle: expected '%v', got '%v'", e, g)
	}

	layout := conf.Menu.Layout()
	expected := menu.DefaultLayout()

	for _, role := range []menu.Role{menu.RoleAdmin, menu.RoleUser} {
		if e, g := expected.EntriesFor(role), layout.EntriesFor(role); !slices.Equal(e, g) {
			t.Errorf("layout.EntriesFor(%s): expected '%v', got '%v'", role, e, g)
		}
	}

	if e, g := expected.RestrictedPages, layout.RestrictedPages; !slices.Equal(e, g) {
		t.Errorf("layout.RestrictedPages: expected '%v', got '%v'", e, g)
	}

	if e, g := expected.Logout, layout.Logout; e != g {
		t.Errorf("layout.Logout: expected '%v', got '%v'", e, g)
	}

	if e, g := expected.LoginPath, layout.LoginPath; e != g {
		t.Errorf("layout.LoginPath: expected '%v', got '%v'", e, g)
	}
}

func TestLoadMenuOverride(t *testing.T) {
	getEnv = func(key string) string {
		if key == "BASE_PATH" {
			return "/portal"
		}
		return ""
	}
	defer func() { getEnv = os.Getenv }()

	conf := NewDefaultConfig()

	if err := LoadFile("testdata/menu.yml", conf); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	layout := conf.Menu.Layout()

	entries := layout.EntriesFor(menu.RoleUser)
	if e, g := 1, len(entries); e != g {
		t.Fatalf("len(entries): expected '%v', got '%v'", e, g)
	}

	if e, g := "/portal/dashboard.html", entries[0].Target; e != g {
		t.Errorf("entries[0].Target: expected '%v', got '%v'", e, g)
	}

	if !layout.IsRestricted("reportes.html") || layout.IsRestricted("perfiles.html") {
		t.Errorf("layout.RestrictedPages: unexpected value '%v'", layout.RestrictedPages)
	}
}
