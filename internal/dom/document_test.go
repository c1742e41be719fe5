package dom

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/asistenciav2/portal/internal/menu"
	"github.com/pkg/errors"
)

const page = `<!DOCTYPE html>
<html>
<body>
	<div class="user-menu">
		<div class="user-avatar" id="userAvatar">?</div>
		<div class="dropdown-menu" id="dropdownMenu"><a href="/old">old</a></div>
	</div>
	<div class="profile" id="profileAvatar"></div>
</body>
</html>`

func TestDocumentRender(t *testing.T) {
	doc, err := Parse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	identity := &menu.Identity{GivenName: "ana", Surname: "Ruiz", Privileged: true}
	source := menu.IdentitySourceFunc(func(ctx context.Context) (*menu.Identity, error) {
		return identity, nil
	})

	var navigated []string
	navigator := menu.NavigatorFunc(func(target string) {
		navigated = append(navigated, target)
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctrl := menu.NewController(source, navigator, doc, "/asistenciaV2r/biometric_sync.html", menu.WithLogger(logger))

	if _, err := ctrl.Initialize(context.Background()); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 0, len(navigated); e != g {
		t.Errorf("len(navigated): expected '%v', got '%v'", e, g)
	}

	header, exists := doc.Element(menu.HeaderID)
	if !exists {
		t.Fatalf("header not found")
	}

	if e, g := "ana Ruiz", header.(*Element).Text(); e != g {
		t.Errorf("header: expected '%v', got '%v'", e, g)
	}

	avatar, _ := doc.Element(menu.AvatarID)
	if e, g := "A", avatar.(*Element).Text(); e != g {
		t.Errorf("avatar: expected '%v', got '%v'", e, g)
	}

	var buff bytes.Buffer
	if err := doc.Render(&buff); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	output := buff.String()

	if strings.Contains(output, "/old") {
		t.Errorf("stale menu entries should have been cleared")
	}

	if e, g := 7, strings.Count(output, `class="dropdown-item`); e != g {
		t.Errorf("dropdown items: expected '%v', got '%v'", e, g)
	}

	if !strings.Contains(output, `href="/asistenciaV2r/logout"`) {
		t.Errorf("logout link missing from '%s'", output)
	}
}

func TestDocumentClasses(t *testing.T) {
	doc, err := Parse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if !menu.Toggle(doc) {
		t.Fatalf("menu should be visible after toggle")
	}

	container, _ := doc.Element(menu.ContainerID)
	if !container.HasClass(menu.ClassDropdown) || !container.HasClass(menu.ClassVisible) {
		t.Errorf("container should keep its classes")
	}

	avatar, _ := doc.Element(menu.AvatarID)
	menu.DismissOutside(doc, avatar)

	if !container.HasClass(menu.ClassVisible) {
		t.Errorf("click on the avatar should keep the menu open")
	}

	profile, _ := doc.Element(menu.ProfileAvatarID)
	menu.DismissOutside(doc, profile)

	if container.HasClass(menu.ClassVisible) {
		t.Errorf("click outside should close the menu")
	}

	if _, exists := doc.Element("unknown"); exists {
		t.Errorf("unknown element should not exist")
	}
}
