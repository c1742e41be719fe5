package menu

import (
	"context"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"github.com/asistenciav2/portal/pkg/log"
	"github.com/pkg/errors"
)

type Access int

const (
	AccessAllowed Access = iota
	AccessDenied
)

func (a Access) String() string {
	if a == AccessDenied {
		return "denied"
	}

	return "allowed"
}

// Controller builds the navigation menu of a single page view.
type Controller struct {
	source    IdentitySource
	navigator Navigator
	surface   Surface
	location  string
	layout    Layout
	logger    *slog.Logger

	identity *Identity
}

func NewController(source IdentitySource, navigator Navigator, surface Surface, location string, funcs ...OptionFunc) *Controller {
	opts := NewOptions(funcs...)

	return &Controller{
		source:    source,
		navigator: navigator,
		surface:   surface,
		location:  location,
		layout:    opts.Layout,
		logger:    opts.Logger,
	}
}

// Initialize fetches the identity, checks the page access then renders the
// menu and the avatar. Any identity error sends the user to the login page,
// unless the current page already is the login page.
func (c *Controller) Initialize(ctx context.Context) (Access, error) {
	if _, err := c.FetchIdentity(ctx); err != nil {
		c.logger.ErrorContext(ctx, "could not initialize menu", log.Error(err))

		if !c.onLoginPage() {
			c.navigator.Navigate(c.layout.LoginPath)
		}

		return AccessDenied, errors.WithStack(err)
	}

	if access := c.EnforcePageAccess(ctx); access == AccessDenied {
		return access, nil
	}

	c.RenderMenu(ctx)
	c.UpdateAvatar(ctx)

	return AccessAllowed, nil
}

func (c *Controller) FetchIdentity(ctx context.Context) (*Identity, error) {
	identity, err := c.source.FetchIdentity(ctx)
	if err != nil {
		if !errors.Is(err, ErrIdentityUnavailable) && !errors.Is(err, ErrIdentityInvalid) {
			return nil, errors.Wrapf(ErrIdentityUnavailable, "%s", err)
		}

		return nil, errors.WithStack(err)
	}

	if identity == nil {
		return nil, errors.Wrap(ErrIdentityInvalid, "empty identity")
	}

	c.identity = identity

	return identity, nil
}

func (c *Controller) EnforcePageAccess(ctx context.Context) Access {
	page := c.pageID()

	if c.layout.IsRestricted(page) && !c.IsPrivileged() {
		c.logger.WarnContext(ctx, "access denied, page requires privileged role", slog.String("page", page))
		c.navigator.Navigate(c.layout.DashboardPath)
		return AccessDenied
	}

	return AccessAllowed
}

// RenderMenu replaces the content of the menu container. A missing
// container is logged and ignored.
func (c *Controller) RenderMenu(ctx context.Context) {
	container, exists := c.surface.Element(ContainerID)
	if !exists {
		c.logger.WarnContext(ctx, "could not render menu", log.Error(errors.WithStack(ErrContainerMissing)), slog.String("id", ContainerID))
		return
	}

	container.Clear()

	container.Append(Node{
		Kind:  NodeHeader,
		ID:    HeaderID,
		Class: ClassHeader,
		Text:  c.headerText(),
	})

	for _, entry := range c.layout.EntriesFor(c.Role()) {
		container.Append(Node{
			Kind:  NodeLink,
			Class: ClassItem,
			Text:  entry.Text(),
			Href:  entry.Target,
		})
	}

	container.Append(Node{
		Kind:  NodeLink,
		Class: ClassLogout,
		Text:  c.layout.Logout.Text(),
		Href:  c.layout.Logout.Target,
	})
}

// UpdateAvatar writes the user initial into the avatar surfaces present on
// the page.
func (c *Controller) UpdateAvatar(ctx context.Context) {
	if c.identity == nil {
		return
	}

	initial := c.Initial()

	for _, id := range []string{AvatarID, ProfileAvatarID} {
		element, exists := c.surface.Element(id)
		if !exists {
			continue
		}

		element.SetText(initial)
	}

	c.logger.DebugContext(ctx, "avatar updated", slog.String("initial", initial))
}

func (c *Controller) Initial() string {
	name := c.identity.DisplayName()
	if name == "" {
		return c.layout.DefaultInitial
	}

	for _, r := range name {
		return strings.ToUpper(string(r))
	}

	return c.layout.DefaultInitial
}

func (c *Controller) Role() Role {
	return c.identity.Role()
}

func (c *Controller) IsPrivileged() bool {
	return c.identity != nil && c.identity.Privileged
}

func (c *Controller) Identity() *Identity {
	return c.identity
}

func (c *Controller) headerText() string {
	if name := c.identity.DisplayName(); name != "" {
		return name
	}

	return c.layout.HeaderFallbacks[c.Role()]
}

func (c *Controller) locationPath() string {
	u, err := url.Parse(c.location)
	if err != nil {
		return c.location
	}

	return u.Path
}

// pageID returns the last segment of the location path.
func (c *Controller) pageID() string {
	p := c.locationPath()
	if p == "" || strings.HasSuffix(p, "/") {
		return ""
	}

	return path.Base(p)
}

func (c *Controller) onLoginPage() bool {
	return c.locationPath() == c.layout.LoginPath
}

// Toggle flips the visibility of the menu container.
func Toggle(surface Surface) bool {
	container, exists := surface.Element(ContainerID)
	if !exists {
		return false
	}

	return container.ToggleClass(ClassVisible)
}

// DismissOutside closes every open dropdown unless the click target is the
// avatar trigger.
func DismissOutside(surface Surface, target Element) {
	if target != nil && target.HasClass(ClassTrigger) {
		return
	}

	for _, dropdown := range surface.ElementsByClass(ClassDropdown) {
		if dropdown.HasClass(ClassVisible) {
			dropdown.RemoveClass(ClassVisible)
		}
	}
}
