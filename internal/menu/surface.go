package menu

import "context"

// Element identifiers and classes shared with the page templates.
const (
	ContainerID     = "dropdownMenu"
	HeaderID        = "dropdownHeader"
	AvatarID        = "userAvatar"
	ProfileAvatarID = "profileAvatar"

	ClassHeader   = "dropdown-header"
	ClassItem     = "dropdown-item"
	ClassLogout   = "dropdown-item logout"
	ClassDropdown = "dropdown-menu"
	ClassTrigger  = "user-avatar"
	ClassVisible  = "show"
)

type NodeKind int

const (
	NodeHeader NodeKind = iota
	NodeLink
)

// Node describes a node appended to an element of the view surface.
type Node struct {
	Kind  NodeKind
	ID    string
	Class string
	Text  string
	Href  string
}

type Element interface {
	Clear()
	Append(node Node)
	SetText(text string)
	HasClass(class string) bool
	ToggleClass(class string) bool
	RemoveClass(class string)
}

// Surface is the visual tree the controller renders into.
type Surface interface {
	Element(id string) (Element, bool)
	ElementsByClass(class string) []Element
}

type IdentitySource interface {
	FetchIdentity(ctx context.Context) (*Identity, error)
}

type IdentitySourceFunc func(ctx context.Context) (*Identity, error)

func (fn IdentitySourceFunc) FetchIdentity(ctx context.Context) (*Identity, error) {
	return fn(ctx)
}

type Navigator interface {
	Navigate(target string)
}

type NavigatorFunc func(target string)

func (fn NavigatorFunc) Navigate(target string) {
	fn(target)
}
