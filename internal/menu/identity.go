package menu

import "strings"

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Identity is the current user as reported by the identity endpoint.
// It is never modified once fetched.
type Identity struct {
	ID         int64
	GivenName  string
	Surname    string
	Privileged bool
}

func (i *Identity) Role() Role {
	if i != nil && i.Privileged {
		return RoleAdmin
	}

	return RoleUser
}

// DisplayName returns the first non-empty name candidate, or an empty
// string when the identity carries no name at all.
func (i *Identity) DisplayName() string {
	if i == nil {
		return ""
	}

	for _, candidate := range i.nameCandidates() {
		if candidate != "" {
			return candidate
		}
	}

	return ""
}

func (i *Identity) nameCandidates() []string {
	parts := make([]string, 0, 2)
	for _, p := range []string{i.GivenName, i.Surname} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return []string{
		strings.TrimSpace(strings.Join(parts, " ")),
		i.GivenName,
	}
}
