package config

import (
	"time"

	"github.com/goccy/go-yaml"
)

type HTTP struct {
	Address InterpolatedString `yaml:"address"`
	Session Session            `yaml:"session"`
}

type Session struct {
	Name   InterpolatedString      `yaml:"name"`
	Keys   InterpolatedStringSlice `yaml:"keys"`
	Cookie Cookie                  `yaml:"cookie"`
}

type Cookie struct {
	Path     InterpolatedString    `yaml:"path"`
	HTTPOnly InterpolatedBool      `yaml:"httpOnly"`
	Secure   InterpolatedBool      `yaml:"secure"`
	MaxAge   *InterpolatedDuration `yaml:"maxAge"`
}

func NewDefaultHTTPConfig() HTTP {
	return HTTP{
		Address: "${ASISTENCIA_HTTP_ADDRESS:-:8080}",
		Session: Session{
			Name: "${ASISTENCIA_HTTP_SESSION_NAME:-asistencia_session}",
			Keys: InterpolatedStringSlice{},
			Cookie: Cookie{
				Path:     "${ASISTENCIA_HTTP_SESSION_COOKIE_PATH:-/}",
				HTTPOnly: true,
				Secure:   false,
				MaxAge:   NewInterpolatedDuration(30 * 24 * time.Hour),
			},
		},
	}
}

func NewHTTPConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":                       []*yaml.Comment{yaml.HeadComment(" Webserver configuration")},
		".address":               []*yaml.Comment{yaml.HeadComment(" Webserver's listening address")},
		".session.name":          []*yaml.Comment{yaml.HeadComment(" Session cookie name")},
		".session.keys":          []*yaml.Comment{yaml.HeadComment(" Session signing keys, a random key is generated when empty")},
		".session.cookie.maxAge": []*yaml.Comment{yaml.HeadComment(" Session lifetime")},
	}
}
