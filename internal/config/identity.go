package config

import (
	"github.com/goccy/go-yaml"
)

type Identity struct {
	Endpoint InterpolatedString    `yaml:"endpoint"`
	Timeout  *InterpolatedDuration `yaml:"timeout"`
}

func NewDefaultIdentityConfig() Identity {
	return Identity{
		Endpoint: "${ASISTENCIA_IDENTITY_ENDPOINT:-}",
		Timeout:  NewInterpolatedDuration(0),
	}
}

func NewIdentityConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":          []*yaml.Comment{yaml.HeadComment(" Identity endpoint configuration")},
		".endpoint": []*yaml.Comment{yaml.HeadComment(" URL of the user info endpoint, request cookies are forwarded to it. Empty derives it from http.address")},
		".timeout":  []*yaml.Comment{yaml.HeadComment(" Identity request timeout, 0 disables it")},
	}
}
