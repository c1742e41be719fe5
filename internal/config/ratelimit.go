package config

import (
	"time"

	"github.com/goccy/go-yaml"
)

type RateLimit struct {
	Login Limit `yaml:"login"`
}

type Limit struct {
	Rate  InterpolatedFloat     `yaml:"rate"`
	Burst InterpolatedInt       `yaml:"burst"`
	Idle  *InterpolatedDuration `yaml:"idle"`
}

func NewDefaultRateLimitConfig() RateLimit {
	return RateLimit{
		Login: Limit{
			Rate:  1,
			Burst: 10,
			Idle:  NewInterpolatedDuration(10 * time.Minute),
		},
	}
}

func NewRateLimitConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":             []*yaml.Comment{yaml.HeadComment(" Rate limiting configuration")},
		".login.rate":  []*yaml.Comment{yaml.HeadComment(" Login attempts per second and client")},
		".login.burst": []*yaml.Comment{yaml.HeadComment(" Login attempts burst per client")},
		".login.idle":  []*yaml.Comment{yaml.HeadComment(" Clients idle for longer are forgotten, 0 keeps them forever")},
	}
}
