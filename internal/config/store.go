package config

import "github.com/goccy/go-yaml"

type Store struct {
	Path  InterpolatedString `yaml:"path"`
	Users []User             `yaml:"users"`
}

// User is an account created or updated at startup.
type User struct {
	Nombre    InterpolatedString `yaml:"nombre"`
	Apellidos InterpolatedString `yaml:"apellidos"`
	Email     InterpolatedString `yaml:"email"`
	DNI       InterpolatedString `yaml:"dni"`
	Password  InterpolatedString `yaml:"password"`
	Role      InterpolatedString `yaml:"role"`
}

func NewDefaultStoreConfig() Store {
	return Store{
		Path: "${ASISTENCIA_STORE_PATH:-data.db}",
		Users: []User{
			{
				Nombre:   "${ASISTENCIA_ADMIN_NOMBRE:-Administrador}",
				Email:    "${ASISTENCIA_ADMIN_EMAIL:-admin@localhost}",
				Password: "${ASISTENCIA_ADMIN_PASSWORD:-}",
				Role:     "administrador",
			},
		},
	}
}

func NewStoreConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":               []*yaml.Comment{yaml.HeadComment(" Store configuration")},
		".path":          []*yaml.Comment{yaml.HeadComment(" SQLite database path")},
		".users":         []*yaml.Comment{yaml.HeadComment(" Accounts provisioned at startup, matched by email", " Accounts without password keep their current one")},
		".users[0].role": []*yaml.Comment{yaml.HeadComment(" Account role (administrador or usuario)")},
	}
}
