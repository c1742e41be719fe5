package config

import (
	"log/slog"

	"github.com/goccy/go-yaml"
)

const (
	LoggerFormatText = "text"
	LoggerFormatJSON = "json"
)

type Logger struct {
	Level  InterpolatedInt    `yaml:"level"`
	Format InterpolatedString `yaml:"format"`
}

func NewDefaultLoggerConfig() Logger {
	return Logger{
		Level:  InterpolatedInt(slog.LevelInfo),
		Format: "${ASISTENCIA_LOGGER_FORMAT:-text}",
	}
}

func NewLoggerConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":        []*yaml.Comment{yaml.HeadComment(" Logger configuration")},
		".level":  []*yaml.Comment{yaml.HeadComment(" Logging level (debug: -4, info: 0, warn: 4, error: 8)")},
		".format": []*yaml.Comment{yaml.HeadComment(" Logging format (text or json)")},
	}
}
