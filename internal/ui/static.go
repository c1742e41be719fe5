package ui

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/pkg/errors"
)

//go:embed static/**
var staticFs embed.FS

// StaticHandler serves the embedded assets under the given prefix.
func StaticHandler(prefix string) http.Handler {
	root, err := fs.Sub(staticFs, "static")
	if err != nil {
		panic(errors.WithStack(err))
	}

	return http.StripPrefix(prefix, http.FileServerFS(root))
}
