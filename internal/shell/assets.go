package shell

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Assets returns the default stylesheet and other static files of the shell.
func Assets() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("shell: embedded static dir missing: " + err.Error())
	}
	return sub
}
