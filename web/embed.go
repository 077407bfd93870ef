// Package web embeds the dashboard assets so the binary ships standalone,
// with no template or static directories on disk.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var templates embed.FS

//go:embed css/*.css js/*.js
var static embed.FS

// Templates returns the HTML templates rooted at their own directory, so
// they parse under their bare file names.
func Templates() fs.FS {
	sub, _ := fs.Sub(templates, "templates")
	return sub
}

// Static returns the css and js trees served under /static/.
func Static() fs.FS {
	return static
}
