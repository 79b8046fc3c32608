// Package web serves the embedded single-page UI. The page is plain
// HTML and JS talking to the JSON API; all state lives server-side.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var static embed.FS

// Handler serves the UI assets at the router root.
func Handler() http.Handler {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		// embed guarantees the directory exists at compile time
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
