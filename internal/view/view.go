// Package view owns the HTML templates rendered by the handlers.
package view

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

const (
	// HelloTemplate is the greeting page.
	HelloTemplate = "hello"

	extension = ".html"
)

//go:embed templates/*.html
var embedded embed.FS

// Templates returns the template files compiled into the binary.
func Templates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		// Only reachable if the embed pattern above changes.
		panic(err)
	}
	return sub
}

// NewEngine parses every template in fsys up front and checks that each name in
// required exists, so a broken template set fails at start-up instead of per request.
func NewEngine(fsys fs.FS, required ...string) (*html.Engine, error) {
	engine := html.NewFileSystem(http.FS(fsys), extension)
	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	for _, name := range required {
		if engine.Templates == nil || engine.Templates.Lookup(name) == nil {
			return nil, fmt.Errorf("template %q not found", name)
		}
	}
	return engine, nil
}
