// Package view renders the server-side HTML pages: order receipts, pay-per-view
// unlock pages, payment failure pages and the browser paywall. Templates only
// substitute computed values; no business logic lives here.
package view

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	templates, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Renderer{templates: templates}, nil
}

// Render implements echo.Renderer. Output is buffered so a template error
// never leaves a half-written page on the wire.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}

	_, err := buf.WriteTo(w)
	return err
}
