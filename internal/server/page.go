package server

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

type pageData struct {
	Assets  []string
	Months  []string
	Windows []int
	Error   string
}

type page struct {
	tmpl *template.Template
}

func newPage() *page {
	return &page{tmpl: template.Must(template.ParseFS(templateFS, "templates/*.html"))}
}

func (p *page) render(w io.Writer, data pageData) error {
	return p.tmpl.ExecuteTemplate(w, "dashboard.html", data)
}
