package http

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/njprem/thirdplace_finder_web/internal/util"
)

//go:embed templates/*.html
var templateFS embed.FS

const titlePrefix = "Third Place Finder - "

var sharedTemplates = []string{"templates/layout.html", "templates/card.html"}

var pageTemplates = []string{
	"home",
	"places",
	"favorites",
	"place",
	"event",
	"confirm_delete",
	"add_place",
	"error",
}

// Page is the data every template receives. Data holds the page specific
// view.
type Page struct {
	Title      string
	Nav        string
	Flash      *Flash
	Features   PlaceFeatures
	ReplaceURL string
	Data       any
}

func pageTitle(suffix string) string {
	return titlePrefix + suffix
}

// TemplateRenderer keeps one parsed set per page so that each page can
// define its own content block.
type TemplateRenderer struct {
	pages map[string]*template.Template
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	funcs := template.FuncMap{
		"markdown": util.RenderMarkdown,
	}
	pages := make(map[string]*template.Template, len(pageTemplates))
	for _, name := range pageTemplates {
		files := append([]string{}, sharedTemplates...)
		files = append(files, "templates/"+name+".html")
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = t
	}
	return &TemplateRenderer{pages: pages}, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
