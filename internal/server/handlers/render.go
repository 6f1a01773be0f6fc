package handlers

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"budgetplanner/web"
)

// Renderer executes embedded HTML templates. Every view is parsed
// together with base.html at startup so template errors surface on boot
// rather than on first request.
type Renderer struct {
	logger *slog.Logger
	views  map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"money": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
	"title": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
}

// NewRenderer parses all embedded templates.
func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	names, err := fs.Glob(web.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob templates: %w", err)
	}

	views := make(map[string]*template.Template)
	for _, name := range names {
		base := strings.TrimPrefix(name, "templates/")
		if base == "base.html" {
			continue
		}
		tmpl, err := template.New("base.html").Funcs(templateFuncs).
			ParseFS(web.TemplatesFS, "templates/base.html", name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", base, err)
		}
		views[base] = tmpl
	}

	return &Renderer{logger: logger, views: views}, nil
}

// Render writes the named view wrapped in the base layout.
func (rd *Renderer) Render(w http.ResponseWriter, viewName string, data any) {
	tmpl, ok := rd.views[viewName]
	if !ok {
		rd.logger.Error("unknown template", slog.String("view", viewName))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		rd.logger.Error("template execution failed",
			slog.String("view", viewName), slog.Any("error", err))
	}
}
