// Package views renders the embedded HTML pages.
package views

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/mbolis/survey-portal/log"
)

//go:embed templates
var files embed.FS

var templates = template.Must(template.
	New("").
	Funcs(template.FuncMap{
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006")
		},
	}).
	ParseFS(files, "templates/*.html"))

// Render writes the named page. Template failures mid-write cannot be
// recovered into a clean error page, so they are only logged.
func Render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("content-type", "text/html; charset=utf-8")
	err := templates.ExecuteTemplate(w, name, data)
	if err != nil {
		log.Errorf("views.render.%s: %s", name, err)
	}
}
