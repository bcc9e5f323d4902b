package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strings"

	"github.com/USA-RedDragon/gory/internal/api"
	"github.com/gin-gonic/gin/render"
	"github.com/mattn/go-nulltype"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const layoutTemplate = "layout"

// Page names accepted by Renderer.Instance.
const (
	PageTrips    = "trips.html"
	PageTrip     = "trip.html"
	PageError    = "error.html"
	PageNotFound = "notfound.html"
)

// Renderer holds one template set per page, each combined with the shared
// layout. It satisfies gin's render.HTMLRender.
type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	renderer := &Renderer{
		templates: make(map[string]*template.Template),
	}
	for _, page := range []string{PageTrips, PageTrip, PageError, PageNotFound} {
		tmpl, err := template.New(page).Funcs(funcMap()).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		renderer.templates[page] = tmpl
	}
	return renderer, nil
}

func (r *Renderer) Instance(name string, data any) render.Render {
	tmpl, ok := r.templates[name]
	if !ok {
		tmpl = r.templates[PageError]
		data = ErrorPage{Status: http.StatusInternalServerError, Message: "Unknown page " + name}
	}
	return render.HTML{
		Template: tmpl,
		Name:     layoutTemplate,
		Data:     data,
	}
}

// StaticFS serves the embedded stylesheet.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"coord":      formatCoord,
		"opt":        optional,
		"km":         formatKilometers,
		"mediaURL":   MediaURL,
		"pathEscape": url.PathEscape,
	}
}

func formatCoord(v nulltype.NullFloat64) string {
	return fmt.Sprintf("%.5f", v.Float64Value())
}

func optional(v nulltype.NullString) string {
	if !v.Valid() {
		return ""
	}
	return v.StringValue()
}

func formatKilometers(meters float64) string {
	return fmt.Sprintf("%.1f km", meters/1000)
}

// MediaURL maps a photo's server relative file path onto the local /media
// proxy route. Unusable paths yield "".
func MediaURL(filepath string) string {
	segments, err := api.MediaSegments(filepath)
	if err != nil {
		return ""
	}
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return "/media/" + strings.Join(segments, "/")
}
