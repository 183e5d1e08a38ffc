// Package docs serves the OpenAPI description of the HTTP API and a
// Swagger UI page that renders it.
package docs

import (
	_ "embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/phrazzld/thrones-api/internal/platform/logger"
)

// SpecPath is the route the OpenAPI document is served from.
const SpecPath = "/openapi.json"

//go:embed openapi.json
var spec []byte

// swaggerUIVersion pins the swagger-ui-dist release loaded by the docs page.
const swaggerUIVersion = "5.17.14"

var pageTemplate = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@{{.Version}}/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@{{.Version}}/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({url: "` + SpecPath + `", dom_id: "#swagger-ui"});
  </script>
</body>
</html>
`))

// Spec returns the embedded OpenAPI document.
func Spec() []byte {
	return spec
}

// Handler serves the OpenAPI document and the docs page.
type Handler struct {
	title string
}

// NewHandler creates a Handler whose docs page is titled title.
func NewHandler(title string) *Handler {
	return &Handler{title: title}
}

// ServeSpec handles GET /openapi.json.
func (h *Handler) ServeSpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec)
}

// ServeUI handles GET /docs.
func (h *Handler) ServeUI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		Title   string
		Version string
	}{h.title, swaggerUIVersion}
	if err := pageTemplate.Execute(w, data); err != nil {
		logger.FromContext(r.Context()).Error("failed to render docs page",
			slog.String("error", err.Error()))
	}
}
