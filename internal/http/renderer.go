package httpx

import (
	"bytes"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/dictate-io/dictate/internal/util"
)

// TemplateRenderer renders HTML templates for UI responses.
type TemplateRenderer struct {
	t      *template.Template
	logger *slog.Logger
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS fs.FS        // Filesystem containing templates (required)
	BasePath   string       // Normalized mount prefix, exposed to templates as basePath
	Logger     *slog.Logger // Logger for template errors (optional)
}

// NewTemplateRenderer constructs a renderer by parsing templates from the provided config.
// Every page template defines a "content" block rendered inside the shared layout.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	funcs := template.FuncMap{
		// href joins an app-absolute path with the mount prefix so links
		// keep working when the app is served under a base path.
		"href":     func(path string) string { return cfg.BasePath + path },
		"datetime": util.FormatTimestamp,
	}

	t, err := template.New("root").Funcs(funcs).ParseFS(cfg.TemplateFS, "*.html")
	if err != nil {
		logger.Error("template parsing failed", slog.Any("error", err))
		return nil, err
	}

	return &TemplateRenderer{t: t, logger: logger}, nil
}

// Render writes the named template with the given data and status code.
// Output is buffered so a template error mid-render produces a clean 500
// instead of a truncated page.
func (r *TemplateRenderer) Render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, name, data); err != nil {
		r.logger.Error("template execution failed",
			slog.String("template", name),
			slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		return
	}
}
