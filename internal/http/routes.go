package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/dictate-io/dictate/internal/service"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Auth      *service.AuthService
	Config    *service.ConfigService
	Documents *service.DocumentService
	Pages     *service.PageService

	// TemplateFS contains the view templates.
	TemplateFS fs.FS

	// BasePath is the normalized mount prefix ("" or "/something").
	BasePath string

	CookieDomain string
	Logger       *slog.Logger
}

// RouteEntry binds one route pattern to its guard and handler.
type RouteEntry struct {
	Pattern string // method + path in ServeMux syntax
	Guard   GuardKind
	Handler http.HandlerFunc
}

// Routes returns the view route table in declared order. More specific
// patterns win on the mux regardless of position, which for this surface
// coincides with the order below; the table stays ordered so the matching
// precedence is readable in one place.
func Routes(ui *UIHandlers) []RouteEntry {
	return []RouteEntry{
		{Pattern: "GET /login", Guard: GuardNone, Handler: ui.LoginPage},
		{Pattern: "GET /page/{pageID}", Guard: GuardNone, Handler: ui.Page},
		{Pattern: "GET /about", Guard: GuardNone, Handler: ui.About},
		{Pattern: "GET /{$}", Guard: GuardLoggedInRedirect, Handler: ui.Home},
		{Pattern: "GET /new", Guard: GuardLoggedIn, Handler: ui.NewDocumentForm},
		{Pattern: "POST /new", Guard: GuardLoggedIn, Handler: ui.NewDocumentCreate},
		{Pattern: "GET /document/{documentID}", Guard: GuardAuthenticated, Handler: ui.Document},
		// Everything else is the not-found view.
		{Pattern: "/", Guard: GuardNone, Handler: ui.NotFound},
	}
}

// NewRouter creates and configures the application handler. The returned
// handler expects the base path already stripped; use Mount to serve it
// under a prefix.
func NewRouter(services RouterServices) (http.Handler, error) {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	renderer, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: services.TemplateFS,
		BasePath:   services.BasePath,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	ui := &UIHandlers{
		Renderer:  renderer,
		Documents: services.Documents,
		Pages:     services.Pages,
		BasePath:  services.BasePath,
		Logger:    logger,
	}
	authHandlers := &AuthHandlers{
		CookieDomain: services.CookieDomain,
		BasePath:     services.BasePath,
		Logger:       logger,
	}
	// Leave Svc nil when auth is disabled; a typed nil behind the interface
	// would defeat the handlers' nil checks.
	if services.Auth != nil {
		authHandlers.Svc = services.Auth
	}
	api := &APIHandlers{
		Documents: services.Documents,
		Config:    services.Config,
		BasePath:  services.BasePath,
	}

	fx := GuardEffects{
		BasePath:      services.BasePath,
		RenderLoading: ui.Loading,
	}

	mux := http.NewServeMux()
	for _, route := range Routes(ui) {
		mux.Handle(route.Pattern, Guard(route.Guard, fx)(route.Handler))
	}

	mux.HandleFunc("GET /auth/login", authHandlers.Login)
	mux.HandleFunc("GET /auth/callback", authHandlers.Callback)
	mux.HandleFunc("POST /auth/logout", authHandlers.Logout)
	mux.HandleFunc("GET /auth/status", authHandlers.Status)

	mux.HandleFunc("POST /api/documents/{documentID}/share", api.ShareDocument)
	mux.HandleFunc("DELETE /api/documents/{documentID}/share", api.RevokeShare)
	mux.HandleFunc("GET /api/config", api.GetConfig)

	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)

	// Snapshots run outside the mux so every route, including the
	// catch-all, sees the same per-request auth and config view.
	return Snapshots(services.Auth, services.Config)(mux), nil
}

// Mount serves the handler under the given normalized base path. An empty
// base path returns the handler unchanged; anything outside the prefix is a
// plain 404.
func Mount(basePath string, h http.Handler) http.Handler {
	if basePath == "" {
		return h
	}

	outer := http.NewServeMux()
	outer.Handle(basePath+"/", http.StripPrefix(basePath, h))
	// The bare prefix (no trailing slash) is the app root.
	outer.Handle(basePath, http.RedirectHandler(basePath+"/", http.StatusMovedPermanently))
	return outer
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
