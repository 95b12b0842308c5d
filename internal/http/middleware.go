package httpx

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dictate-io/dictate/internal/service"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Snapshots returns a middleware that takes the auth and config snapshots
// exactly once per request and stores them in the request context. Every
// guard and handler downstream sees the same pair, so a concurrent login or
// config refresh cannot produce a half-updated view mid-request.
//
// A nil auth service means authentication is disabled; every request then
// resolves to the logged-out snapshot, stale session cookies included.
func Snapshots(auth *service.AuthService, config *service.ConfigService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var result service.ResolveAuthResult
			if auth != nil {
				in := service.ResolveAuthInput{
					ShareToken: r.URL.Query().Get("share_token"),
					DocumentID: documentIDFromPath(r.URL.Path),
				}
				if cookie, err := r.Cookie(sessionCookieName); err == nil {
					in.SessionID = cookie.Value
				}
				result = auth.ResolveAuthData(r.Context(), in)
			}

			ctx := SetAuthDataInContext(r.Context(), result.Data)
			ctx = SetSessionInContext(ctx, result.Session)
			ctx = SetConfigSnapshotInContext(ctx, config.Snapshot())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// documentIDFromPath extracts the document ID from document view and API
// paths. The snapshot middleware runs before mux matching, so path values
// are not available yet.
func documentIDFromPath(path string) string {
	for _, prefix := range []string{"/document/", "/api/documents/"} {
		rest, ok := strings.CutPrefix(path, prefix)
		if !ok {
			continue
		}
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			rest = rest[:i]
		}
		return rest
	}
	return ""
}

// GuardEffects tells the guard middleware how to perform non-render outcomes.
type GuardEffects struct {
	// BasePath is the normalized mount prefix, prepended to in-app
	// navigation targets. External redirects are never prefixed.
	BasePath string

	// RenderLoading serves the loading view for deferred decisions.
	RenderLoading http.HandlerFunc
}

// Guard returns a middleware enforcing the given policy. It evaluates the
// guard against the request's snapshots and applies the decision: render
// passes through, navigation redirects with 303 See Other so a guarded POST
// never gets replayed against the login page.
func Guard(kind GuardKind, fx GuardEffects) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := EvaluateGuard(kind,
				GetAuthDataFromContext(r.Context()),
				GetConfigSnapshotFromContext(r.Context()),
			)

			switch decision.Kind {
			case DecisionRender:
				next.ServeHTTP(w, r)
			case DecisionLoading:
				if fx.RenderLoading != nil {
					fx.RenderLoading(w, r)
					return
				}
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			case DecisionNavigate:
				http.Redirect(w, r, fx.BasePath+decision.Location, http.StatusSeeOther)
			case DecisionExternalRedirect:
				http.Redirect(w, r, decision.Location, http.StatusSeeOther)
			}
		})
	}
}

// Chain applies middlewares right to left, so they execute top to bottom in
// argument order.
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
