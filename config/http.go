package config

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the base URL of the application (e.g., "https://app.example.com").
	// Used for generating absolute URLs in share links and OAuth redirects.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// BasePath is the path prefix the application is mounted under, for
	// deployments behind a reverse proxy (e.g., "/dictate"). Empty means
	// the app is served at the root.
	BasePath string `env:"HTTP_BASE_PATH" envDefault:""`

	// CookieDomain is the domain for session cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	h.BasePath = NormalizeBasePath(h.BasePath)
	h.CookieDomain = sanitizeCookieDomain(h.CookieDomain)
}

// NormalizeBasePath canonicalizes a mount prefix: a missing leading slash is
// added, at most one trailing slash is removed, and a bare "/" means no
// prefix at all. Normalization is idempotent, so an already-normalized value
// passes through unchanged.
func NormalizeBasePath(p string) string {
	if p == "" || p == "/" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimSuffix(p, "/")
}

// sanitizeCookieDomain drops cookie domains that are not registrable: a bare
// public suffix like "com" or "co.uk" would make browsers reject or
// overshare the cookie. Invalid values fall back to the request domain.
func sanitizeCookieDomain(domain string) string {
	domain = strings.TrimSpace(strings.TrimPrefix(domain, "."))
	if domain == "" {
		return ""
	}
	if _, err := publicsuffix.EffectiveTLDPlusOne(domain); err != nil {
		return ""
	}
	return domain
}
