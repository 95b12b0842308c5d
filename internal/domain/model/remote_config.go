//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"encoding/json"
	"fmt"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// RemoteConfig is the typed view of the application's remote configuration
// document. The stored document is freeform JSON; only the fields below are
// extracted, everything else is ignored.
type RemoteConfig struct {
	// LoggedOutRedirectURL, when set, is where a logged-out visitor of the
	// home route is sent instead of the login page. It is an absolute URL
	// and leaves the application entirely.
	LoggedOutRedirectURL string

	// Pages maps page IDs to public informational pages served at /page/{id}.
	Pages map[string]ConfigPage
}

// ConfigPage is a public informational page defined in remote configuration.
type ConfigPage struct {
	Name string
	Text string
}

// JMESPath expressions used to pull typed fields out of the freeform document.
const (
	exprLoggedOutRedirectURL = "logged_out_redirect_url"
	exprPages                = "pages"
)

// ParseRemoteConfig extracts the typed configuration from a raw JSON document.
// Unknown fields are ignored; missing fields yield zero values. A syntactically
// invalid document is an error, a document with unexpected field types is not.
func ParseRemoteConfig(raw []byte) (*RemoteConfig, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode remote config: %w", err)
	}

	cfg := &RemoteConfig{}

	if v, err := jmespath.Search(exprLoggedOutRedirectURL, doc); err == nil {
		if s, ok := v.(string); ok {
			cfg.LoggedOutRedirectURL = s
		}
	}

	if v, err := jmespath.Search(exprPages, doc); err == nil {
		cfg.Pages = parseConfigPages(v)
	}

	return cfg, nil
}

func parseConfigPages(v any) map[string]ConfigPage {
	pages, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]ConfigPage, len(pages))
	for id, raw := range pages {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		var page ConfigPage
		if name, ok := entry["name"].(string); ok {
			page.Name = name
		}
		if text, ok := entry["text"].(string); ok {
			page.Text = text
		}
		out[id] = page
	}
	return out
}
