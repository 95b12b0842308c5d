//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRemoteConfig_FullDocument(t *testing.T) {
	raw := []byte(`{
		"logged_out_redirect_url": "https://x.example/out",
		"pages": {
			"imprint": {"name": "Imprint", "text": "Contact us."},
			"privacy": {"name": "Privacy", "text": "We keep no logs."}
		},
		"feature_flags": {"new_editor": true}
	}`)

	cfg, err := ParseRemoteConfig(raw)
	require.NoError(t, err)
	assert.Equal(t, "https://x.example/out", cfg.LoggedOutRedirectURL)
	require.Len(t, cfg.Pages, 2)
	assert.Equal(t, "Imprint", cfg.Pages["imprint"].Name)
	assert.Equal(t, "We keep no logs.", cfg.Pages["privacy"].Text)
}

func TestParseRemoteConfig_MissingFields(t *testing.T) {
	cfg, err := ParseRemoteConfig([]byte(`{"unrelated": 42}`))
	require.NoError(t, err)
	assert.Empty(t, cfg.LoggedOutRedirectURL)
	assert.Empty(t, cfg.Pages)
}

func TestParseRemoteConfig_WrongTypesIgnored(t *testing.T) {
	cfg, err := ParseRemoteConfig([]byte(`{
		"logged_out_redirect_url": 7,
		"pages": {"broken": "not-an-object", "ok": {"name": "OK"}}
	}`))
	require.NoError(t, err)
	assert.Empty(t, cfg.LoggedOutRedirectURL)
	require.Len(t, cfg.Pages, 1)
	assert.Equal(t, "OK", cfg.Pages["ok"].Name)
}

func TestParseRemoteConfig_InvalidJSON(t *testing.T) {
	_, err := ParseRemoteConfig([]byte(`{`))
	require.Error(t, err)
}
