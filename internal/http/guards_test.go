package httpx

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/dictate-io/dictate/internal/domain/auth"
	"github.com/dictate-io/dictate/internal/domain/model"
	"github.com/dictate-io/dictate/internal/service"
)

func loadedConfig(redirectURL string) service.ConfigSnapshot {
	return service.ConfigSnapshot{
		Config: model.RemoteConfig{LoggedOutRedirectURL: redirectURL},
	}
}

func loadingConfig() service.ConfigSnapshot {
	return service.ConfigSnapshot{IsLoading: true}
}

func TestEvaluateGuard_None(t *testing.T) {
	for _, auth := range []domainauth.AuthData{
		{},
		{IsLoggedIn: true},
		{IsLoading: true},
	} {
		d := EvaluateGuard(GuardNone, auth, loadingConfig())
		assert.Equal(t, DecisionRender, d.Kind)
	}
}

func TestEvaluateGuard_Authenticated(t *testing.T) {
	cases := []struct {
		name string
		auth domainauth.AuthData
		want Decision
	}{
		{"logged in", domainauth.AuthData{IsLoggedIn: true}, Decision{Kind: DecisionRender}},
		{"share token only", domainauth.AuthData{HasShareToken: true}, Decision{Kind: DecisionRender}},
		{"both", domainauth.AuthData{IsLoggedIn: true, HasShareToken: true}, Decision{Kind: DecisionRender}},
		{"neither", domainauth.AuthData{}, Decision{Kind: DecisionNavigate, Location: "/login"}},
		{"loading defers, never denies", domainauth.AuthData{IsLoading: true}, Decision{Kind: DecisionLoading}},
		{"loading wins over share token", domainauth.AuthData{HasShareToken: true, IsLoading: true}, Decision{Kind: DecisionLoading}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Config state must be irrelevant to this guard.
			assert.Equal(t, tc.want, EvaluateGuard(GuardAuthenticated, tc.auth, loadingConfig()))
			assert.Equal(t, tc.want, EvaluateGuard(GuardAuthenticated, tc.auth, loadedConfig("https://elsewhere.example.com")))
		})
	}
}

func TestEvaluateGuard_LoggedIn(t *testing.T) {
	cases := []struct {
		name string
		auth domainauth.AuthData
		want Decision
	}{
		{"logged in", domainauth.AuthData{IsLoggedIn: true}, Decision{Kind: DecisionRender}},
		{"share token does not count", domainauth.AuthData{HasShareToken: true}, Decision{Kind: DecisionNavigate, Location: "/login"}},
		{"logged out", domainauth.AuthData{}, Decision{Kind: DecisionNavigate, Location: "/login"}},
		{"loading", domainauth.AuthData{IsLoading: true}, Decision{Kind: DecisionLoading}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EvaluateGuard(GuardLoggedIn, tc.auth, loadedConfig("")))
		})
	}
}

func TestEvaluateGuard_LoggedInRedirect(t *testing.T) {
	cases := []struct {
		name string
		auth domainauth.AuthData
		cfg  service.ConfigSnapshot
		want Decision
	}{
		{
			"logged in renders regardless of config",
			domainauth.AuthData{IsLoggedIn: true},
			loadedConfig("https://elsewhere.example.com"),
			Decision{Kind: DecisionRender},
		},
		{
			"auth loading defers",
			domainauth.AuthData{IsLoading: true},
			loadedConfig("https://elsewhere.example.com"),
			Decision{Kind: DecisionLoading},
		},
		{
			"logged out with config loading renders optimistically",
			domainauth.AuthData{},
			loadingConfig(),
			Decision{Kind: DecisionRender},
		},
		{
			"logged out with redirect URL leaves the app",
			domainauth.AuthData{},
			loadedConfig("https://elsewhere.example.com"),
			Decision{Kind: DecisionExternalRedirect, Location: "https://elsewhere.example.com"},
		},
		{
			"logged out without redirect URL goes to login",
			domainauth.AuthData{},
			loadedConfig(""),
			Decision{Kind: DecisionNavigate, Location: "/login"},
		},
		{
			"share token does not satisfy the home guard",
			domainauth.AuthData{HasShareToken: true},
			loadedConfig(""),
			Decision{Kind: DecisionNavigate, Location: "/login"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EvaluateGuard(GuardLoggedInRedirect, tc.auth, tc.cfg))
		})
	}
}

func TestGuardKind_String(t *testing.T) {
	assert.Equal(t, "none", GuardNone.String())
	assert.Equal(t, "authenticated", GuardAuthenticated.String())
	assert.Equal(t, "logged-in", GuardLoggedIn.String())
	assert.Equal(t, "logged-in-redirect", GuardLoggedInRedirect.String())
}
