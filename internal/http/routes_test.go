package httpx

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dictate-io/dictate/internal/domain/model"
)

const testConfigDoc = `{
	"logged_out_redirect_url": "https://landing.example.com",
	"pages": {"imprint": {"name": "Imprint", "text": "Operated by example corp."}}
}`

const testConfigDocNoRedirect = `{"pages": {}}`

func TestRouter_LoginPageIsPublic(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{configDoc: testConfigDocNoRedirect})

	rec := env.get("/login")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sign in")
}

func TestRouter_AboutIsPublic(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{configDoc: testConfigDocNoRedirect})

	rec := env.get("/about")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "About dictate")
}

func TestRouter_ConfigPage(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{configDoc: testConfigDoc})

	rec := env.get("/page/imprint")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Imprint")
	assert.Contains(t, rec.Body.String(), "Operated by example corp.")
}

func TestRouter_ConfigPage_Unknown(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{configDoc: testConfigDoc})

	rec := env.get("/page/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestRouter_ConfigPage_ConfigNotLoaded(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})

	rec := env.get("/page/imprint")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Loading")
}

func TestRouter_Home_LoggedIn(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{configDoc: testConfigDoc})
	cookie := env.login(t, "user-1")

	_, err := env.documents.Create(context.Background(), &model.CreateDocumentRequest{
		Title: "Weekly sync", OwnerID: "user-1",
	})
	require.NoError(t, err)

	rec := env.get("/", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Weekly sync")
}

func TestRouter_Home_LoggedOutWithRedirectURL(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{configDoc: testConfigDoc})

	rec := env.get("/")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "https://landing.example.com", rec.Header().Get("Location"))
}

func TestRouter_Home_LoggedOutWithoutRedirectURL(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{configDoc: testConfigDocNoRedirect})

	rec := env.get("/")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRouter_Home_LoggedOutConfigLoadingRendersOptimistically(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})

	rec := env.get("/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your documents")
}

func TestRouter_New_RequiresLogin(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{configDoc: testConfigDoc})

	rec := env.get("/new")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = env.get("/new", env.login(t, "user-1"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "New document")
}

func TestRouter_New_ShareTokenDoesNotCount(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{configDoc: testConfigDoc})

	doc, err := env.documents.Create(context.Background(), &model.CreateDocumentRequest{
		Title: "shared", OwnerID: "user-1",
	})
	require.NoError(t, err)
	tok, err := env.tokens.Create(context.Background(), &model.CreateShareTokenRequest{
		DocumentID: doc.ID, Name: "link",
	})
	require.NoError(t, err)

	rec := env.get("/new?share_token=" + tok.Token)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRouter_Document_LoggedIn(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{configDoc: testConfigDoc})
	cookie := env.login(t, "user-1")

	doc, err := env.documents.Create(context.Background(), &model.CreateDocumentRequest{
		Title: "Interview", OwnerID: "user-1",
	})
	require.NoError(t, err)

	rec := env.get("/document/"+doc.ID, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Interview")
}

func TestRouter_Document_LoggedOut(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{configDoc: testConfigDoc})

	rec := env.get("/document/doc-1")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRouter_Document_ShareToken(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{configDoc: testConfigDoc})

	doc, err := env.documents.Create(context.Background(), &model.CreateDocumentRequest{
		Title: "Shared recording", OwnerID: "user-1",
	})
	require.NoError(t, err)
	tok, err := env.tokens.Create(context.Background(), &model.CreateShareTokenRequest{
		DocumentID: doc.ID, Name: "link",
	})
	require.NoError(t, err)

	rec := env.get("/document/" + doc.ID + "?share_token=" + tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Shared recording")

	// The token is bound to its document.
	other, err := env.documents.Create(context.Background(), &model.CreateDocumentRequest{
		Title: "Other", OwnerID: "user-1",
	})
	require.NoError(t, err)
	rec = env.get("/document/" + other.ID + "?share_token=" + tok.Token)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestRouter_Document_ExpiredShareToken(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{configDoc: testConfigDoc})
	past := time.Now().Add(-time.Hour)

	env.tokens.Put(model.ShareToken{
		Token:      "stale",
		DocumentID: "doc-1",
		Name:       "old",
		ExpiresAt:  &past,
	})

	rec := env.get("/document/doc-1?share_token=stale")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRouter_UnknownRouteRendersNotFound(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{configDoc: testConfigDoc})

	for _, path := range []string{"/nope", "/document", "/page/a/b"} {
		rec := env.get(path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "Page not found", path)
	}
}

func TestRouter_Healthz(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{configDoc: testConfigDoc})

	rec := env.get("/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_BasePath(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{configDoc: testConfigDocNoRedirect, basePath: "/app"})

	// In-app navigation targets carry the prefix.
	rec := env.get("/app/new")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/app/login", rec.Header().Get("Location"))

	// The bare prefix redirects to the app root.
	rec = env.get("/app")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/app/", rec.Header().Get("Location"))

	// Views resolve under the prefix and link with it.
	rec = env.get("/app/login")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/app/auth/login"`)

	// Outside the prefix nothing matches.
	rec = env.get("/login")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_BasePath_ExternalRedirectNotPrefixed(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{configDoc: testConfigDoc, basePath: "/app"})

	rec := env.get("/app/")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "https://landing.example.com", rec.Header().Get("Location"))
}

func TestRouter_AuthDisabled_StaleSessionCookieIsLoggedOut(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{configDoc: testConfigDoc, noAuth: true})
	stale := &http.Cookie{Name: sessionCookieName, Value: "sess-gone"}

	rec := env.get("/about", stale)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "About dictate")

	// The home guard sees a plain logged-out visitor.
	rec = env.get("/", stale)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "https://landing.example.com", rec.Header().Get("Location"))

	// Share tokens cannot be verified either, so guarded documents bounce
	// to the login page.
	rec = env.get("/document/doc-1?share_token=tok", stale)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRouter_AuthDisabled_AuthEndpoints(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{configDoc: testConfigDocNoRedirect, noAuth: true})

	rec := env.get("/auth/login")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "auth_disabled")

	rec = env.get("/auth/status", &http.Cookie{Name: sessionCookieName, Value: "sess-gone"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)
}

func TestRoutes_DeclaredOrder(t *testing.T) {
	ui := &UIHandlers{}
	patterns := make([]string, 0)
	for _, route := range Routes(ui) {
		patterns = append(patterns, route.Pattern)
	}
	assert.Equal(t, []string{
		"GET /login",
		"GET /page/{pageID}",
		"GET /about",
		"GET /{$}",
		"GET /new",
		"POST /new",
		"GET /document/{documentID}",
		"/",
	}, patterns)
}
