package httpx

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	dictate "github.com/dictate-io/dictate"
	domainauth "github.com/dictate-io/dictate/internal/domain/auth"
	"github.com/dictate-io/dictate/internal/domain/model"
	apperrors "github.com/dictate-io/dictate/internal/errors"
	authmocks "github.com/dictate-io/dictate/internal/mocks/auth"
	"github.com/dictate-io/dictate/internal/service"
)

// staticConfigSource serves a fixed config document, or fails.
type staticConfigSource struct {
	raw []byte
	err error
}

func (s staticConfigSource) Fetch(context.Context) ([]byte, time.Time, error) {
	if s.err != nil {
		return nil, time.Time{}, s.err
	}
	return s.raw, time.Now(), nil
}

// testEnv bundles a fully wired router with the in-memory stores behind it.
type testEnv struct {
	handler   http.Handler
	sessions  *authmocks.MemorySessionStore
	tokens    *authmocks.MemoryShareTokenRepo
	documents *memoryDocumentRepo
	config    *service.ConfigService
}

type testEnvOptions struct {
	basePath  string
	configDoc string // empty means the config never loads
	noAuth    bool   // wire the router without an auth service
}

func templateFS(t *testing.T) fs.FS {
	t.Helper()
	sub, err := fs.Sub(dictate.TemplateFS, "web/templates")
	require.NoError(t, err)
	return sub
}

func newTestEnv(t *testing.T, opts testEnvOptions) *testEnv {
	t.Helper()

	sessions := authmocks.NewMemorySessionStore()
	tokens := authmocks.NewMemoryShareTokenRepo()
	documents := newMemoryDocumentRepo()

	var authSvc *service.AuthService
	if !opts.noAuth {
		authSvc = service.NewAuthService(service.AuthServiceOptions{
			Provider:    authmocks.NewMockAuthProvider(),
			Sessions:    sessions,
			Roles:       authmocks.StaticRoleMapper{AdminGroup: "admins", UserGroup: "users"},
			ShareTokens: tokens,
		})
	}

	var source staticConfigSource
	if opts.configDoc == "" {
		source = staticConfigSource{err: errors.New("config source unavailable")}
	} else {
		source = staticConfigSource{raw: []byte(opts.configDoc)}
	}
	configSvc := service.NewConfigService(service.ConfigServiceOptions{
		Source: source,
		TTL:    time.Hour,
	})
	if opts.configDoc != "" {
		require.NoError(t, configSvc.Refresh(context.Background()))
	}

	docSvc := service.NewDocumentService(service.DocumentServiceOptions{
		Documents:   documents,
		ShareTokens: tokens,
	})

	handler, err := NewRouter(RouterServices{
		Auth:       authSvc,
		Config:     configSvc,
		Documents:  docSvc,
		Pages:      service.NewPageService(configSvc),
		TemplateFS: templateFS(t),
		BasePath:   opts.basePath,
	})
	require.NoError(t, err)

	return &testEnv{
		handler:   Mount(opts.basePath, handler),
		sessions:  sessions,
		tokens:    tokens,
		documents: documents,
		config:    configSvc,
	}
}

// login seeds a session and returns its cookie.
func (e *testEnv) login(t *testing.T, userID string) *http.Cookie {
	t.Helper()
	sess := domainauth.Session{
		ID:        "sess-" + userID,
		UserID:    userID,
		FirstName: "Test",
		LastName:  "User",
		Role:      domainauth.RoleUser,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, e.sessions.Save(context.Background(), sess))
	return &http.Cookie{Name: sessionCookieName, Value: sess.ID}
}

// get performs a GET request against the router.
func (e *testEnv) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// memoryDocumentRepo is an in-memory DocumentRepository for router tests.
type memoryDocumentRepo struct {
	docs   map[string]model.Document
	serial int
}

func newMemoryDocumentRepo() *memoryDocumentRepo {
	return &memoryDocumentRepo{docs: make(map[string]model.Document)}
}

func (m *memoryDocumentRepo) Create(_ context.Context, req *model.CreateDocumentRequest) (*model.Document, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid document")
	}
	m.serial++
	doc := model.Document{
		ID:        fmt.Sprintf("doc-%d", m.serial),
		Title:     req.Title,
		OwnerID:   req.OwnerID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.docs[doc.ID] = doc
	return &doc, nil
}

func (m *memoryDocumentRepo) GetByID(_ context.Context, id string) (*model.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, apperrors.NotFoundf("document %q not found", id)
	}
	return &doc, nil
}

func (m *memoryDocumentRepo) ListByOwner(_ context.Context, ownerID string, limit int) ([]*model.Document, error) {
	var out []*model.Document
	for id := range m.docs {
		doc := m.docs[id]
		if doc.OwnerID == ownerID {
			out = append(out, &doc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryDocumentRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.docs[id]; !ok {
		return apperrors.NotFoundf("document %q not found", id)
	}
	delete(m.docs, id)
	return nil
}
