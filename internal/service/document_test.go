package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dictate-io/dictate/internal/domain/model"
	apperrors "github.com/dictate-io/dictate/internal/errors"
	authmocks "github.com/dictate-io/dictate/internal/mocks/auth"
)

// memoryDocumentRepo is an in-memory DocumentRepository for unit tests.
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

func newTestDocumentService() (*DocumentService, *memoryDocumentRepo, *authmocks.MemoryShareTokenRepo) {
	docs := newMemoryDocumentRepo()
	tokens := authmocks.NewMemoryShareTokenRepo()
	svc := NewDocumentService(DocumentServiceOptions{
		Documents:   docs,
		ShareTokens: tokens,
	})
	return svc, docs, tokens
}

func TestDocumentService_Create(t *testing.T) {
	svc, _, _ := newTestDocumentService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, "user-1", "Standup notes")
	require.NoError(t, err)
	assert.Equal(t, "Standup notes", doc.Title)
	assert.Equal(t, "user-1", doc.OwnerID)
}

func TestDocumentService_Create_DefaultTitle(t *testing.T) {
	svc, _, _ := newTestDocumentService()

	doc, err := svc.Create(context.Background(), "user-1", "   ")
	require.NoError(t, err)
	assert.Equal(t, untitledDocumentTitle, doc.Title)
}

func TestDocumentService_Create_RequiresOwner(t *testing.T) {
	svc, _, _ := newTestDocumentService()

	_, err := svc.Create(context.Background(), "", "title")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestDocumentService_Get(t *testing.T) {
	svc, _, _ := newTestDocumentService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, "user-1", "notes")
	require.NoError(t, err)

	got, err := svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)

	_, err = svc.Get(ctx, "missing")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = svc.Get(ctx, "")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDocumentService_Share(t *testing.T) {
	svc, _, _ := newTestDocumentService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, "user-1", "shared notes")
	require.NoError(t, err)

	tok, err := svc.Share(ctx, doc.ID, "user-1", "review link", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, tok.DocumentID)
	require.NotNil(t, tok.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *tok.ExpiresAt, 5*time.Second)
}

func TestDocumentService_Share_NoExpiry(t *testing.T) {
	svc, _, _ := newTestDocumentService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, "user-1", "shared notes")
	require.NoError(t, err)

	tok, err := svc.Share(ctx, doc.ID, "user-1", "forever link", 0)
	require.NoError(t, err)
	assert.Nil(t, tok.ExpiresAt)
}

func TestDocumentService_Share_NonOwnerGetsNotFound(t *testing.T) {
	svc, _, _ := newTestDocumentService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, "user-1", "private notes")
	require.NoError(t, err)

	_, err = svc.Share(ctx, doc.ID, "user-2", "sneaky link", 0)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDocumentService_Revoke(t *testing.T) {
	svc, _, tokens := newTestDocumentService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, "user-1", "shared notes")
	require.NoError(t, err)
	tok, err := svc.Share(ctx, doc.ID, "user-1", "link", 0)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, doc.ID, "user-1", tok.Token))

	_, err = tokens.GetByToken(ctx, tok.Token, doc.ID)
	assert.ErrorIs(t, err, authmocks.ErrNotFound)
}

func TestDocumentService_Revoke_NonOwner(t *testing.T) {
	svc, _, _ := newTestDocumentService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, "user-1", "shared notes")
	require.NoError(t, err)
	tok, err := svc.Share(ctx, doc.ID, "user-1", "link", 0)
	require.NoError(t, err)

	err = svc.Revoke(ctx, doc.ID, "user-2", tok.Token)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDocumentService_Revoke_UnknownToken(t *testing.T) {
	svc, _, _ := newTestDocumentService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, "user-1", "shared notes")
	require.NoError(t, err)

	err = svc.Revoke(ctx, doc.ID, "user-1", "no-such-token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, authmocks.ErrNotFound))
}
