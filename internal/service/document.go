package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dictate-io/dictate/internal/domain/model"
	apperrors "github.com/dictate-io/dictate/internal/errors"
	"github.com/dictate-io/dictate/internal/ports"
)

// untitledDocumentTitle is used when a document is created without a title.
const untitledDocumentTitle = "Untitled document"

// DocumentServiceOptions groups dependencies for DocumentService.
type DocumentServiceOptions struct {
	Documents   ports.DocumentRepository
	ShareTokens ports.ShareTokenRepository
	Logger      *slog.Logger
}

// DocumentService provides document operations for handlers: creation for
// logged-in users, retrieval for document views, and share link management.
type DocumentService struct {
	documents   ports.DocumentRepository
	shareTokens ports.ShareTokenRepository
	logger      *slog.Logger
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(opts DocumentServiceOptions) *DocumentService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentService{
		documents:   opts.Documents,
		shareTokens: opts.ShareTokens,
		logger:      logger,
	}
}

// Create creates a document owned by the given user. An empty title gets a
// placeholder so new recordings can start without naming anything.
func (s *DocumentService) Create(ctx context.Context, ownerID, title string) (*model.Document, error) {
	if ownerID == "" {
		return nil, apperrors.Validation("owner is required")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = untitledDocumentTitle
	}

	doc, err := s.documents.Create(ctx, &model.CreateDocumentRequest{
		Title:   title,
		OwnerID: ownerID,
	})
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	s.logger.Info("document created", "document_id", doc.ID, "owner_id", ownerID)
	return doc, nil
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, apperrors.NotFound("document not found")
	}
	return s.documents.GetByID(ctx, id)
}

// ListByOwner returns the given user's documents, newest first.
func (s *DocumentService) ListByOwner(ctx context.Context, ownerID string, limit int) ([]*model.Document, error) {
	if ownerID == "" {
		return nil, apperrors.Validation("owner is required")
	}
	return s.documents.ListByOwner(ctx, ownerID, limit)
}

// Share issues a share token for a document the given user owns. ttl of zero
// means the token never expires.
func (s *DocumentService) Share(ctx context.Context, documentID, ownerID, name string, ttl time.Duration) (*model.ShareToken, error) {
	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.OwnerID != ownerID {
		// Hide existence from non-owners.
		return nil, apperrors.NotFoundf("document %q not found", documentID)
	}

	req := &model.CreateShareTokenRequest{
		DocumentID: doc.ID,
		Name:       name,
	}
	if ttl > 0 {
		exp := time.Now().Add(ttl).UTC()
		req.ExpiresAt = &exp
	}

	tok, err := s.shareTokens.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create share token: %w", err)
	}

	s.logger.Info("share token issued", "document_id", doc.ID, "name", tok.Name)
	return tok, nil
}

// Revoke deletes a share token for a document the given user owns.
func (s *DocumentService) Revoke(ctx context.Context, documentID, ownerID, token string) error {
	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return err
	}
	if doc.OwnerID != ownerID {
		return apperrors.NotFoundf("document %q not found", documentID)
	}

	// Look the token up scoped to the document so one owner cannot revoke
	// another document's token by guessing its value.
	tok, err := s.shareTokens.GetByToken(ctx, token, doc.ID)
	if err != nil {
		return fmt.Errorf("get share token: %w", err)
	}
	return s.shareTokens.Delete(ctx, tok.Token)
}
