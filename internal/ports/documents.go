package ports

import (
	"context"

	"github.com/dictate-io/dictate/internal/domain/model"
)

// DocumentRepository persists transcription documents.
type DocumentRepository interface {
	Create(ctx context.Context, req *model.CreateDocumentRequest) (*model.Document, error)
	GetByID(ctx context.Context, id string) (*model.Document, error)
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]*model.Document, error)
	Delete(ctx context.Context, id string) error
}
