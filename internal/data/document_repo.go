package data

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dictate-io/dictate/internal/data/pgxutil"
	"github.com/dictate-io/dictate/internal/domain/model"
	apperrors "github.com/dictate-io/dictate/internal/errors"
)

// DocumentRepo provides database operations for documents.
type DocumentRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewDocumentRepo creates a new DocumentRepo with the real time provider.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewDocumentRepoWithTimeProvider creates a DocumentRepo with a custom time provider (useful for tests).
func NewDocumentRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *DocumentRepo {
	return &DocumentRepo{DB: db, timeProvider: tp}
}

// Create inserts a new document.
func (r *DocumentRepo) Create(ctx context.Context, req *model.CreateDocumentRequest) (*model.Document, error) {
	if req == nil {
		return nil, errors.New("create document request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid document")
	}

	now := r.timeProvider.Now().UTC()
	var out model.Document
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO documents (id, title, owner_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
			RETURNING id, title, owner_id, created_at, updated_at
		`,
			uuid.New().String(),
			strings.TrimSpace(req.Title),
			req.OwnerID,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Document])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a document by ID.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*model.Document, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NotFoundf("document %q not found", id)
	}

	var out model.Document
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id, title, owner_id, created_at, updated_at
			FROM documents
			WHERE id = $1
		`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Document])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListByOwner retrieves a user's documents, newest first.
func (r *DocumentRepo) ListByOwner(ctx context.Context, ownerID string, limit int) ([]*model.Document, error) {
	if limit <= 0 {
		limit = 50
	}

	var out []*model.Document
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id, title, owner_id, created_at, updated_at
			FROM documents
			WHERE owner_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		`, ownerID, limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[model.Document])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return out, nil
}

// Delete removes a document by ID. Share tokens cascade.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return apperrors.MapDBError(err)
	}
	if n, raErr := res.RowsAffected(); raErr == nil && n == 0 {
		return apperrors.NotFoundf("document %q not found", id)
	}
	return nil
}
