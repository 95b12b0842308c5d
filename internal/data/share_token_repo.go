package data

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dictate-io/dictate/internal/data/pgxutil"
	"github.com/dictate-io/dictate/internal/domain/model"
	apperrors "github.com/dictate-io/dictate/internal/errors"
)

// shareTokenLen is the length of generated token values in URL-safe characters.
const shareTokenLen = 32

// ShareTokenRepo provides database operations for document share tokens.
type ShareTokenRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewShareTokenRepo creates a new ShareTokenRepo with the real time provider.
func NewShareTokenRepo(db *sql.DB) *ShareTokenRepo {
	return &ShareTokenRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewShareTokenRepoWithTimeProvider creates a ShareTokenRepo with a custom time provider.
func NewShareTokenRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ShareTokenRepo {
	return &ShareTokenRepo{DB: db, timeProvider: tp}
}

// Create issues a new share token for a document. The token value is
// generated server-side and returned in the result.
func (r *ShareTokenRepo) Create(ctx context.Context, req *model.CreateShareTokenRequest) (*model.ShareToken, error) {
	if req == nil {
		return nil, errors.New("create share token request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid share token")
	}

	token, err := randomToken(shareTokenLen)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	var out model.ShareToken
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO document_share_tokens (token, document_id, name, expires_at, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING token, document_id, name, expires_at, created_at
		`,
			token,
			req.DocumentID,
			strings.TrimSpace(req.Name),
			req.ExpiresAt,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ShareToken])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByToken returns the token record for the given token value and document.
// Expiry is not checked here; callers decide how stale grants are treated.
func (r *ShareTokenRepo) GetByToken(ctx context.Context, token, documentID string) (*model.ShareToken, error) {
	if token == "" || documentID == "" {
		return nil, apperrors.NotFound("share token not found")
	}

	var out model.ShareToken
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT token, document_id, name, expires_at, created_at
			FROM document_share_tokens
			WHERE token = $1 AND document_id = $2
		`, token, documentID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ShareToken])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete revokes a share token.
func (r *ShareTokenRepo) Delete(ctx context.Context, token string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM document_share_tokens WHERE token = $1`, token)
	if err != nil {
		return apperrors.MapDBError(err)
	}
	if n, raErr := res.RowsAffected(); raErr == nil && n == 0 {
		return apperrors.NotFound("share token not found")
	}
	return nil
}

func randomToken(n int) (string, error) {
	b := make([]byte, (n*3+3)/4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b)[:n], nil
}
