package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/dictate-io/dictate/internal/errors"
)

// AppConfigRepo reads and writes the single-row remote configuration document.
// It implements ports.ConfigSource for the config service.
type AppConfigRepo struct {
	DB *sql.DB
}

// NewAppConfigRepo creates a new AppConfigRepo.
func NewAppConfigRepo(db *sql.DB) *AppConfigRepo {
	return &AppConfigRepo{DB: db}
}

// Fetch returns the raw configuration JSON and its last update time.
// A missing row resolves to an empty document rather than an error: an
// unconfigured deployment behaves like one with no redirect URL and no pages.
func (r *AppConfigRepo) Fetch(ctx context.Context) ([]byte, time.Time, error) {
	var (
		raw       []byte
		updatedAt time.Time
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT data, updated_at FROM app_config WHERE id = 1`,
	).Scan(&raw, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return []byte(`{}`), time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, apperrors.MapDBError(err)
	}
	return raw, updatedAt, nil
}

// Set replaces the configuration document. The input must be a valid JSON object.
func (r *AppConfigRepo) Set(ctx context.Context, raw []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, "config must be a JSON object")
	}

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO app_config (id, data, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`, raw)
	if err != nil {
		return fmt.Errorf("set app config: %w", apperrors.MapDBError(err))
	}
	return nil
}
