package devseed

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dictate-io/dictate/internal/data"
	"github.com/dictate-io/dictate/internal/service"
)

// DemoOwnerID is the user the seeded documents belong to. It matches the
// default dev auth identity so a mock-mode login sees the seeded data.
const DemoOwnerID = "dev-user"

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB        *sql.DB
	documents *service.DocumentService
	config    *data.AppConfigRepo
}

// NewServices constructs all required services for seeding using the provided DB.
func NewServices(db *sql.DB) Services {
	documentSvc := service.NewDocumentService(service.DocumentServiceOptions{
		Documents:   data.NewDocumentRepo(db),
		ShareTokens: data.NewShareTokenRepo(db),
	})

	return Services{
		DB:        db,
		documents: documentSvc,
		config:    data.NewAppConfigRepo(db),
	}
}

// Run executes the full development seeding workflow against the provided DB.
// Seeding is idempotent: existing documents and config are left alone.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	if err := seedAppConfig(ctx, svcs.config, logger); err != nil {
		return err
	}
	return seedDocuments(ctx, svcs.documents, logger)
}

func seedAppConfig(ctx context.Context, repo *data.AppConfigRepo, logger *slog.Logger) error {
	_, updatedAt, err := repo.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch app config: %w", err)
	}
	if !updatedAt.IsZero() {
		if logger != nil {
			logger.InfoContext(ctx, "app config already present, skipping", "updated_at", updatedAt)
		}
		return nil
	}

	raw, err := json.Marshal(defaultAppConfig())
	if err != nil {
		return fmt.Errorf("marshal default app config: %w", err)
	}
	if err := repo.Set(ctx, raw); err != nil {
		return fmt.Errorf("set app config: %w", err)
	}
	if logger != nil {
		logger.InfoContext(ctx, "seeded default app config")
	}
	return nil
}

func defaultAppConfig() map[string]any {
	return map[string]any{
		"pages": map[string]any{
			"imprint": map[string]any{
				"name": "Imprint",
				"text": "dictate development instance. Not for production use.",
			},
			"privacy": map[string]any{
				"name": "Privacy",
				"text": "Recordings and transcripts stay on this development machine.",
			},
		},
	}
}

func seedDocuments(ctx context.Context, svc *service.DocumentService, logger *slog.Logger) error {
	existing, err := svc.ListByOwner(ctx, DemoOwnerID, 1)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	if len(existing) > 0 {
		if logger != nil {
			logger.InfoContext(ctx, "demo documents already present, skipping", "owner", DemoOwnerID)
		}
		return nil
	}

	titles := []string{
		"Welcome to dictate",
		"Weekly standup notes",
		"Interview transcript draft",
	}
	for _, title := range titles {
		doc, createErr := svc.Create(ctx, DemoOwnerID, title)
		if createErr != nil {
			return fmt.Errorf("create document %q: %w", title, createErr)
		}
		if logger != nil {
			logger.InfoContext(ctx, "seeded document", "id", doc.ID, "title", doc.Title)
		}
	}
	return nil
}
