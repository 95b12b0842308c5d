package ports

import (
	"context"
	"time"
)

// ConfigSource fetches the raw remote configuration document.
// The returned bytes are a freeform JSON object; typed extraction happens in
// the config service.
type ConfigSource interface {
	Fetch(ctx context.Context) (raw []byte, updatedAt time.Time, err error)
}
