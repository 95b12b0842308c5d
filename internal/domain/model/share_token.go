//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

// ShareToken grants access to a single document without a full login.
// A nil ExpiresAt means the token does not expire.
type ShareToken struct {
	Token      string     `db:"token"       json:"token"`
	DocumentID string     `db:"document_id" json:"document_id"`
	Name       string     `db:"name"        json:"name"`
	ExpiresAt  *time.Time `db:"expires_at"  json:"expires_at"`
	CreatedAt  time.Time  `db:"created_at"  json:"created_at"`
}

// Expired reports whether the token has passed its expiry at the given time.
func (t ShareToken) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && now.After(*t.ExpiresAt)
}

// CreateShareTokenRequest carries the inputs for issuing a share token.
type CreateShareTokenRequest struct {
	DocumentID string     `json:"-"`
	Name       string     `json:"name"`
	ExpiresAt  *time.Time `json:"expires_at"`
}

// Validate checks the request fields.
func (r *CreateShareTokenRequest) Validate() error {
	if strings.TrimSpace(r.DocumentID) == "" {
		return errors.New("document ID is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}
