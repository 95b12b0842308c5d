//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxDocumentTitleLen = 255

// Document is a transcription document owned by a user. Access is gated by
// ownership (login) or by a share token scoped to the document.
type Document struct {
	ID        string    `db:"id"         json:"id"`
	Title     string    `db:"title"      json:"title"`
	OwnerID   string    `db:"owner_id"   json:"owner_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CreateDocumentRequest carries the inputs for creating a document.
type CreateDocumentRequest struct {
	Title   string `json:"title"`
	OwnerID string `json:"-"`
}

// Validate checks the request fields.
func (r *CreateDocumentRequest) Validate() error {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return errors.New("title is required")
	}
	if utf8.RuneCountInString(title) > maxDocumentTitleLen {
		return errors.New("title exceeds maximum length")
	}
	if strings.TrimSpace(r.OwnerID) == "" {
		return errors.New("owner is required")
	}
	return nil
}
