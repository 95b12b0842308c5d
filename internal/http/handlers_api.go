package httpx

import (
	"errors"
	"net/http"
	"time"

	"github.com/dictate-io/dictate/internal/service"
)

// APIHandlers serves the JSON endpoints.
type APIHandlers struct {
	Documents *service.DocumentService
	Config    *service.ConfigService
	BasePath  string
}

// shareRequest is the body for creating a share token.
type shareRequest struct {
	Name         string `json:"name"`
	ExpiresHours int    `json:"expires_hours,omitempty"`
}

// shareResponse is returned when a share token is created.
type shareResponse struct {
	Token      string     `json:"token"`
	DocumentID string     `json:"document_id"`
	Name       string     `json:"name"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	ShareURL   string     `json:"share_url"`
}

// ShareDocument issues a share token for a document the caller owns.
// POST /api/documents/{documentID}/share.
func (h *APIHandlers) ShareDocument(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	var req shareRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.ExpiresHours < 0 {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation",
			Err:     errors.New("expires_hours must not be negative"),
		})
		return
	}

	documentID := r.PathValue("documentID")
	ttl := time.Duration(req.ExpiresHours) * time.Hour

	tok, err := h.Documents.Share(r.Context(), documentID, session.UserID, req.Name, ttl)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, shareResponse{
		Token:      tok.Token,
		DocumentID: tok.DocumentID,
		Name:       tok.Name,
		ExpiresAt:  tok.ExpiresAt,
		ShareURL:   h.BasePath + "/document/" + tok.DocumentID + "?share_token=" + tok.Token,
	})
}

// revokeRequest is the body for revoking a share token.
type revokeRequest struct {
	Token string `json:"token"`
}

// RevokeShare revokes a share token for a document the caller owns.
// DELETE /api/documents/{documentID}/share.
func (h *APIHandlers) RevokeShare(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	var req revokeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Token == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation",
			Err:     errors.New("token is required"),
		})
		return
	}

	if err := h.Documents.Revoke(r.Context(), r.PathValue("documentID"), session.UserID, req.Token); err != nil {
		WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetConfig returns the current remote configuration snapshot.
// GET /api/config.
func (h *APIHandlers) GetConfig(w http.ResponseWriter, r *http.Request) {
	snap := h.Config.Snapshot()

	pages := make(map[string]map[string]string, len(snap.Config.Pages))
	for id, page := range snap.Config.Pages {
		pages[id] = map[string]string{"name": page.Name, "text": page.Text}
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"loading":                 snap.IsLoading,
		"logged_out_redirect_url": snap.Config.LoggedOutRedirectURL,
		"pages":                   pages,
		"updated_at":              snap.UpdatedAt,
	})
}
