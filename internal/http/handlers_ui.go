package httpx

import (
	"log/slog"
	"net/http"
	"strings"

	domainauth "github.com/dictate-io/dictate/internal/domain/auth"
	"github.com/dictate-io/dictate/internal/domain/model"
	apperrors "github.com/dictate-io/dictate/internal/errors"
	"github.com/dictate-io/dictate/internal/service"
)

// UIHandlers serves the HTML views.
type UIHandlers struct {
	Renderer  *TemplateRenderer
	Documents *service.DocumentService
	Pages     *service.PageService
	BasePath  string
	Logger    *slog.Logger
}

func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// PageData is the payload shared by all view templates.
type PageData struct {
	CurrentPage string
	LoggedIn    bool
	Session     *domainauth.Session

	// Page-specific content. Only the fields a template uses are set.
	Documents []*model.Document
	Document  *model.Document
	Page      *model.ConfigPage
	PageID    string
	Error     string
}

func (h *UIHandlers) pageData(r *http.Request, currentPage string) PageData {
	session := GetSessionFromContext(r.Context())
	return PageData{
		CurrentPage: currentPage,
		LoggedIn:    session != nil,
		Session:     session,
	}
}

// LoginPage renders the login view.
// GET /login.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, http.StatusOK, templateLogin, h.pageData(r, PageLogin))
}

// Home renders the home view with the user's documents.
// GET /{$}.
//
// The guard admits logged-out visitors while the config is still loading, so
// an empty document list here is a legitimate state, not an error.
func (h *UIHandlers) Home(w http.ResponseWriter, r *http.Request) {
	data := h.pageData(r, PageHome)

	if data.Session != nil {
		docs, err := h.Documents.ListByOwner(r.Context(), data.Session.UserID, maxHomeDocuments)
		if err != nil {
			h.logger().ErrorContext(r.Context(), "list documents failed", "error", err)
			data.Error = "Your documents could not be loaded."
		} else {
			data.Documents = docs
		}
	}

	h.Renderer.Render(w, http.StatusOK, templateHome, data)
}

// About renders the about view.
// GET /about.
func (h *UIHandlers) About(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, http.StatusOK, templateAbout, h.pageData(r, PageAbout))
}

// Page renders a config-driven informational page.
// GET /page/{pageID}.
func (h *UIHandlers) Page(w http.ResponseWriter, r *http.Request) {
	pageID := r.PathValue("pageID")

	page, loaded, err := h.Pages.Get(pageID)
	if !loaded {
		h.Loading(w, r)
		return
	}
	if err != nil {
		h.NotFound(w, r)
		return
	}

	data := h.pageData(r, PageContent)
	data.Page = page
	data.PageID = pageID
	h.Renderer.Render(w, http.StatusOK, templatePage, data)
}

// Document renders the document view. Access was already settled by the
// guard; a share token grants the same read view a login does.
// GET /document/{documentID}.
func (h *UIHandlers) Document(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Documents.Get(r.Context(), r.PathValue("documentID"))
	if err != nil {
		if apperrors.IsNotFound(err) {
			h.NotFound(w, r)
			return
		}
		h.logger().ErrorContext(r.Context(), "load document failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := h.pageData(r, PageDocument)
	data.Document = doc
	h.Renderer.Render(w, http.StatusOK, templateDocument, data)
}

// NewDocumentForm renders the new document form.
// GET /new.
func (h *UIHandlers) NewDocumentForm(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, http.StatusOK, templateNew, h.pageData(r, PageNew))
}

// NewDocumentCreate creates a document and redirects to it.
// POST /new.
func (h *UIHandlers) NewDocumentCreate(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		// The guard admits only logged-in users; a missing session here
		// means the route was wired without it.
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := r.ParseForm(); err != nil {
		data := h.pageData(r, PageNew)
		data.Error = "The form could not be read."
		h.Renderer.Render(w, http.StatusBadRequest, templateNew, data)
		return
	}

	title := strings.TrimSpace(r.PostFormValue("title"))
	doc, err := h.Documents.Create(r.Context(), session.UserID, title)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "create document failed", "error", err)
		data := h.pageData(r, PageNew)
		data.Error = "The document could not be created."
		h.Renderer.Render(w, http.StatusInternalServerError, templateNew, data)
		return
	}

	http.Redirect(w, r, h.BasePath+"/document/"+doc.ID, http.StatusSeeOther)
}

// NotFound renders the not-found view for any route nothing else matched.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, http.StatusNotFound, templateNotFound, h.pageData(r, PageNotFound))
}

// Loading renders the loading view used when a guard defers its decision.
func (h *UIHandlers) Loading(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, http.StatusOK, templateLoading, h.pageData(r, PageLoading))
}
