package service

import (
	"sort"

	"github.com/dictate-io/dictate/internal/domain/model"
	apperrors "github.com/dictate-io/dictate/internal/errors"
)

// PageService resolves public content pages out of the remote configuration.
// Pages are pure config data: adding one requires no deploy, just a config
// update.
type PageService struct {
	config *ConfigService
}

// NewPageService constructs a new PageService.
func NewPageService(config *ConfigService) *PageService {
	return &PageService{config: config}
}

// Get returns the page with the given ID from the current config snapshot.
// The bool reports whether the config has loaded; callers render a loading
// view when it has not, rather than a premature not-found.
func (s *PageService) Get(pageID string) (*model.ConfigPage, bool, error) {
	snap := s.config.Snapshot()
	if snap.IsLoading {
		return nil, false, nil
	}

	page, ok := snap.Config.Pages[pageID]
	if !ok {
		return nil, true, apperrors.NotFoundf("page %q not found", pageID)
	}
	return &page, true, nil
}

// List returns the IDs of all configured pages in stable order. An unloaded
// config lists as empty.
func (s *PageService) List() []string {
	snap := s.config.Snapshot()
	ids := make([]string, 0, len(snap.Config.Pages))
	for id := range snap.Config.Pages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
