package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/prefs"
	"github.com/pkordes/travel-planner/internal/repo"
)

// PreferenceReader serves the current process-wide preferences.
type PreferenceReader interface {
	Current() prefs.Preferences
}

// ExplorerPage is one page of raw collection rows.
type ExplorerPage struct {
	Collection string           `json:"collection"`
	Rows       []map[string]any `json:"rows"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Total      int              `json:"total"`
}

// ExplorerService backs the read-only collection browser.
type ExplorerService struct {
	repo  repo.ExplorerRepo
	prefs PreferenceReader
}

// NewExplorerService constructs an ExplorerService.
func NewExplorerService(r repo.ExplorerRepo, p PreferenceReader) *ExplorerService {
	return &ExplorerService{repo: r, prefs: p}
}

// Collections lists the browsable collection names.
func (s *ExplorerService) Collections() []string {
	return append([]string(nil), repo.ExplorerCollections...)
}

// Browse returns one page of collection. Returns domain.ErrForbidden when
// the explorer is switched off in preferences.
func (s *ExplorerService) Browse(ctx context.Context, ownerID uuid.UUID, collection string, p domain.PaginationParams) (ExplorerPage, error) {
	if !s.prefs.Current().ExplorerEnabled {
		return ExplorerPage{}, fmt.Errorf("service.ExplorerService.Browse: %w: explorer is disabled", domain.ErrForbidden)
	}
	rows, total, err := s.repo.Browse(ctx, ownerID, collection, p)
	if err != nil {
		return ExplorerPage{}, fmt.Errorf("service.ExplorerService.Browse: %w", err)
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	return ExplorerPage{Collection: collection, Rows: rows, Page: p.Page, Limit: p.Limit, Total: total}, nil
}
