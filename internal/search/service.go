package search

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mapforge/content-browser/config"
	"github.com/mapforge/content-browser/internal/library"
	"github.com/mapforge/content-browser/internal/query"
	"github.com/mapforge/content-browser/services"
	"github.com/mapforge/content-browser/store"
)

// Service implements the search logic for a single library.
// It fulfills the services.Searcher interface.
type Service struct {
	assetStore *store.AssetStore
	settings   *config.LibrarySettings
}

// NewService creates a new search Service.
func NewService(assetStore *store.AssetStore, settings *config.LibrarySettings) (*Service, error) {
	if assetStore == nil {
		return nil, fmt.Errorf("asset store cannot be nil")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}
	return &Service{
		assetStore: assetStore,
		settings:   settings,
	}, nil
}

const defaultPageSize = 50

// Search ranks the library's assets against the query string, after an
// optional folder prefilter. A blank or unparseable query keeps every asset
// in its stored order with score 0.
func (s *Service) Search(q services.SearchQuery) (services.SearchResult, error) {
	startTime := time.Now()

	assets := s.assetStore.Snapshot()
	assets = library.FilterByFolders(assets, q.Folders)

	ranked := query.Rank(assets, q.QueryString)

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = s.settings.DefaultPageSize
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(ranked) {
		start = len(ranked)
	}
	if end > len(ranked) {
		end = len(ranked)
	}

	hits := make([]services.HitResult, 0, end-start)
	for _, scored := range ranked[start:end] {
		hits = append(hits, services.HitResult{
			Asset: scored.Asset,
			Score: scored.Score,
		})
	}

	return services.SearchResult{
		Hits:     hits,
		Total:    len(ranked),
		Page:     page,
		PageSize: pageSize,
		Took:     time.Since(startTime).Milliseconds(),
		QueryId:  uuid.New().String(),
	}, nil
}
