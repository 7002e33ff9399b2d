package engine

import (
	"fmt"

	"github.com/mapforge/content-browser/config"
	"github.com/mapforge/content-browser/internal/errors"
	"github.com/mapforge/content-browser/internal/library"
	"github.com/mapforge/content-browser/internal/search"
	"github.com/mapforge/content-browser/model"
	"github.com/mapforge/content-browser/services"
	"github.com/mapforge/content-browser/store"
)

// LibraryInstance holds all components and services for a single content
// library. It implements the services.LibraryAccessor interface.
type LibraryInstance struct {
	settings   *config.LibrarySettings
	AssetStore *store.AssetStore
	searcher   *search.Service
}

// NewLibraryInstance creates and initializes a new LibraryInstance.
func NewLibraryInstance(settings config.LibrarySettings) (*LibraryInstance, error) {
	if settings.Name == "" {
		return nil, fmt.Errorf("library name cannot be empty in settings")
	}
	settings.ApplyDefaults()

	assetStore := &store.AssetStore{
		Assets:                 make(map[uint32]model.Asset),
		ExternalIDtoInternalID: make(map[string]uint32),
		NextID:                 0, // Start internal IDs from 0
	}

	searchService, err := search.NewService(assetStore, &settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create search service: %w", err)
	}

	return &LibraryInstance{
		settings:   &settings,
		AssetStore: assetStore,
		searcher:   searchService,
	}, nil
}

// AddAssets stores or replaces the given assets.
// This satisfies a part of the services.LibraryAccessor interface.
func (i *LibraryInstance) AddAssets(assets []model.Asset) error {
	for idx, asset := range assets {
		if err := i.AssetStore.Upsert(asset); err != nil {
			return fmt.Errorf("failed to add asset at position %d: %w", idx, err)
		}
	}
	return nil
}

// DeleteAllAssets removes every asset from the library.
// This satisfies a part of the services.LibraryAccessor interface.
func (i *LibraryInstance) DeleteAllAssets() error {
	i.AssetStore.DeleteAll()
	return nil
}

// DeleteAsset removes a single asset by its ID.
// This satisfies a part of the services.LibraryAccessor interface.
func (i *LibraryInstance) DeleteAsset(assetID string) error {
	if !i.AssetStore.Delete(assetID) {
		return errors.NewAssetNotFoundError(assetID, i.settings.Name)
	}
	return nil
}

// Search delegates to the underlying search service.
// This satisfies a part of the services.LibraryAccessor interface.
func (i *LibraryInstance) Search(query services.SearchQuery) (services.SearchResult, error) {
	return i.searcher.Search(query)
}

// GetAsset returns a single asset by its ID.
func (i *LibraryInstance) GetAsset(assetID string) (model.Asset, error) {
	asset, ok := i.AssetStore.Get(assetID)
	if !ok {
		return nil, errors.NewAssetNotFoundError(assetID, i.settings.Name)
	}
	return asset, nil
}

// ListAssets returns all assets in stored order.
func (i *LibraryInstance) ListAssets() []model.Asset {
	return i.AssetStore.Snapshot()
}

// ListFolders returns the folder paths the library's assets live in.
func (i *LibraryInstance) ListFolders() []string {
	return library.FoldersOf(i.AssetStore.Snapshot())
}

// Settings returns the configuration settings for this library.
func (i *LibraryInstance) Settings() config.LibrarySettings {
	return *i.settings
}
