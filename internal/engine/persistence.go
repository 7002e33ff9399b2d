package engine

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mapforge/content-browser/config"
	"github.com/mapforge/content-browser/internal/errors"
	"github.com/mapforge/content-browser/internal/persistence"
	"github.com/mapforge/content-browser/internal/search"
	"github.com/mapforge/content-browser/model"
	"github.com/mapforge/content-browser/store"
)

const (
	dataDirPerm          = 0755
	settingsFile         = "settings.gob"
	assetStoreFile       = "asset_store.gob"
	downloadCacheDirName = "download_cache"
)

func (e *Engine) downloadCacheDir() string {
	return filepath.Join(e.dataDir, downloadCacheDirName)
}

// loadLibrariesFromDisk loads all libraries from the data directory.
func (e *Engine) loadLibrariesFromDisk() {
	log.Printf("Loading libraries from disk: %s", e.dataDir)

	items, err := os.ReadDir(e.dataDir)
	if err != nil {
		log.Printf("Warning: Failed to read data directory %s: %v. No libraries loaded.", e.dataDir, err)
		return
	}

	for _, item := range items {
		if !item.IsDir() || item.Name() == downloadCacheDirName {
			continue
		}
		libraryName := item.Name()
		libraryPath := filepath.Join(e.dataDir, libraryName)
		log.Printf("Attempting to load library: %s", libraryName)

		var settings config.LibrarySettings
		settingsPath := filepath.Join(libraryPath, settingsFile)
		if err := persistence.LoadGob(settingsPath, &settings); err != nil {
			log.Printf("Warning: Failed to load settings for library %s from %s: %v. Skipping this library.", libraryName, settingsPath, err)
			continue
		}

		// Settings name should match directory name
		if settings.Name != libraryName {
			log.Printf("Warning: Library name in settings ('%s') does not match directory name ('%s') for path %s. Skipping this library.", settings.Name, libraryName, libraryPath)
			continue
		}
		settings.ApplyDefaults()

		assetStore := &store.AssetStore{}
		asPath := filepath.Join(libraryPath, assetStoreFile)
		if err := persistence.LoadGob(asPath, assetStore); err != nil {
			if os.IsNotExist(err) {
				log.Printf("Info: Asset store file %s not found for library %s. Initializing empty store.", asPath, libraryName)
			} else {
				log.Printf("Warning: Failed to load asset store for library %s from %s: %v. Proceeding with empty store.", libraryName, asPath, err)
			}
			assetStore.Assets = make(map[uint32]model.Asset)
			assetStore.ExternalIDtoInternalID = make(map[string]uint32)
		}

		searchService, err := search.NewService(assetStore, &settings)
		if err != nil {
			log.Printf("Error creating search service for loaded library %s: %v. Skipping.", libraryName, err)
			continue
		}

		instance := &LibraryInstance{
			settings:   &settings,
			AssetStore: assetStore,
			searcher:   searchService,
		}

		e.libraries[libraryName] = instance
		log.Printf("Successfully loaded library: %s (%d assets)", libraryName, assetStore.Len())
	}
}

// PersistLibraryData persists the data for a specific library to disk.
func (e *Engine) PersistLibraryData(libraryName string) error {
	e.mu.RLock()
	instance, exists := e.libraries[libraryName]
	e.mu.RUnlock()

	if !exists {
		return errors.NewLibraryNotFoundError(libraryName)
	}

	return e.persistLibraryUnsafe(libraryName, *instance.settings, instance)
}

// persistLibraryUnsafe persists a library instance to disk.
// This method assumes the caller has appropriate locking.
func (e *Engine) persistLibraryUnsafe(name string, settings config.LibrarySettings, instance *LibraryInstance) error {
	libraryPath := filepath.Join(e.dataDir, name)
	if err := os.MkdirAll(libraryPath, dataDirPerm); err != nil {
		return fmt.Errorf("failed to create directory for library %s: %w", name, err)
	}

	if err := persistence.SaveGob(filepath.Join(libraryPath, settingsFile), settings); err != nil {
		return fmt.Errorf("failed to save settings for library %s: %w", name, err)
	}
	// AssetStore takes its own RLock in GobEncode
	if err := persistence.SaveGob(filepath.Join(libraryPath, assetStoreFile), instance.AssetStore); err != nil {
		return fmt.Errorf("failed to save asset store for library %s: %w", name, err)
	}

	return nil
}
