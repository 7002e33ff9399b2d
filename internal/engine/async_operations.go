package engine

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mapforge/content-browser/internal/errors"
	"github.com/mapforge/content-browser/internal/library"
	"github.com/mapforge/content-browser/model"
)

// ScanLibraryAsync rescans a library's content directory in the background
// and replaces the stored assets with the scan results.
func (e *Engine) ScanLibraryAsync(name string) (string, error) {
	e.mu.RLock()
	instance, exists := e.libraries[name]
	e.mu.RUnlock()

	if !exists {
		return "", errors.NewLibraryNotFoundError(name)
	}
	if instance.settings.ContentDir == "" {
		return "", fmt.Errorf("library '%s' has no content directory configured", name)
	}

	jobID := e.jobManager.CreateJob(model.JobTypeScanLibrary, name, map[string]string{
		"operation":   "scan_library",
		"content_dir": instance.settings.ContentDir,
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return e.executeScanLibraryJob(ctx, name, jobID)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start scan library job: %w", err)
	}

	return jobID, nil
}

// executeScanLibraryJob executes the scan library job.
func (e *Engine) executeScanLibraryJob(_ context.Context, name string, jobID string) error {
	e.mu.RLock()
	instance, exists := e.libraries[name]
	e.mu.RUnlock()

	if !exists {
		return errors.NewLibraryNotFoundError(name)
	}

	e.jobManager.UpdateJobProgress(jobID, 0, 0, "Scanning content directory")
	assets, err := library.ScanDir(*instance.settings)
	if err != nil {
		return fmt.Errorf("failed to scan content directory for library '%s': %w", name, err)
	}

	e.jobManager.UpdateJobProgress(jobID, 0, len(assets), "Replacing stored assets")
	if err := instance.DeleteAllAssets(); err != nil {
		return fmt.Errorf("failed to clear library '%s' before scan import: %w", name, err)
	}
	if err := instance.AddAssets(assets); err != nil {
		return fmt.Errorf("failed to import scanned assets into library '%s': %w", name, err)
	}
	e.jobManager.UpdateJobProgress(jobID, len(assets), len(assets), "Scan complete")

	if err := e.PersistLibraryData(name); err != nil {
		return fmt.Errorf("failed to persist scanned library '%s': %w", name, err)
	}

	log.Printf("Scanned %d assets into library '%s' (async).", len(assets), name)
	return nil
}

// AddAssetsAsync adds assets to a library asynchronously.
func (e *Engine) AddAssetsAsync(libraryName string, assets []model.Asset) (string, error) {
	e.mu.RLock()
	if _, exists := e.libraries[libraryName]; !exists {
		e.mu.RUnlock()
		return "", errors.NewLibraryNotFoundError(libraryName)
	}
	e.mu.RUnlock()

	jobID := e.jobManager.CreateJob(model.JobTypeAddAssets, libraryName, map[string]string{
		"operation":   "add_assets",
		"asset_count": fmt.Sprintf("%d", len(assets)),
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return e.executeAddAssetsJob(ctx, libraryName, assets, jobID)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start add assets job: %w", err)
	}

	return jobID, nil
}

// executeAddAssetsJob executes the add assets job.
func (e *Engine) executeAddAssetsJob(_ context.Context, libraryName string, assets []model.Asset, jobID string) error {
	e.mu.RLock()
	instance, exists := e.libraries[libraryName]
	e.mu.RUnlock()

	if !exists {
		return errors.NewLibraryNotFoundError(libraryName)
	}

	e.jobManager.UpdateJobProgress(jobID, 0, len(assets), "Starting asset addition")
	if err := instance.AddAssets(assets); err != nil {
		return fmt.Errorf("failed to add assets to library '%s': %w", libraryName, err)
	}
	e.jobManager.UpdateJobProgress(jobID, len(assets), len(assets), "Assets added successfully")

	if err := e.PersistLibraryData(libraryName); err != nil {
		return fmt.Errorf("failed to persist updated library '%s': %w", libraryName, err)
	}

	log.Printf("Added %d assets to library '%s' (async).", len(assets), libraryName)
	return nil
}

// DeleteAssetAsync deletes a specific asset from a library asynchronously.
func (e *Engine) DeleteAssetAsync(libraryName, assetID string) (string, error) {
	e.mu.RLock()
	if _, exists := e.libraries[libraryName]; !exists {
		e.mu.RUnlock()
		return "", errors.NewLibraryNotFoundError(libraryName)
	}
	e.mu.RUnlock()

	jobID := e.jobManager.CreateJob(model.JobTypeDeleteAsset, libraryName, map[string]string{
		"operation": "delete_asset",
		"asset_id":  assetID,
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return e.executeDeleteAssetJob(ctx, libraryName, assetID)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start delete asset job: %w", err)
	}

	return jobID, nil
}

// executeDeleteAssetJob executes the delete asset job.
func (e *Engine) executeDeleteAssetJob(_ context.Context, libraryName, assetID string) error {
	e.mu.RLock()
	instance, exists := e.libraries[libraryName]
	e.mu.RUnlock()

	if !exists {
		return errors.NewLibraryNotFoundError(libraryName)
	}

	if err := instance.DeleteAsset(assetID); err != nil {
		return fmt.Errorf("failed to delete asset '%s' from library '%s': %w", assetID, libraryName, err)
	}

	if err := e.PersistLibraryData(libraryName); err != nil {
		return fmt.Errorf("failed to persist updated library '%s': %w", libraryName, err)
	}

	log.Printf("Deleted asset '%s' from library '%s' (async).", assetID, libraryName)
	return nil
}

// DeleteAllAssetsAsync deletes all assets from a library asynchronously.
func (e *Engine) DeleteAllAssetsAsync(libraryName string) (string, error) {
	e.mu.RLock()
	if _, exists := e.libraries[libraryName]; !exists {
		e.mu.RUnlock()
		return "", errors.NewLibraryNotFoundError(libraryName)
	}
	e.mu.RUnlock()

	jobID := e.jobManager.CreateJob(model.JobTypeDeleteAllAsset, libraryName, map[string]string{
		"operation": "delete_all_assets",
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return e.executeDeleteAllAssetsJob(ctx, libraryName)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start delete all assets job: %w", err)
	}

	return jobID, nil
}

// executeDeleteAllAssetsJob executes the delete all assets job.
func (e *Engine) executeDeleteAllAssetsJob(_ context.Context, libraryName string) error {
	e.mu.RLock()
	instance, exists := e.libraries[libraryName]
	e.mu.RUnlock()

	if !exists {
		return errors.NewLibraryNotFoundError(libraryName)
	}

	if err := instance.DeleteAllAssets(); err != nil {
		return fmt.Errorf("failed to delete all assets from library '%s': %w", libraryName, err)
	}

	if err := e.PersistLibraryData(libraryName); err != nil {
		return fmt.Errorf("failed to persist updated library '%s': %w", libraryName, err)
	}

	log.Printf("Deleted all assets from library '%s' (async).", libraryName)
	return nil
}

// DeleteLibraryAsync deletes a library asynchronously.
func (e *Engine) DeleteLibraryAsync(name string) (string, error) {
	e.mu.RLock()
	if _, exists := e.libraries[name]; !exists {
		e.mu.RUnlock()
		return "", errors.NewLibraryNotFoundError(name)
	}
	e.mu.RUnlock()

	jobID := e.jobManager.CreateJob(model.JobTypeDeleteLibrary, name, map[string]string{
		"operation": "delete_library",
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return e.executeDeleteLibraryJob(ctx, name)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start delete library job: %w", err)
	}

	return jobID, nil
}

// executeDeleteLibraryJob executes the delete library job.
func (e *Engine) executeDeleteLibraryJob(_ context.Context, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.libraries[name]; !exists {
		return errors.NewLibraryNotFoundError(name)
	}
	delete(e.libraries, name)

	libraryPath := filepath.Join(e.dataDir, name)
	if err := os.RemoveAll(libraryPath); err != nil {
		return fmt.Errorf("failed to remove library directory %s: %w", libraryPath, err)
	}

	log.Printf("Library '%s' deleted successfully (async).", name)
	return nil
}

// DownloadAssetAsync fetches remote content into the download cache in the
// background.
func (e *Engine) DownloadAssetAsync(libraryName, url string) (string, error) {
	if e.downloads == nil {
		return "", fmt.Errorf("download cache is not available")
	}
	if url == "" {
		return "", fmt.Errorf("download URL cannot be empty")
	}

	jobID := e.jobManager.CreateJob(model.JobTypeDownloadAsset, libraryName, map[string]string{
		"operation": "download_asset",
		"url":       url,
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		reader, err := e.downloads.Fetch(url)
		if err != nil {
			return fmt.Errorf("failed to download '%s': %w", url, err)
		}
		return reader.Close()
	})
	if err != nil {
		return "", fmt.Errorf("failed to start download job: %w", err)
	}

	return jobID, nil
}

// PruneCacheAsync removes download cache entries older than maxAge in the
// background.
func (e *Engine) PruneCacheAsync(maxAge time.Duration) (string, error) {
	if e.downloads == nil {
		return "", fmt.Errorf("download cache is not available")
	}

	jobID := e.jobManager.CreateJob(model.JobTypePruneCache, "", map[string]string{
		"operation": "prune_cache",
		"max_age":   maxAge.String(),
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		pruned, err := e.downloads.Prune(maxAge)
		if err != nil {
			return fmt.Errorf("failed to prune download cache: %w", err)
		}
		log.Printf("Pruned %d download cache entries (async).", pruned)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to start prune cache job: %w", err)
	}

	return jobID, nil
}
