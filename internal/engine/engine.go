package engine

import (
	"log"
	"os"
	"sync"

	"github.com/mapforge/content-browser/config"
	"github.com/mapforge/content-browser/internal/downloads"
	"github.com/mapforge/content-browser/internal/errors"
	"github.com/mapforge/content-browser/internal/jobs"
	"github.com/mapforge/content-browser/model"
	"github.com/mapforge/content-browser/services"
)

// Engine manages multiple content libraries.
// It implements the services.LibraryManager interface.
type Engine struct {
	mu         sync.RWMutex
	libraries  map[string]*LibraryInstance
	dataDir    string
	jobManager *jobs.Manager
	downloads  *downloads.Manager
}

const maxConcurrentJobs = 3

// NewEngine creates a new content browser orchestrator rooted at dataDir.
func NewEngine(dataDir string) *Engine {
	eng := &Engine{
		libraries: make(map[string]*LibraryInstance),
		dataDir:   dataDir,
	}
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		log.Printf("Warning: Could not create data directory %s: %v. Proceeding without persistence for new libraries if loading fails.", dataDir, err)
	}

	downloadManager, err := downloads.NewManager(eng.downloadCacheDir())
	if err != nil {
		log.Printf("Warning: Could not initialize download cache: %v. Downloads disabled.", err)
	}
	eng.downloads = downloadManager

	eng.jobManager = jobs.NewManager(maxConcurrentJobs)
	eng.jobManager.Start()

	eng.loadLibrariesFromDisk()
	return eng
}

// Stop shuts down background job processing.
func (e *Engine) Stop() {
	e.jobManager.Stop()
}

// Downloads returns the engine's download cache manager. May be nil when the
// cache directory could not be created.
func (e *Engine) Downloads() *downloads.Manager {
	return e.downloads
}

// GetLibrary retrieves a library by its name.
func (e *Engine) GetLibrary(name string) (services.LibraryAccessor, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.libraries[name]
	if !exists {
		return nil, errors.NewLibraryNotFoundError(name)
	}
	return instance, nil
}

// GetLibrarySettings retrieves the settings for a specific library.
func (e *Engine) GetLibrarySettings(name string) (config.LibrarySettings, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.libraries[name]
	if !exists {
		return config.LibrarySettings{}, errors.NewLibraryNotFoundError(name)
	}
	return *instance.settings, nil // Return a copy
}

// ListLibraries returns the names of all loaded libraries.
func (e *Engine) ListLibraries() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.libraries))
	for name := range e.libraries {
		names = append(names, name)
	}
	return names
}

// GetJob retrieves a background job by ID.
func (e *Engine) GetJob(jobID string) (*model.Job, error) {
	return e.jobManager.GetJob(jobID)
}

// ListJobs returns the background jobs for a library, optionally filtered by
// status.
func (e *Engine) ListJobs(libraryName string, status *model.JobStatus) []*model.Job {
	return e.jobManager.ListJobs(libraryName, status)
}

// GetJobMetrics returns current job performance metrics.
func (e *Engine) GetJobMetrics() jobs.JobMetricsData {
	return e.jobManager.GetMetrics()
}

// GetJobSuccessRate returns the overall job success rate.
func (e *Engine) GetJobSuccessRate() float64 {
	return e.jobManager.GetJobSuccessRate()
}

// GetCurrentWorkload returns the number of currently active jobs.
func (e *Engine) GetCurrentWorkload() int64 {
	return e.jobManager.GetCurrentWorkload()
}
