package services

import (
	"github.com/mapforge/content-browser/config"
	"github.com/mapforge/content-browser/model"
)

// HitResult represents a single asset in the search results, including the
// relevance score the query engine assigned to it.
type HitResult struct {
	Asset model.Asset `json:"asset"`
	Score float64     `json:"score"`
}

type SearchResult struct {
	Hits     []HitResult `json:"hits"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Took     int64       `json:"took"`     // milliseconds
	QueryId  string      `json:"query_id"` // unique UUID for this search query
}

type SearchQuery struct {
	QueryString string   `json:"query"`
	Folders     []string `json:"folders,omitempty"` // Optional: restrict to assets under these folder paths
	Page        int      `json:"page"`
	PageSize    int      `json:"page_size"`
}

// Cataloger defines operations for adding assets to a library
type Cataloger interface {
	AddAssets(assets []model.Asset) error
	DeleteAllAssets() error
	DeleteAsset(assetID string) error
}

// Searcher defines operations for querying a library
type Searcher interface {
	Search(query SearchQuery) (SearchResult, error)
}

// Browser defines read operations the content grid uses outside of search
type Browser interface {
	GetAsset(assetID string) (model.Asset, error)
	ListAssets() []model.Asset
	ListFolders() []string
}

// LibraryManager manages the lifecycle of content libraries
type LibraryManager interface {
	CreateLibrary(settings config.LibrarySettings) error
	GetLibrary(name string) (LibraryAccessor, error) // LibraryAccessor combines Cataloger, Searcher, and Browser
	GetLibrarySettings(name string) (config.LibrarySettings, error)
	DeleteLibrary(name string) error
	ListLibraries() []string
	PersistLibraryData(libraryName string) error
}

// LibraryManagerWithAsyncScan extends LibraryManager with background scans of
// a library's content directory. Returns the job ID.
type LibraryManagerWithAsyncScan interface {
	LibraryManager
	ScanLibraryAsync(name string) (string, error)
}

// JobManager defines operations for managing background jobs
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(libraryName string, status *model.JobStatus) []*model.Job
}

type LibraryAccessor interface {
	Cataloger
	Searcher
	Browser
	Settings() config.LibrarySettings
}
