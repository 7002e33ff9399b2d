// Package testing provides utilities and helpers for testing the content
// browser.
package testing

import (
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapforge/content-browser/config"
	"github.com/mapforge/content-browser/internal/engine"
	"github.com/mapforge/content-browser/model"
	"github.com/mapforge/content-browser/services"
)

// TestDirRegistry tracks test directories for cleanup
type TestDirRegistry struct {
	mu   sync.Mutex
	dirs []string
}

var globalTestDirRegistry = &TestDirRegistry{}

// RegisterTestDir registers a test directory for cleanup
func (r *TestDirRegistry) RegisterTestDir(dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dirs = append(r.dirs, dir)
}

// CleanupAll removes all registered test directories
func (r *TestDirRegistry) CleanupAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, dir := range r.dirs {
		if err := os.RemoveAll(dir); err != nil {
			fmt.Printf("Warning: Failed to remove test directory %s: %v\n", dir, err)
		}
	}
	r.dirs = nil
}

// CreateTestEngine creates a new engine instance for testing with automatic cleanup
func CreateTestEngine(t *testing.T) *engine.Engine {
	testDir := fmt.Sprintf("./test_data_%d", time.Now().UnixNano())
	globalTestDirRegistry.RegisterTestDir(testDir)

	eng := engine.NewEngine(testDir)
	t.Cleanup(eng.Stop)

	return eng
}

// CreateTestLibrary creates a test library with default settings
func CreateTestLibrary(t *testing.T, eng *engine.Engine, libraryName string) config.LibrarySettings {
	settings := config.LibrarySettings{
		Name:           libraryName,
		ScanExtensions: []string{".png", ".webp"},
		DefaultTags:    []string{"fantasy"},
	}

	err := eng.CreateLibrary(settings)
	require.NoError(t, err, "Failed to create test library")

	return settings
}

// AddTestAssets adds a set of test assets to a library
func AddTestAssets(t *testing.T, eng *engine.Engine, libraryName string) []model.Asset {
	accessor, err := eng.GetLibrary(libraryName)
	require.NoError(t, err, "Failed to get library accessor")

	assets := []model.Asset{
		{
			"assetID":      "tokens/forest/goblin.png",
			"filename":     "goblin.png",
			"path":         "tokens/forest/goblin.png",
			"display_name": "Goblin",
			"tags":         []string{"forest", "creature"},
			"scale":        float64(1),
		},
		{
			"assetID":      "tokens/forest/goblin_archer.png",
			"filename":     "goblin_archer.png",
			"path":         "tokens/forest/goblin_archer.png",
			"display_name": "Goblin Archer",
			"tags":         []string{"forest", "creature"},
			"scale":        float64(1),
		},
		{
			"assetID":      "maps/cave_entrance.png",
			"filename":     "cave_entrance.png",
			"path":         "maps/cave_entrance.png",
			"display_name": "Cave Entrance",
			"tags":         []string{"cave", "map"},
			"grid_width":   float64(20),
			"grid_height":  float64(30),
		},
	}

	err = accessor.AddAssets(assets)
	require.NoError(t, err, "Failed to add test assets")

	return assets
}

// JobPollingOptions configures job polling behavior
type JobPollingOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
	LogProgress  bool
}

// DefaultJobPollingOptions returns sensible defaults for job polling
func DefaultJobPollingOptions() JobPollingOptions {
	return JobPollingOptions{
		Timeout:      10 * time.Second,
		PollInterval: 100 * time.Millisecond,
		LogProgress:  true,
	}
}

// WaitForJobCompletion polls a job until it completes or times out
func WaitForJobCompletion(t *testing.T, jobManager services.JobManager, jobID string, opts JobPollingOptions) *model.Job {
	timeout := time.After(opts.Timeout)
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	var job *model.Job
	var err error

	for {
		select {
		case <-timeout:
			t.Fatalf("Job %s did not complete within %v timeout", jobID, opts.Timeout)
		case <-ticker.C:
			job, err = jobManager.GetJob(jobID)
			require.NoError(t, err, "Failed to get job status")

			switch job.Status {
			case model.JobStatusCompleted:
				if opts.LogProgress {
					t.Logf("Job %s completed successfully in %v", jobID, job.CompletedAt.Sub(job.CreatedAt))
				}
				return job
			case model.JobStatusFailed:
				t.Fatalf("Job %s failed: %s", jobID, job.Error)
			case model.JobStatusRunning:
				if opts.LogProgress && job.Progress != nil {
					t.Logf("Job %s progress: %d/%d - %s",
						jobID,
						job.Progress.Current,
						job.Progress.Total,
						job.Progress.Message)
				}
			}
		}
	}
}

// AssertJobCompleted verifies that a job completed successfully
func AssertJobCompleted(t *testing.T, job *model.Job, expectedType model.JobType, expectedLibrary string) {
	assert.Equal(t, model.JobStatusCompleted, job.Status, "Job should be completed")
	assert.Equal(t, expectedType, job.Type, "Job type should match")
	assert.Equal(t, expectedLibrary, job.LibraryName, "Job library name should match")
	assert.NotNil(t, job.CompletedAt, "Job should have completion timestamp")
	assert.Empty(t, job.Error, "Job should not have error")
}

// SearchTestCase represents a test case for search operations
type SearchTestCase struct {
	Name          string
	Query         services.SearchQuery
	ExpectedCount int
	ExpectedFirst string // Expected first result asset ID
	ValidateFunc  func(t *testing.T, results *services.SearchResult)
}

// RunSearchTests runs a suite of search tests against a library
func RunSearchTests(t *testing.T, accessor services.LibraryAccessor, tests []SearchTestCase) {
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			results, err := accessor.Search(tt.Query)
			require.NoError(t, err, "Search should not fail")

			assert.Equal(t, tt.ExpectedCount, results.Total, "Result count should match")

			if tt.ExpectedFirst != "" && len(results.Hits) > 0 {
				firstAssetID, exists := results.Hits[0].Asset.GetAssetID()
				require.True(t, exists, "First result should have asset ID")
				assert.Equal(t, tt.ExpectedFirst, firstAssetID, "First result should match expected")
			}

			if tt.ValidateFunc != nil {
				tt.ValidateFunc(t, &results)
			}
		})
	}
}

// CleanupTestDirs should be called in TestMain to clean up all test directories
func CleanupTestDirs() {
	globalTestDirRegistry.CleanupAll()
}

// TestMain ensures proper cleanup of test directories
func TestMain(m *testing.M) {
	code := m.Run()
	CleanupTestDirs()
	os.Exit(code)
}
