package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mapforge/content-browser/config"
	"github.com/mapforge/content-browser/internal/engine"
	"github.com/mapforge/content-browser/model"
	"github.com/mapforge/content-browser/services"
)

func setupTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	testDir, err := os.MkdirTemp("", "api_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	eng := engine.NewEngine(testDir)
	t.Cleanup(func() {
		eng.Stop()
		if err := os.RemoveAll(testDir); err != nil {
			t.Logf("Failed to remove test directory: %v", err)
		}
	})
	return eng
}

func setupTestRouter(eng *engine.Engine) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, eng)
	return router
}

func doJSONRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seedLibrary(t *testing.T, eng *engine.Engine, name string, assets ...model.Asset) {
	t.Helper()
	if err := eng.CreateLibrary(config.LibrarySettings{Name: name}); err != nil {
		t.Fatalf("Failed to create library: %v", err)
	}
	if len(assets) == 0 {
		return
	}
	accessor, err := eng.GetLibrary(name)
	if err != nil {
		t.Fatalf("Failed to get library: %v", err)
	}
	if err := accessor.AddAssets(assets); err != nil {
		t.Fatalf("Failed to seed assets: %v", err)
	}
}

func TestHealthCheckHandler(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t))

	w := doJSONRequest(t, router, "GET", "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestCreateLibraryHandler(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name: "valid library creation",
			requestBody: config.LibrarySettings{
				Name:           "forest-tokens",
				ScanExtensions: []string{".png", ".webp"},
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid JSON",
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing library name",
			requestBody:    config.LibrarySettings{ScanExtensions: []string{".png"}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "duplicate library",
			requestBody:    config.LibrarySettings{Name: "forest-tokens"},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSONRequest(t, router, "POST", "/libraries", tt.requestBody)
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d (body: %s)", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestListLibrariesHandler(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)
	seedLibrary(t, eng, "tokens")

	w := doJSONRequest(t, router, "GET", "/libraries", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp struct {
		Libraries []string `json:"libraries"`
		Count     int      `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Count != 1 || len(resp.Libraries) != 1 || resp.Libraries[0] != "tokens" {
		t.Errorf("Unexpected response: %+v", resp)
	}
}

func TestSearchHandler(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)
	seedLibrary(t, eng, "tokens",
		model.Asset{"assetID": "tokens/goblin.png", "filename": "goblin.png", "path": "tokens/goblin.png"},
		model.Asset{"assetID": "tokens/goblin_archer.png", "filename": "goblin_archer.png", "path": "tokens/goblin_archer.png"},
		model.Asset{"assetID": "tokens/orc.png", "filename": "orc.png", "path": "tokens/orc.png"},
	)

	w := doJSONRequest(t, router, "POST", "/libraries/tokens/search", SearchRequest{Query: "goblin"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d (body: %s)", w.Code, w.Body.String())
	}

	var result services.SearchResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode search result: %v", err)
	}
	if result.Total != 2 {
		t.Errorf("Expected 2 hits, got %d", result.Total)
	}
	if len(result.Hits) == 2 {
		first, _ := result.Hits[0].Asset.GetAssetID()
		if first != "tokens/goblin.png" {
			t.Errorf("Expected exact filename match first, got %s", first)
		}
	}
	if result.QueryId == "" {
		t.Error("Expected non-empty query ID")
	}

	// Unknown library
	w = doJSONRequest(t, router, "POST", "/libraries/missing/search", SearchRequest{Query: "goblin"})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for missing library, got %d", w.Code)
	}
}

func TestGetAssetHandlerWithSlashID(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)
	seedLibrary(t, eng, "tokens",
		model.Asset{"assetID": "tokens/forest/goblin.png", "filename": "goblin.png", "path": "tokens/forest/goblin.png"},
	)

	w := doJSONRequest(t, router, "GET", "/libraries/tokens/assets/tokens/forest/goblin.png", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d (body: %s)", w.Code, w.Body.String())
	}

	var asset model.Asset
	if err := json.Unmarshal(w.Body.Bytes(), &asset); err != nil {
		t.Fatalf("Failed to decode asset: %v", err)
	}
	if asset["filename"] != "goblin.png" {
		t.Errorf("Unexpected asset: %v", asset)
	}

	w = doJSONRequest(t, router, "GET", "/libraries/tokens/assets/missing.png", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for missing asset, got %d", w.Code)
	}
}

func TestAddAssetsHandler(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)
	seedLibrary(t, eng, "tokens")

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name: "valid single asset",
			requestBody: model.Asset{
				"assetID":  "tokens/goblin.png",
				"filename": "goblin.png",
			},
			expectedStatus: http.StatusAccepted,
		},
		{
			name: "valid multiple assets",
			requestBody: []model.Asset{
				{"assetID": "tokens/orc.png", "filename": "orc.png"},
				{"assetID": "tokens/troll.png", "filename": "troll.png"},
			},
			expectedStatus: http.StatusAccepted,
		},
		{
			name:           "invalid JSON",
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing assetID",
			requestBody:    model.Asset{"filename": "nameless.png"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSONRequest(t, router, "PUT", "/libraries/tokens/assets", tt.requestBody)
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d (body: %s)", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestListFoldersHandler(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)
	seedLibrary(t, eng, "tokens",
		model.Asset{"assetID": "tokens/forest/goblin.png", "path": "tokens/forest/goblin.png"},
		model.Asset{"assetID": "maps/dungeon.png", "path": "maps/dungeon.png"},
	)

	w := doJSONRequest(t, router, "GET", "/libraries/tokens/folders", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp struct {
		Folders []string `json:"folders"`
		Count   int      `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	want := []string{"maps", "tokens", "tokens/forest"}
	if resp.Count != len(want) {
		t.Fatalf("Expected %d folders, got %d (%v)", len(want), resp.Count, resp.Folders)
	}
	for i, folder := range want {
		if resp.Folders[i] != folder {
			t.Errorf("Folders[%d] = %s, want %s", i, resp.Folders[i], folder)
		}
	}
}

func TestDeleteAssetHandlerAsync(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)
	seedLibrary(t, eng, "tokens",
		model.Asset{"assetID": "tokens/goblin.png", "filename": "goblin.png", "path": "tokens/goblin.png"},
	)

	w := doJSONRequest(t, router, "DELETE", "/libraries/tokens/assets/tokens/goblin.png", nil)
	if w.Code != http.StatusAccepted {
		t.Fatalf("Expected status 202, got %d (body: %s)", w.Code, w.Body.String())
	}

	var resp struct {
		JobID string `json:"job_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.JobID == "" {
		t.Error("Expected a job ID in the async response")
	}

	// The job must be visible through the jobs endpoint
	w = doJSONRequest(t, router, "GET", "/jobs/"+resp.JobID, nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 for job lookup, got %d", w.Code)
	}
}

func TestGetLibraryStatsHandler(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)
	seedLibrary(t, eng, "tokens",
		model.Asset{"assetID": "tokens/goblin.png", "path": "tokens/goblin.png"},
	)

	w := doJSONRequest(t, router, "GET", "/libraries/tokens/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var stats struct {
		Name       string `json:"name"`
		AssetCount int    `json:"asset_count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Failed to decode stats: %v", err)
	}
	if stats.Name != "tokens" || stats.AssetCount != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestDeleteLibraryHandler(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng)
	seedLibrary(t, eng, "tokens")

	w := doJSONRequest(t, router, "DELETE", "/libraries/tokens", nil)
	if w.Code != http.StatusAccepted {
		t.Fatalf("Expected status 202, got %d (body: %s)", w.Code, w.Body.String())
	}

	w = doJSONRequest(t, router, "DELETE", "/libraries/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for missing library, got %d", w.Code)
	}
}
