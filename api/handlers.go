package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mapforge/content-browser/config"
	"github.com/mapforge/content-browser/internal/engine"
	"github.com/mapforge/content-browser/services"
)

// API holds dependencies for API handlers, primarily the library manager.
type API struct {
	engine services.LibraryManager
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.LibraryManager) *API {
	return &API{engine: engine}
}

// SetupRoutes defines all the API routes for the content browser.
func SetupRoutes(router *gin.Engine, engine services.LibraryManager) {
	apiHandler := NewAPI(engine)

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Job management routes
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)         // Get job status by ID
		jobRoutes.GET("/metrics", apiHandler.GetJobMetricsHandler) // Get job performance metrics
	}

	// Download cache routes
	downloadRoutes := router.Group("/downloads")
	{
		downloadRoutes.POST("", apiHandler.DownloadAssetHandler)     // Fetch remote content into the cache
		downloadRoutes.POST("/prune", apiHandler.PruneCacheHandler)  // Remove stale cache entries
	}

	// Library management routes
	libraryRoutes := router.Group("/libraries")
	{
		libraryRoutes.POST("", apiHandler.CreateLibraryHandler)                                // Create a new library
		libraryRoutes.GET("", apiHandler.ListLibrariesHandler)                                 // List all libraries
		libraryRoutes.GET("/:libraryName", apiHandler.GetLibraryHandler)                       // Get library settings
		libraryRoutes.DELETE("/:libraryName", apiHandler.DeleteLibraryHandler)                 // Delete a library
		libraryRoutes.PATCH("/:libraryName/settings", apiHandler.UpdateLibrarySettingsHandler) // Update library settings
		libraryRoutes.POST("/:libraryName/scan", apiHandler.ScanLibraryHandler)                // Rescan the content directory
		libraryRoutes.GET("/:libraryName/stats", apiHandler.GetLibraryStatsHandler)            // Get library statistics
		libraryRoutes.GET("/:libraryName/jobs", apiHandler.ListJobsHandler)                    // List jobs for a library
		libraryRoutes.GET("/:libraryName/folders", apiHandler.ListFoldersHandler)              // List folder paths

		// Asset management routes per library
		assetRoutes := libraryRoutes.Group("/:libraryName/assets")
		{
			assetRoutes.PUT("", apiHandler.AddAssetsHandler)             // Add/Update assets
			assetRoutes.GET("", apiHandler.GetAssetsHandler)             // List assets with pagination
			assetRoutes.DELETE("", apiHandler.DeleteAllAssetsHandler)    // Delete all assets
			assetRoutes.GET("/*assetId", apiHandler.GetAssetHandler)     // Get specific asset (IDs contain slashes)
			assetRoutes.DELETE("/*assetId", apiHandler.DeleteAssetHandler)
		}

		// Search route per library
		libraryRoutes.POST("/:libraryName/search", apiHandler.SearchHandler)
	}
}

// assetIDParam extracts the asset ID from a wildcard route parameter. Asset
// IDs are relative paths and contain slashes, so the routes use a catch-all
// parameter whose value keeps a leading slash.
func assetIDParam(c *gin.Context) string {
	return strings.TrimPrefix(c.Param("assetId"), "/")
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "content-browser",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}

// CreateLibraryHandler handles the request to create a new library.
// Request Body: config.LibrarySettings
func (api *API) CreateLibraryHandler(c *gin.Context) {
	var settings config.LibrarySettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateLibrarySettings(&settings); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.engine.CreateLibrary(settings); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			SendLibraryExistsError(c, settings.Name)
			return
		}
		SendInternalError(c, "library creation", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Library '" + settings.Name + "' created successfully"})
}

// ListLibrariesHandler lists all available libraries.
func (api *API) ListLibrariesHandler(c *gin.Context) {
	names := api.engine.ListLibraries()
	c.JSON(http.StatusOK, gin.H{"libraries": names, "count": len(names)})
}

// GetLibraryHandler retrieves details about a specific library (its settings).
func (api *API) GetLibraryHandler(c *gin.Context) {
	libraryName := c.Param("libraryName")
	accessor, err := api.engine.GetLibrary(libraryName)
	if err != nil {
		SendLibraryNotFoundError(c, libraryName)
		return
	}
	c.JSON(http.StatusOK, accessor.Settings())
}

// DeleteLibraryHandler handles deleting a library.
func (api *API) DeleteLibraryHandler(c *gin.Context) {
	libraryName := c.Param("libraryName")

	// Delete library asynchronously when the engine supports it
	var jobID string
	var err error
	if concreteEngine, ok := api.engine.(*engine.Engine); ok {
		jobID, err = concreteEngine.DeleteLibraryAsync(libraryName)
	} else {
		err = api.engine.DeleteLibrary(libraryName)
	}

	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			SendLibraryNotFoundError(c, libraryName)
			return
		}
		SendInternalError(c, "library deletion", err)
		return
	}

	if jobID != "" {
		c.JSON(http.StatusAccepted, gin.H{
			"status":  "accepted",
			"message": "Library deletion started for '" + libraryName + "'",
			"job_id":  jobID,
		})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "Library '" + libraryName + "' deleted successfully"})
	}
}

// UpdateLibrarySettingsHandler handles requests to update library settings.
// The library name itself cannot change.
func (api *API) UpdateLibrarySettingsHandler(c *gin.Context) {
	libraryName := c.Param("libraryName")

	if _, err := api.engine.GetLibrarySettings(libraryName); err != nil {
		SendLibraryNotFoundError(c, libraryName)
		return
	}

	var newSettings config.LibrarySettings
	if err := c.ShouldBindJSON(&newSettings); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if newSettings.Name != "" && newSettings.Name != libraryName {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest,
			"Library name cannot be changed via settings update")
		return
	}
	newSettings.Name = libraryName

	if result := ValidateLibrarySettings(&newSettings); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	concreteEngine, ok := api.engine.(*engine.Engine)
	if !ok {
		SendError(c, http.StatusNotImplemented, ErrorCodeInternalError,
			"Settings update not supported by this engine")
		return
	}
	if err := concreteEngine.UpdateLibrarySettings(libraryName, newSettings); err != nil {
		SendInternalError(c, "settings update", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings updated successfully for library '" + libraryName + "'"})
}

// ScanLibraryHandler starts a background rescan of the library's content
// directory.
func (api *API) ScanLibraryHandler(c *gin.Context) {
	libraryName := c.Param("libraryName")

	scanner, ok := api.engine.(services.LibraryManagerWithAsyncScan)
	if !ok {
		SendError(c, http.StatusNotImplemented, ErrorCodeInternalError,
			"Library scanning not supported by this engine")
		return
	}

	jobID, err := scanner.ScanLibraryAsync(libraryName)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			SendLibraryNotFoundError(c, libraryName)
			return
		}
		SendJobExecutionError(c, "scan library", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Scan started for library '" + libraryName + "'",
		"job_id":  jobID,
	})
}

// GetLibraryStatsHandler returns statistics for a specific library
func (api *API) GetLibraryStatsHandler(c *gin.Context) {
	libraryName := c.Param("libraryName")
	accessor, err := api.engine.GetLibrary(libraryName)
	if err != nil {
		SendLibraryNotFoundError(c, libraryName)
		return
	}

	settings := accessor.Settings()
	assets := accessor.ListAssets()
	folders := accessor.ListFolders()

	stats := gin.H{
		"name":              settings.Name,
		"asset_count":       len(assets),
		"folder_count":      len(folders),
		"content_dir":       settings.ContentDir,
		"scan_extensions":   settings.ScanExtensions,
		"default_page_size": settings.DefaultPageSize,
	}

	c.JSON(http.StatusOK, stats)
}

// ListFoldersHandler returns the folder paths the library's assets live in.
func (api *API) ListFoldersHandler(c *gin.Context) {
	libraryName := c.Param("libraryName")
	accessor, err := api.engine.GetLibrary(libraryName)
	if err != nil {
		SendLibraryNotFoundError(c, libraryName)
		return
	}

	folders := accessor.ListFolders()
	c.JSON(http.StatusOK, gin.H{"folders": folders, "count": len(folders)})
}
