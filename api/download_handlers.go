package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mapforge/content-browser/internal/engine"
)

// DownloadRequest defines the structure for download requests
type DownloadRequest struct {
	URL         string `json:"url" binding:"required"`
	LibraryName string `json:"library_name,omitempty"`
}

// DownloadAssetHandler starts a background download of remote content into
// the cache.
func (api *API) DownloadAssetHandler(c *gin.Context) {
	concreteEngine, ok := api.engine.(*engine.Engine)
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Downloads not supported by this engine"})
		return
	}

	var req DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	jobID, err := concreteEngine.DownloadAssetAsync(req.LibraryName, req.URL)
	if err != nil {
		SendJobExecutionError(c, "download", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Download started for '" + req.URL + "'",
		"job_id":  jobID,
	})
}

// PruneCacheRequest defines the structure for cache prune requests
type PruneCacheRequest struct {
	MaxAgeHours int `json:"max_age_hours"`
}

const defaultPruneMaxAgeHours = 24 * 30

// PruneCacheHandler starts a background prune of stale download cache
// entries.
func (api *API) PruneCacheHandler(c *gin.Context) {
	concreteEngine, ok := api.engine.(*engine.Engine)
	if !ok {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Downloads not supported by this engine"})
		return
	}

	var req PruneCacheRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		SendInvalidJSONError(c, err)
		return
	}
	if req.MaxAgeHours <= 0 {
		req.MaxAgeHours = defaultPruneMaxAgeHours
	}

	jobID, err := concreteEngine.PruneCacheAsync(time.Duration(req.MaxAgeHours) * time.Hour)
	if err != nil {
		SendJobExecutionError(c, "prune cache", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Cache prune started",
		"job_id":  jobID,
	})
}
