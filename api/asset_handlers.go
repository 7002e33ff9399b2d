package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mapforge/content-browser/internal/engine"
	"github.com/mapforge/content-browser/model"
	"github.com/mapforge/content-browser/services"
)

// AddAssetsHandler handles adding/updating assets in a library.
// The body may be a single asset object or an array of assets.
func (api *API) AddAssetsHandler(c *gin.Context) {
	libraryName := c.Param("libraryName")
	if _, err := api.engine.GetLibrary(libraryName); err != nil {
		SendLibraryNotFoundError(c, libraryName)
		return
	}

	var rawData interface{}
	if err := c.ShouldBindJSON(&rawData); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	var assets []model.Asset
	if dataSlice, isSlice := rawData.([]interface{}); isSlice {
		assets = make([]model.Asset, len(dataSlice))
		for i, item := range dataSlice {
			if assetMap, isMap := item.(map[string]interface{}); isMap {
				assets[i] = model.Asset(assetMap)
			} else {
				SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest,
					fmt.Sprintf("Asset at index %d is not a valid object", i))
				return
			}
		}
	} else if assetMap, isMap := rawData.(map[string]interface{}); isMap {
		assets = []model.Asset{model.Asset(assetMap)}
	} else {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest,
			"Invalid request body. Expecting an asset object or an array of assets")
		return
	}

	if result := ValidateAssets(assets); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	// Normalize assetIDs to clean strings
	for i := range assets {
		if id, ok := assets[i]["assetID"].(string); ok {
			assets[i]["assetID"] = strings.TrimSpace(id)
		}
	}

	// Add assets asynchronously when the engine supports it
	if concreteEngine, ok := api.engine.(*engine.Engine); ok {
		jobID, err := concreteEngine.AddAssetsAsync(libraryName, assets)
		if err != nil {
			SendJobExecutionError(c, "add assets", err)
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"status":      "accepted",
			"message":     fmt.Sprintf("Asset addition started for library '%s' (%d assets)", libraryName, len(assets)),
			"job_id":      jobID,
			"asset_count": len(assets),
		})
		return
	}

	accessor, _ := api.engine.GetLibrary(libraryName)
	if err := accessor.AddAssets(assets); err != nil {
		SendInternalError(c, "asset addition", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%d asset(s) added/updated in library '%s'", len(assets), libraryName)})
}

// AssetListRequest defines the structure for asset listing requests
type AssetListRequest struct {
	Page     int    `form:"page" json:"page"`
	PageSize int    `form:"page_size" json:"page_size"`
	Folder   string `form:"folder" json:"folder"`
}

// GetAssetsHandler lists assets in a library with pagination and an optional
// folder filter.
func (api *API) GetAssetsHandler(c *gin.Context) {
	libraryName := c.Param("libraryName")
	accessor, err := api.engine.GetLibrary(libraryName)
	if err != nil {
		SendLibraryNotFoundError(c, libraryName)
		return
	}

	var req AssetListRequest
	if result := ValidateQueryBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	page, pageSize, _ := ValidatePagination(req.Page, req.PageSize)

	var folders []string
	if req.Folder != "" {
		folders = []string{req.Folder}
	}

	// A blank query lists everything in stored order, prefiltered by folder.
	results, err := accessor.Search(services.SearchQuery{
		Folders:  folders,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		SendInternalError(c, "asset listing", err)
		return
	}

	assets := make([]model.Asset, 0, len(results.Hits))
	for _, hit := range results.Hits {
		assets = append(assets, hit.Asset)
	}

	c.JSON(http.StatusOK, gin.H{
		"assets":    assets,
		"total":     results.Total,
		"page":      results.Page,
		"page_size": results.PageSize,
		"pages":     (results.Total + results.PageSize - 1) / results.PageSize,
	})
}

// GetAssetHandler retrieves a specific asset by ID
func (api *API) GetAssetHandler(c *gin.Context) {
	libraryName := c.Param("libraryName")
	assetID := assetIDParam(c)

	accessor, err := api.engine.GetLibrary(libraryName)
	if err != nil {
		SendLibraryNotFoundError(c, libraryName)
		return
	}

	if result := ValidateAssetID(assetID); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	asset, err := accessor.GetAsset(assetID)
	if err != nil {
		SendAssetNotFoundError(c, assetID, libraryName)
		return
	}

	c.JSON(http.StatusOK, asset)
}

// DeleteAssetHandler deletes a specific asset by ID
func (api *API) DeleteAssetHandler(c *gin.Context) {
	libraryName := c.Param("libraryName")
	assetID := assetIDParam(c)

	if _, err := api.engine.GetLibrary(libraryName); err != nil {
		SendLibraryNotFoundError(c, libraryName)
		return
	}

	if result := ValidateAssetID(assetID); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	// Delete asset asynchronously when the engine supports it
	if concreteEngine, ok := api.engine.(*engine.Engine); ok {
		jobID, err := concreteEngine.DeleteAssetAsync(libraryName, assetID)
		if err != nil {
			SendJobExecutionError(c, "delete asset", err)
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"status":   "accepted",
			"message":  fmt.Sprintf("Asset deletion started for asset '%s' in library '%s'", assetID, libraryName),
			"job_id":   jobID,
			"asset_id": assetID,
		})
		return
	}

	accessor, _ := api.engine.GetLibrary(libraryName)
	if err := accessor.DeleteAsset(assetID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			SendAssetNotFoundError(c, assetID, libraryName)
			return
		}
		SendInternalError(c, "asset deletion", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Asset '" + assetID + "' deleted from library '" + libraryName + "'"})
}

// DeleteAllAssetsHandler handles the request to delete all assets from a
// library.
func (api *API) DeleteAllAssetsHandler(c *gin.Context) {
	libraryName := c.Param("libraryName")
	if _, err := api.engine.GetLibrary(libraryName); err != nil {
		SendLibraryNotFoundError(c, libraryName)
		return
	}

	// Delete all assets asynchronously when the engine supports it
	if concreteEngine, ok := api.engine.(*engine.Engine); ok {
		jobID, err := concreteEngine.DeleteAllAssetsAsync(libraryName)
		if err != nil {
			SendJobExecutionError(c, "delete all assets", err)
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"status":  "accepted",
			"message": fmt.Sprintf("Asset deletion started for library '%s'", libraryName),
			"job_id":  jobID,
		})
		return
	}

	accessor, _ := api.engine.GetLibrary(libraryName)
	if err := accessor.DeleteAllAssets(); err != nil {
		SendInternalError(c, "asset deletion", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All assets deleted from library '" + libraryName + "'"})
}
