package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mapforge/content-browser/services"
)

// SearchRequest defines the structure for search queries. It mirrors
// services.SearchQuery but is kept separate to control the JSON surface.
type SearchRequest struct {
	Query    string   `json:"query"`
	Folders  []string `json:"folders,omitempty"` // Optional: restrict to assets under these folder paths
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
}

// SearchHandler handles search requests against a library.
// Request Body: SearchRequest
func (api *API) SearchHandler(c *gin.Context) {
	libraryName := c.Param("libraryName")

	accessor, err := api.engine.GetLibrary(libraryName)
	if err != nil {
		SendLibraryNotFoundError(c, libraryName)
		return
	}

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	page, pageSize, _ := ValidatePagination(req.Page, req.PageSize)
	if req.PageSize <= 0 {
		pageSize = 0 // Let the library's default page size apply
	}

	searchQuery := services.SearchQuery{
		QueryString: req.Query,
		Folders:     req.Folders,
		Page:        page,
		PageSize:    pageSize,
	}

	results, err := accessor.Search(searchQuery)
	if err != nil {
		SendSearchError(c, libraryName, err)
		return
	}

	c.JSON(http.StatusOK, results)
}
