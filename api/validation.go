// Package api provides the HTTP surface of the content browser: library
// management, asset management, search, folders, jobs, and downloads.
package api

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mapforge/content-browser/config"
	"github.com/mapforge/content-browser/model"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateLibraryName validates a library name parameter
func ValidateLibraryName(libraryName string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if libraryName == "" {
		result.AddError("libraryName", "Library name is required")
		return result
	}

	if strings.TrimSpace(libraryName) != libraryName {
		result.AddError("libraryName", "Library name cannot have leading or trailing whitespace")
		return result
	}

	return result
}

// ValidateAssetID validates an asset ID
func ValidateAssetID(assetID string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if assetID == "" {
		result.AddError("assetID", "Asset ID is required")
		return result
	}

	if strings.TrimSpace(assetID) != assetID {
		result.AddError("assetID", "Asset ID cannot have leading or trailing whitespace")
		return result
	}

	return result
}

// ValidateLibrarySettings validates library settings for creation
func ValidateLibrarySettings(settings *config.LibrarySettings) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if settings == nil {
		result.AddError("settings", "Library settings are required")
		return result
	}

	if settings.Name == "" {
		result.AddError("name", "Library name is required")
	}

	// Apply defaults before validation
	settings.ApplyDefaults()

	if conflicts := settings.Validate(); len(conflicts) > 0 {
		for _, conflict := range conflicts {
			result.AddError("settings_validation", conflict)
		}
	}

	return result
}

// ValidateAssets validates a slice of assets for addition
func ValidateAssets(assets []model.Asset) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(assets) == 0 {
		result.AddError("assets", "No assets provided")
		return result
	}

	for i, asset := range assets {
		assetIDVal, exists := asset["assetID"]
		if !exists {
			result.AddError(fmt.Sprintf("assets[%d].assetID", i), "Asset must have an 'assetID' field")
			continue
		}

		assetIDStr, ok := assetIDVal.(string)
		if !ok {
			result.AddError(fmt.Sprintf("assets[%d].assetID", i), "Asset ID must be a string")
			continue
		}

		if strings.TrimSpace(assetIDStr) == "" {
			result.AddError(fmt.Sprintf("assets[%d].assetID", i), "Asset ID cannot be empty or whitespace-only")
			continue
		}
	}

	return result
}

// ValidatePagination validates pagination parameters
func ValidatePagination(page, pageSize int) (int, int, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	// Set defaults
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}

	if pageSize > 500 {
		pageSize = 500 // Maximum page size
	}

	return page, pageSize, result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}

// ValidateJSONBinding validates JSON binding and returns a standardized error
func ValidateJSONBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindJSON(target); err != nil {
		result.AddError("request_body", "Invalid request body: "+err.Error())
	}

	return result
}

// ValidateQueryBinding validates query parameter binding
func ValidateQueryBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindQuery(target); err != nil {
		result.AddError("query_parameters", "Invalid query parameters: "+err.Error())
	}

	return result
}
