// Package config provides configuration structures for the content browser.
// It defines library settings and their validation and defaulting rules.
package config

import (
	"strings"
)

// LibrarySettings contains all configuration options for a content library:
// where its files live on disk, which file types a scan picks up, and how
// search results are paged.
type LibrarySettings struct {
	Name            string   `json:"name"`                  // Unique name for the library
	Description     string   `json:"description,omitempty"` // Free-text description shown in the browser
	ContentDir      string   `json:"content_dir,omitempty"` // Optional on-disk root that library scans walk
	DefaultPageSize int      `json:"default_page_size"`     // Page size used when a search request omits one
	ScanExtensions  []string `json:"scan_extensions"`       // File extensions (with dot) indexed by scans, e.g. [".png", ".webp"]
	DefaultTags     []string `json:"default_tags"`          // Tags applied to every asset produced by a scan
}

// Validate checks the settings for basic consistency and returns a list of
// human-readable conflicts. An empty result means the settings are usable.
func (settings *LibrarySettings) Validate() []string {
	var conflicts []string

	if strings.TrimSpace(settings.Name) == "" {
		conflicts = append(conflicts, "Library name cannot be empty or whitespace-only")
	} else if strings.TrimSpace(settings.Name) != settings.Name {
		conflicts = append(conflicts, "Library name cannot have leading or trailing whitespace")
	}

	conflicts = append(conflicts, checkDuplicates("scan_extensions", settings.ScanExtensions)...)
	conflicts = append(conflicts, checkDuplicates("default_tags", settings.DefaultTags)...)

	for _, ext := range settings.ScanExtensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			conflicts = append(conflicts, "Scan extension '"+ext+"' must start with a dot and name a suffix")
		}
	}
	for _, tag := range settings.DefaultTags {
		if strings.TrimSpace(tag) == "" {
			conflicts = append(conflicts, "Default tag cannot be empty or whitespace-only")
		}
	}

	if settings.DefaultPageSize < 0 {
		conflicts = append(conflicts, "Default page size cannot be negative")
	}

	return conflicts
}

// checkDuplicates checks for duplicate values in a slice and returns error messages
func checkDuplicates(fieldName string, values []string) []string {
	var errors []string
	seen := make(map[string]bool)

	for _, value := range values {
		if seen[value] {
			errors = append(errors, "Duplicate value '"+value+"' found in "+fieldName)
		}
		seen[value] = true
	}

	return errors
}

// ApplyDefaults applies default values to the library settings
func (settings *LibrarySettings) ApplyDefaults() {
	if settings.DefaultPageSize == 0 {
		settings.DefaultPageSize = 50
	}

	if settings.ScanExtensions == nil {
		settings.ScanExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}
	}
	if settings.DefaultTags == nil {
		settings.DefaultTags = []string{}
	}
}
