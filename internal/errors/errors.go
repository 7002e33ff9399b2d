package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrLibraryNotFound is returned when a library is not found
	ErrLibraryNotFound = errors.New("library not found")

	// ErrLibraryAlreadyExists is returned when trying to create a library that already exists
	ErrLibraryAlreadyExists = errors.New("library already exists")

	// ErrAssetNotFound is returned when an asset is not found
	ErrAssetNotFound = errors.New("asset not found")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrNotCached is returned when a download is not present in the cache
	ErrNotCached = errors.New("content not cached")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// LibraryNotFoundError represents a library not found error with context
type LibraryNotFoundError struct {
	LibraryName string
}

func (e *LibraryNotFoundError) Error() string {
	return fmt.Sprintf("library named '%s' not found", e.LibraryName)
}

func (e *LibraryNotFoundError) Is(target error) bool {
	return target == ErrLibraryNotFound
}

// NewLibraryNotFoundError creates a new LibraryNotFoundError
func NewLibraryNotFoundError(libraryName string) *LibraryNotFoundError {
	return &LibraryNotFoundError{LibraryName: libraryName}
}

// LibraryAlreadyExistsError represents a library already exists error with context
type LibraryAlreadyExistsError struct {
	LibraryName string
}

func (e *LibraryAlreadyExistsError) Error() string {
	return fmt.Sprintf("library named '%s' already exists", e.LibraryName)
}

func (e *LibraryAlreadyExistsError) Is(target error) bool {
	return target == ErrLibraryAlreadyExists
}

// NewLibraryAlreadyExistsError creates a new LibraryAlreadyExistsError
func NewLibraryAlreadyExistsError(libraryName string) *LibraryAlreadyExistsError {
	return &LibraryAlreadyExistsError{LibraryName: libraryName}
}

// AssetNotFoundError represents an asset not found error with context
type AssetNotFoundError struct {
	AssetID     string
	LibraryName string
}

func (e *AssetNotFoundError) Error() string {
	if e.LibraryName != "" {
		return fmt.Sprintf("asset with ID '%s' not found in library '%s'", e.AssetID, e.LibraryName)
	}
	return fmt.Sprintf("asset with ID '%s' not found", e.AssetID)
}

func (e *AssetNotFoundError) Is(target error) bool {
	return target == ErrAssetNotFound
}

// NewAssetNotFoundError creates a new AssetNotFoundError
func NewAssetNotFoundError(assetID string, libraryName ...string) *AssetNotFoundError {
	err := &AssetNotFoundError{AssetID: assetID}
	if len(libraryName) > 0 {
		err.LibraryName = libraryName[0]
	}
	return err
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}

// NotCachedError represents a cache miss for a remote asset with context
type NotCachedError struct {
	URL string
}

func (e *NotCachedError) Error() string {
	return fmt.Sprintf("content for '%s' is not cached", e.URL)
}

func (e *NotCachedError) Is(target error) bool {
	return target == ErrNotCached
}

// NewNotCachedError creates a new NotCachedError
func NewNotCachedError(url string) *NotCachedError {
	return &NotCachedError{URL: url}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
