package errors

import (
	"errors"
	"testing"
)

func TestLibraryNotFoundError(t *testing.T) {
	err := NewLibraryNotFoundError("forest-tokens")

	expectedMsg := "library named 'forest-tokens' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrLibraryNotFound) {
		t.Error("Expected error to match ErrLibraryNotFound sentinel")
	}

	if errors.Is(err, ErrAssetNotFound) {
		t.Error("Error should not match ErrAssetNotFound")
	}
}

func TestLibraryAlreadyExistsError(t *testing.T) {
	err := NewLibraryAlreadyExistsError("forest-tokens")

	expectedMsg := "library named 'forest-tokens' already exists"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrLibraryAlreadyExists) {
		t.Error("Expected error to match ErrLibraryAlreadyExists sentinel")
	}
}

func TestAssetNotFoundError(t *testing.T) {
	err := NewAssetNotFoundError("goblin.png", "forest-tokens")

	expectedMsg := "asset with ID 'goblin.png' not found in library 'forest-tokens'"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrAssetNotFound) {
		t.Error("Expected error to match ErrAssetNotFound sentinel")
	}

	bare := NewAssetNotFoundError("goblin.png")
	if bare.Error() != "asset with ID 'goblin.png' not found" {
		t.Errorf("Unexpected message without library context: %s", bare.Error())
	}
}

func TestJobNotFoundError(t *testing.T) {
	err := NewJobNotFoundError("job-123")

	if err.Error() != "job with ID 'job-123' not found" {
		t.Errorf("Unexpected error message: %s", err.Error())
	}

	if !errors.Is(err, ErrJobNotFound) {
		t.Error("Expected error to match ErrJobNotFound sentinel")
	}
}

func TestNotCachedError(t *testing.T) {
	err := NewNotCachedError("https://example.com/goblin.png")

	if err.Error() != "content for 'https://example.com/goblin.png' is not cached" {
		t.Errorf("Unexpected error message: %s", err.Error())
	}

	if !errors.Is(err, ErrNotCached) {
		t.Error("Expected error to match ErrNotCached sentinel")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("name", "cannot be empty")

	if err.Error() != "validation error for field 'name': cannot be empty" {
		t.Errorf("Unexpected error message: %s", err.Error())
	}

	if !errors.Is(err, ErrInvalidInput) {
		t.Error("Expected error to match ErrInvalidInput sentinel")
	}

	bare := NewValidationError("", "bad request")
	if bare.Error() != "validation error: bad request" {
		t.Errorf("Unexpected message without field context: %s", bare.Error())
	}
}
