package engine

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mapforge/content-browser/config"
	"github.com/mapforge/content-browser/internal/errors"
)

// CreateLibrary creates a new library with the given settings and persists it.
func (e *Engine) CreateLibrary(settings config.LibrarySettings) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if settings.Name == "" {
		return fmt.Errorf("library name cannot be empty")
	}
	if _, exists := e.libraries[settings.Name]; exists {
		return errors.NewLibraryAlreadyExistsError(settings.Name)
	}

	instance, err := NewLibraryInstance(settings)
	if err != nil {
		return fmt.Errorf("failed to create new library instance for '%s': %w", settings.Name, err)
	}

	// Persist the initial state
	if err := e.persistLibraryUnsafe(settings.Name, *instance.settings, instance); err != nil {
		return fmt.Errorf("failed to persist new library '%s': %w", settings.Name, err)
	}

	e.libraries[settings.Name] = instance
	log.Printf("Library '%s' created and persisted.", settings.Name)
	return nil
}

// DeleteLibrary removes a library by its name from memory and disk.
func (e *Engine) DeleteLibrary(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.libraries[name]; !exists {
		return errors.NewLibraryNotFoundError(name)
	}
	delete(e.libraries, name)

	libraryPath := filepath.Join(e.dataDir, name)
	if err := os.RemoveAll(libraryPath); err != nil {
		return fmt.Errorf("failed to delete library data directory %s: %w", libraryPath, err)
	}
	log.Printf("Library '%s' deleted from memory and disk.", name)
	return nil
}

// UpdateLibrarySettings updates the settings for an existing library and
// persists them. The library name itself cannot change.
func (e *Engine) UpdateLibrarySettings(name string, newSettings config.LibrarySettings) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	instance, exists := e.libraries[name]
	if !exists {
		return errors.NewLibraryNotFoundError(name)
	}

	if newSettings.Name != "" && newSettings.Name != name {
		return fmt.Errorf("cannot change library name from '%s' to '%s' during settings update", name, newSettings.Name)
	}
	newSettings.Name = name
	newSettings.ApplyDefaults()

	*instance.settings = newSettings

	if err := e.persistLibraryUnsafe(name, newSettings, instance); err != nil {
		return fmt.Errorf("failed to save updated settings for library '%s': %w", name, err)
	}

	log.Printf("Settings for library '%s' updated and persisted.", name)
	return nil
}
