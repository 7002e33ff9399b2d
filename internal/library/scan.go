package library

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/mapforge/content-browser/config"
	"github.com/mapforge/content-browser/model"
)

// ScanDir walks the library's content directory and builds an asset record
// for every file matching the configured scan extensions. Paths in the
// returned assets are relative to the content directory and use forward
// slashes, and the relative path doubles as the assetID.
func ScanDir(settings config.LibrarySettings) ([]model.Asset, error) {
	extensions := make(map[string]struct{}, len(settings.ScanExtensions))
	for _, ext := range settings.ScanExtensions {
		extensions[strings.ToLower(ext)] = struct{}{}
	}

	var assets []model.Asset
	err := filepath.WalkDir(settings.ContentDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Hidden directories (".thumbnails" etc.) are not content.
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(p))
		if _, ok := extensions[ext]; !ok {
			return nil
		}

		rel, relErr := filepath.Rel(settings.ContentDir, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		assets = append(assets, buildAsset(rel, settings.DefaultTags))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assets, nil
}

// buildAsset turns a relative file path into an asset record. The display
// name is derived from the filename, and the directory segments become tags
// alongside the library's default tags.
func buildAsset(relPath string, defaultTags []string) model.Asset {
	filename := filepath.Base(relPath)

	tags := make([]string, 0, len(defaultTags)+4)
	tags = append(tags, defaultTags...)
	dir := filepath.ToSlash(filepath.Dir(relPath))
	if dir != "." {
		for _, segment := range strings.Split(dir, "/") {
			if segment != "" {
				tags = append(tags, strings.ToLower(segment))
			}
		}
	}

	return model.Asset{
		"assetID":      relPath,
		"filename":     filename,
		"path":         relPath,
		"display_name": DisplayNameFromFilename(filename),
		"tags":         tags,
	}
}

// DisplayNameFromFilename turns "goblin_archer.png" into "Goblin Archer":
// the extension is dropped, underscores and dashes become spaces, and every
// word is title-cased.
func DisplayNameFromFilename(filename string) string {
	name := filename
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")

	words := strings.Fields(name)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
