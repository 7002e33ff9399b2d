// Package library provides the content-side helpers of a library: deriving
// the folder tree from asset paths, restricting asset sets to selected
// folders, and scanning a content directory into asset records.
package library

import (
	"path"
	"sort"
	"strings"

	"github.com/mapforge/content-browser/model"
)

// assetPath returns the asset's relative path within the library, falling
// back to the assetID when no explicit path field is present.
func assetPath(asset model.Asset) string {
	if p := asset.GetString("path", "file_path"); p != "" {
		return p
	}
	id, _ := asset.GetAssetID()
	return id
}

// FoldersOf derives the sorted set of unique folder paths the assets live in.
// Assets at the library root contribute no folder. Every ancestor directory
// is included, so "tokens/forest/goblin.png" yields both "tokens" and
// "tokens/forest".
func FoldersOf(assets []model.Asset) []string {
	seen := make(map[string]struct{})
	for _, asset := range assets {
		dir := path.Dir(assetPath(asset))
		for dir != "." && dir != "/" && dir != "" {
			seen[dir] = struct{}{}
			dir = path.Dir(dir)
		}
	}

	folders := make([]string, 0, len(seen))
	for folder := range seen {
		folders = append(folders, folder)
	}
	sort.Strings(folders)
	return folders
}

// FilterByFolders keeps only the assets whose path lives under one of the
// selected folders. An empty selection means no folder filter and returns the
// input slice unchanged.
func FilterByFolders(assets []model.Asset, selected []string) []model.Asset {
	if len(selected) == 0 {
		return assets
	}

	filtered := make([]model.Asset, 0, len(assets))
	for _, asset := range assets {
		if underAnyFolder(assetPath(asset), selected) {
			filtered = append(filtered, asset)
		}
	}
	return filtered
}

func underAnyFolder(assetPath string, folders []string) bool {
	for _, folder := range folders {
		folder = strings.Trim(folder, "/")
		if folder == "" {
			continue
		}
		if strings.HasPrefix(assetPath, folder+"/") {
			return true
		}
	}
	return false
}
