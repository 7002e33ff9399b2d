package library

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mapforge/content-browser/config"
)

func writeFile(t *testing.T, root string, rel string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("Failed to create dir for %s: %v", rel, err)
	}
	if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", rel, err)
	}
}

func TestScanDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tokens/forest/goblin_archer.png")
	writeFile(t, root, "tokens/forest/notes.txt")
	writeFile(t, root, "maps/dungeon.webp")
	writeFile(t, root, ".thumbnails/goblin_archer.png")

	settings := config.LibrarySettings{
		Name:           "test",
		ContentDir:     root,
		ScanExtensions: []string{".png", ".webp"},
		DefaultTags:    []string{"fantasy"},
	}

	assets, err := ScanDir(settings)
	if err != nil {
		t.Fatalf("ScanDir failed: %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("Expected 2 assets, got %d: %v", len(assets), assets)
	}

	byID := make(map[string]int)
	for i, asset := range assets {
		id, ok := asset.GetAssetID()
		if !ok {
			t.Fatalf("Scanned asset %d has no assetID", i)
		}
		byID[id] = i
	}

	idx, ok := byID["tokens/forest/goblin_archer.png"]
	if !ok {
		t.Fatal("Expected tokens/forest/goblin_archer.png in scan results")
	}
	goblin := assets[idx]
	if goblin["filename"] != "goblin_archer.png" {
		t.Errorf("filename = %v, want goblin_archer.png", goblin["filename"])
	}
	if goblin["display_name"] != "Goblin Archer" {
		t.Errorf("display_name = %v, want Goblin Archer", goblin["display_name"])
	}
	wantTags := []string{"fantasy", "tokens", "forest"}
	if !reflect.DeepEqual(goblin["tags"], wantTags) {
		t.Errorf("tags = %v, want %v", goblin["tags"], wantTags)
	}

	if _, ok := byID["tokens/forest/notes.txt"]; ok {
		t.Error("Files outside the scan extensions should be skipped")
	}
	if _, ok := byID[".thumbnails/goblin_archer.png"]; ok {
		t.Error("Hidden directories should be skipped")
	}
}

func TestScanDirCaseInsensitiveExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "goblin.PNG")

	settings := config.LibrarySettings{
		Name:           "test",
		ContentDir:     root,
		ScanExtensions: []string{".png"},
	}
	assets, err := ScanDir(settings)
	if err != nil {
		t.Fatalf("ScanDir failed: %v", err)
	}
	if len(assets) != 1 {
		t.Fatalf("Expected 1 asset, got %d", len(assets))
	}
}

func TestScanDirMissingRoot(t *testing.T) {
	settings := config.LibrarySettings{
		Name:           "test",
		ContentDir:     filepath.Join(t.TempDir(), "does-not-exist"),
		ScanExtensions: []string{".png"},
	}
	if _, err := ScanDir(settings); err == nil {
		t.Error("Expected error for missing content directory")
	}
}

func TestDisplayNameFromFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"goblin_archer.png", "Goblin Archer"},
		{"cave-troll.webp", "Cave Troll"},
		{"dragon.png", "Dragon"},
		{"already named.png", "Already Named"},
		{"noext", "Noext"},
		{".hidden", ".hidden"},
	}
	for _, tt := range tests {
		if got := DisplayNameFromFilename(tt.in); got != tt.want {
			t.Errorf("DisplayNameFromFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
