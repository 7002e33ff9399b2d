package downloads

import (
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/mapforge/content-browser/internal/errors"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create cache manager: %v", err)
	}
	return m
}

func readAll(t *testing.T, r io.ReadCloser) string {
	t.Helper()
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("Failed to read cached content: %v", err)
	}
	return string(data)
}

func TestStoreAndOpen(t *testing.T) {
	m := newTestManager(t)
	url := "https://example.com/packs/goblin.png"

	if m.Has(url) {
		t.Error("Fresh cache should not have the URL")
	}

	if err := m.Store(url, strings.NewReader("image-bytes")); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if !m.Has(url) {
		t.Error("Expected Has to report true after Store")
	}

	reader, err := m.Open(url)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if got := readAll(t, reader); got != "image-bytes" {
		t.Errorf("Cached content = %q, want %q", got, "image-bytes")
	}
}

func TestStoreReplacesExisting(t *testing.T) {
	m := newTestManager(t)
	url := "https://example.com/packs/goblin.png"

	_ = m.Store(url, strings.NewReader("first"))
	if err := m.Store(url, strings.NewReader("second")); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	reader, err := m.Open(url)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if got := readAll(t, reader); got != "second" {
		t.Errorf("Cached content = %q, want %q", got, "second")
	}
}

func TestOpenMissingReturnsNotCached(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Open("https://example.com/missing.png")
	if err == nil {
		t.Fatal("Expected error for missing cache entry")
	}
	if !stderrors.Is(err, errors.ErrNotCached) {
		t.Errorf("Expected ErrNotCached, got %v", err)
	}
}

func TestFetchDownloadsOnMiss(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte("downloaded-bytes"))
	}))
	defer server.Close()

	m := newTestManager(t)
	url := server.URL + "/goblin.png"

	reader, err := m.Fetch(url)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if got := readAll(t, reader); got != "downloaded-bytes" {
		t.Errorf("Fetched content = %q, want %q", got, "downloaded-bytes")
	}
	if requests != 1 {
		t.Errorf("Expected 1 upstream request, got %d", requests)
	}

	// Second fetch must come from the cache.
	reader, err = m.Fetch(url)
	if err != nil {
		t.Fatalf("Second fetch failed: %v", err)
	}
	if got := readAll(t, reader); got != "downloaded-bytes" {
		t.Errorf("Cached fetch content = %q, want %q", got, "downloaded-bytes")
	}
	if requests != 1 {
		t.Errorf("Expected cached fetch to skip upstream, got %d requests", requests)
	}
}

func TestFetchNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	m := newTestManager(t)
	if _, err := m.Fetch(server.URL + "/missing.png"); err == nil {
		t.Error("Expected error for non-200 response")
	}
}

func TestPrune(t *testing.T) {
	m := newTestManager(t)
	oldURL := "https://example.com/old.png"
	newURL := "https://example.com/new.png"

	_ = m.Store(oldURL, strings.NewReader("old"))
	_ = m.Store(newURL, strings.NewReader("new"))

	// Backdate the old entry.
	past := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(m.cachePath(oldURL), past, past); err != nil {
		t.Fatalf("Failed to backdate cache entry: %v", err)
	}

	pruned, err := m.Prune(24 * time.Hour)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if pruned != 1 {
		t.Errorf("Expected 1 pruned entry, got %d", pruned)
	}
	if m.Has(oldURL) {
		t.Error("Old entry should be gone after Prune")
	}
	if !m.Has(newURL) {
		t.Error("Fresh entry should survive Prune")
	}
}
