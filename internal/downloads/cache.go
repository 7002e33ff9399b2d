// Package downloads keeps a local file cache of remote asset content, keyed
// by source URL, so the browser does not re-fetch art packs it already has.
package downloads

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/mapforge/content-browser/internal/errors"
)

// Manager stores cached downloads under a single directory. Cache filenames
// are the SHA-256 of the source URL plus the URL's file extension, so the
// same URL always maps to the same file.
type Manager struct {
	dir    string
	client *http.Client
}

// NewManager creates a download cache rooted at dir, creating the directory
// if needed.
func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}
	return &Manager{
		dir:    dir,
		client: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// cachePath returns the on-disk path for the given source URL.
func (m *Manager) cachePath(url string) string {
	sum := sha256.Sum256([]byte(url))
	name := hex.EncodeToString(sum[:])
	if ext := strings.ToLower(path.Ext(path.Base(url))); ext != "" && len(ext) <= 8 {
		name += ext
	}
	return filepath.Join(m.dir, name)
}

// Has reports whether content for the URL is cached.
func (m *Manager) Has(url string) bool {
	info, err := os.Stat(m.cachePath(url))
	return err == nil && !info.IsDir()
}

// Store writes the content for the URL into the cache, replacing any previous
// entry. The write goes through a temp file so readers never see a partial
// entry.
func (m *Manager) Store(url string, content io.Reader) error {
	target := m.cachePath(url)

	tmp, err := os.CreateTemp(m.dir, ".download-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write cached content: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move cached content into place: %w", err)
	}
	return nil
}

// Open returns a reader over the cached content for the URL. The caller must
// close it. Returns a NotCachedError when the URL has no cache entry.
func (m *Manager) Open(url string) (io.ReadCloser, error) {
	f, err := os.Open(m.cachePath(url))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotCachedError(url)
		}
		return nil, fmt.Errorf("failed to open cached content: %w", err)
	}
	return f, nil
}

// Fetch returns a reader over the content for the URL, downloading and
// caching it first on a cache miss.
func (m *Manager) Fetch(url string) (io.ReadCloser, error) {
	if reader, err := m.Open(url); err == nil {
		return reader, nil
	}

	resp, err := m.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download %s: unexpected status %s", url, resp.Status)
	}

	if err := m.Store(url, resp.Body); err != nil {
		return nil, err
	}
	return m.Open(url)
}

// Prune removes cache entries that have not been modified within maxAge and
// returns how many were removed.
func (m *Manager) Prune(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	pruned := 0
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(m.dir, entry.Name())); err != nil {
				log.Printf("Failed to prune cache entry %s: %v", entry.Name(), err)
				continue
			}
			pruned++
		}
	}
	return pruned, nil
}
