// Package apicache persists raw provider responses next to the database so a
// later run can opt into replaying them instead of hitting the live API.
package apicache

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/packsmith/minecraft-pack-manager/internal/models"
)

type Kind string

const (
	ProjectResponse  Kind = "project"
	VersionsResponse Kind = "versions"
)

type Cache struct {
	fs  afero.Fs
	dir string
}

func New(fs afero.Fs, dir string) *Cache {
	return &Cache{fs: fs, dir: dir}
}

func (cache *Cache) path(host models.Host, id string, kind Kind) string {
	return filepath.Join(cache.dir, host.String(), fmt.Sprintf("%s-%s.json", id, kind))
}

// Read returns the cached raw response, or ok=false when none exists.
func (cache *Cache) Read(host models.Host, id string, kind Kind) ([]byte, bool) {
	path := cache.path(host, id, kind)
	exists, err := afero.Exists(cache.fs, path)
	if err != nil || !exists {
		return nil, false
	}

	data, err := afero.ReadFile(cache.fs, path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Write stores a raw response. Failures are reported but callers treat the
// cache as best-effort; a failed write never fails the validation.
func (cache *Cache) Write(host models.Host, id string, kind Kind, data []byte) error {
	path := cache.path(host, id, kind)
	if err := cache.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	return afero.WriteFile(cache.fs, path, data, 0o644)
}
