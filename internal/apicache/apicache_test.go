package apicache

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"

	"github.com/packsmith/minecraft-pack-manager/internal/models"
)

func TestReadMissesOnEmptyCache(t *testing.T) {
	cache := New(afero.NewMemMapFs(), "/cache")

	_, ok := cache.Read(models.MODRINTH, "sodium", VersionsResponse)
	assert.False(t, ok)
}

func TestWriteThenRead(t *testing.T) {
	fs := afero.NewMemMapFs()
	cache := New(fs, "/cache")

	payload := []byte(`[{"version_number":"0.5.8"}]`)
	assert.NoError(t, cache.Write(models.MODRINTH, "sodium", VersionsResponse, payload))

	data, ok := cache.Read(models.MODRINTH, "sodium", VersionsResponse)
	assert.True(t, ok)
	assert.Equal(t, payload, data)

	// files are keyed per provider and per kind
	exists, _ := afero.Exists(fs, "/cache/modrinth/sodium-versions.json")
	assert.True(t, exists)

	_, ok = cache.Read(models.MODRINTH, "sodium", ProjectResponse)
	assert.False(t, ok)
	_, ok = cache.Read(models.CURSEFORGE, "sodium", VersionsResponse)
	assert.False(t, ok)
}

func TestWriteOverwrites(t *testing.T) {
	cache := New(afero.NewMemMapFs(), "/cache")

	assert.NoError(t, cache.Write(models.CURSEFORGE, "238222", ProjectResponse, []byte("old")))
	assert.NoError(t, cache.Write(models.CURSEFORGE, "238222", ProjectResponse, []byte("new")))

	data, ok := cache.Read(models.CURSEFORGE, "238222", ProjectResponse)
	assert.True(t, ok)
	assert.Equal(t, []byte("new"), data)
}
