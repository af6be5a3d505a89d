package downloader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packsmith/minecraft-pack-manager/internal/models"
)

func TestDestination(t *testing.T) {
	assert.Equal(t,
		"/artifacts/1.21.1/mod/sodium-0.6.0.jar",
		Destination("/artifacts", "1.21.1", models.MOD, "sodium-0.6.0.jar"))
}

func TestDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("jar bytes"))
	}))
	t.Cleanup(server.Close)

	fs := afero.NewMemMapFs()
	downloader := New(fs, nil)

	destination := Destination("/artifacts", "1.21.1", models.MOD, "sodium.jar")
	err := downloader.Download(context.Background(), server.URL, destination)

	require.NoError(t, err)
	data, err := afero.ReadFile(fs, destination)
	require.NoError(t, err)
	assert.Equal(t, "jar bytes", string(data))
}

func TestDownloadMissingUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	fs := afero.NewMemMapFs()
	downloader := New(fs, nil)

	err := downloader.Download(context.Background(), server.URL, "/artifacts/missing.jar")

	assert.Error(t, err)
	exists, _ := afero.Exists(fs, "/artifacts/missing.jar")
	assert.False(t, exists)
}

func TestRemoveArtifact(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/artifacts/old.jar", []byte("x"), 0o644))
	downloader := New(fs, nil)

	require.NoError(t, downloader.RemoveArtifact("/artifacts/old.jar"))
	exists, _ := afero.Exists(fs, "/artifacts/old.jar")
	assert.False(t, exists)

	assert.NoError(t, downloader.RemoveArtifact("/artifacts/old.jar"), "second removal is a no-op")
}
