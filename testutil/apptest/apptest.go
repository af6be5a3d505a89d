// Package apptest builds in-memory application runtimes for command tests.
package apptest

import (
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/packsmith/minecraft-pack-manager/internal/app"
	"github.com/packsmith/minecraft-pack-manager/internal/config"
	"github.com/packsmith/minecraft-pack-manager/internal/models"
	"github.com/packsmith/minecraft-pack-manager/internal/recordhash"
)

// NewRuntime builds an application runtime over an in-memory filesystem for
// command tests.
func NewRuntime(t *testing.T) *app.Runtime {
	t.Helper()
	cfg := config.Config{
		DatabasePath:       "/data/modlist.csv",
		CacheDir:           "/data/cache",
		ArtifactsDir:       "/data/artifacts",
		DefaultGameVersion: "1.21.1",
	}
	return app.New(afero.NewMemMapFs(), cfg, zap.NewNop(), false)
}

// SeedDatabase writes records to the runtime's database file with fresh
// hashes, the way a previous healthy run would have left them.
func SeedDatabase(t *testing.T, runtime *app.Runtime, records []models.ModRecord) {
	t.Helper()
	for index := range records {
		recordhash.Assign(&records[index])
	}
	content, err := gocsv.MarshalString(&records)
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(runtime.Fs, runtime.Config.DatabasePath, []byte(content), 0o644))
}
