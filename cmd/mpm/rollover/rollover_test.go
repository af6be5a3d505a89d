package rollover

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packsmith/minecraft-pack-manager/internal/app"
	"github.com/packsmith/minecraft-pack-manager/internal/models"
	"github.com/packsmith/minecraft-pack-manager/testutil/apptest"
)

func runCommand(t *testing.T, runtime *app.Runtime, args ...string) (string, error) {
	t.Helper()
	cmd := commandWithRuntime(func(*cobra.Command) (*app.Runtime, error) {
		return runtime, nil
	})
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRolloverPromotesStagedVersions(t *testing.T) {
	runtime := apptest.NewRuntime(t)
	apptest.SeedDatabase(t, runtime, []models.ModRecord{{
		ID: "fabric-installer", Type: models.SERVER, Host: models.DIRECT, ApiSource: models.DIRECT,
		CurrentVersion: "1.0.0", CurrentGameVersion: "1.21.1",
		NextVersion: "1.0.1", NextGameVersion: "1.21.2",
	}})

	output, err := runCommand(t, runtime)

	require.NoError(t, err)
	assert.Contains(t, output, "rolled 1 records forward")

	records, err := runtime.DB.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.0.1", records[0].CurrentVersion)
	assert.Equal(t, "1.21.2", records[0].CurrentGameVersion)
	assert.Empty(t, records[0].NextVersion)
}

func TestRolloverNothingStaged(t *testing.T) {
	runtime := apptest.NewRuntime(t)
	apptest.SeedDatabase(t, runtime, []models.ModRecord{{
		ID: "fabric-installer", Type: models.SERVER, Host: models.DIRECT, ApiSource: models.DIRECT,
		CurrentVersion: "1.0.0",
	}})

	output, err := runCommand(t, runtime)

	require.NoError(t, err)
	assert.Contains(t, output, "nothing staged")
}

func TestRolloverMissingDatabase(t *testing.T) {
	runtime := apptest.NewRuntime(t)

	_, err := runCommand(t, runtime)

	assert.Error(t, err)
}
