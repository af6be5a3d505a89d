package add

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/packsmith/minecraft-pack-manager/internal/app"
	"github.com/packsmith/minecraft-pack-manager/internal/httpclient"
	"github.com/packsmith/minecraft-pack-manager/internal/models"
	"github.com/packsmith/minecraft-pack-manager/testutil"
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

func TestAddSystemEntry(t *testing.T) {
	runtime := apptest.NewRuntime(t)
	apptest.SeedDatabase(t, runtime, nil)

	output, err := runCommand(t, runtime, "fabric-installer", "--type", "installer", "--version", "1.0.1")

	require.NoError(t, err)
	assert.Contains(t, output, "added fabric-installer")

	records, err := runtime.DB.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.DIRECT, records[0].Host)
	assert.Equal(t, "1.0.1", records[0].CurrentVersion)
	assert.Equal(t, "1.21.1", records[0].CurrentGameVersion, "configured default applies")
}

func TestAddDuplicate(t *testing.T) {
	runtime := apptest.NewRuntime(t)
	apptest.SeedDatabase(t, runtime, []models.ModRecord{{
		ID: "fabric-installer", Type: models.INSTALLER, Host: models.DIRECT, ApiSource: models.DIRECT,
		CurrentVersion: "1.0.0",
	}})

	_, err := runCommand(t, runtime, "fabric-installer", "--type", "installer")

	assert.Error(t, err)
}

func TestAddRejectsUnknownGameVersion(t *testing.T) {
	runtime := apptest.NewRuntime(t)
	apptest.SeedDatabase(t, runtime, nil)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"latest":{"release":"1.21.1"},"versions":[{"id":"1.21.1"},{"id":"1.21"}]}`))
	}))
	defer server.Close()

	client := httpclient.NewRLClient(rate.NewLimiter(rate.Inf, 1))
	client.RetryConfig = httpclient.NoRetries()
	runtime.Minecraft = testutil.MustNewHostRewriteDoer(server.URL, client)

	_, err := runCommand(t, runtime, "fabric-installer", "--type", "installer", "--game-version", "1.99")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a known minecraft version")
}

func TestAddRequiresID(t *testing.T) {
	runtime := apptest.NewRuntime(t)

	_, err := runCommand(t, runtime)

	assert.Error(t, err)
}
