package modrinth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/packsmith/minecraft-pack-manager/internal/globalerrors"
	"github.com/packsmith/minecraft-pack-manager/internal/httpclient"
	"github.com/packsmith/minecraft-pack-manager/internal/models"
	"github.com/packsmith/minecraft-pack-manager/testutil"
)

func testClient(t *testing.T, handler http.HandlerFunc) httpclient.Doer {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	rl := httpclient.NewRLClient(rate.NewLimiter(rate.Inf, 0))
	rl.RetryConfig = httpclient.NoRetries()
	return NewClient(testutil.MustNewHostRewriteDoer(server.URL, rl))
}

func TestGetProject(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/project/sodium", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{
			"id": "AANobbMI",
			"slug": "sodium",
			"title": "Sodium",
			"description": "A modern rendering engine",
			"icon_url": "https://cdn.modrinth.com/icon.png",
			"source_url": "https://github.com/CaffeineMC/sodium",
			"client_side": "required",
			"server_side": "unsupported",
			"project_type": "mod",
			"game_versions": ["1.20.1", "1.21.1", "1.21.2"],
			"loaders": ["fabric", "quilt"]
		}`))
	})

	project, err := GetProject(context.Background(), "sodium", client)

	assert.NoError(t, err)
	assert.Equal(t, "Sodium", project.Title)
	assert.Equal(t, Required, project.ClientSide)
	assert.Equal(t, Unsupported, project.ServerSide)
	assert.Equal(t, []string{"1.20.1", "1.21.1", "1.21.2"}, project.GameVersions)
	assert.Equal(t, []models.Loader{models.FABRIC, models.QUILT}, project.Loaders)
}

func TestGetProjectNotFound(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := GetProject(context.Background(), "nope", client)

	var notFound *globalerrors.ProjectNotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, models.MODRINTH, notFound.Host)
}

func TestGetProjectUnexpectedStatus(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := GetProject(context.Background(), "sodium", client)

	var apiErr *globalerrors.ProjectApiError
	assert.ErrorAs(t, err, &apiErr)
}

func TestParseProjectMalformed(t *testing.T) {
	_, err := ParseProject([]byte("not json"))
	assert.ErrorContains(t, err, "failed to decode project response")
}
