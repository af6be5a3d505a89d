package minecraft

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/packsmith/minecraft-pack-manager/internal/httpclient"
	"github.com/packsmith/minecraft-pack-manager/testutil"
)

const manifestPayload = `{
	"latest": {"release": "1.21.2", "snapshot": "24w40a"},
	"versions": [
		{"id": "24w40a", "type": "snapshot"},
		{"id": "1.21.2", "type": "release"},
		{"id": "1.21.1", "type": "release"},
		{"id": "1.20.1", "type": "release"}
	]
}`

func manifestClient(t *testing.T) httpclient.Doer {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(manifestPayload)); err != nil {
			t.Fatalf("write manifest: %v", err)
		}
	}))
	t.Cleanup(server.Close)
	return testutil.MustNewHostRewriteDoer(server.URL, httpclient.NewRLClient(rate.NewLimiter(rate.Inf, 0)))
}

func TestGetLatestVersion(t *testing.T) {
	latest, err := GetLatestVersion(context.Background(), manifestClient(t))
	assert.NoError(t, err)
	assert.Equal(t, "1.21.2", latest)
}

func TestIsValidVersion(t *testing.T) {
	client := manifestClient(t)

	valid, err := IsValidVersion(context.Background(), "1.21.1", client)
	assert.NoError(t, err)
	assert.True(t, valid)

	valid, err = IsValidVersion(context.Background(), "9.9.9", client)
	assert.NoError(t, err)
	assert.False(t, valid)
}

func TestGetAllVersions(t *testing.T) {
	versions, err := GetAllVersions(context.Background(), manifestClient(t))
	assert.NoError(t, err)
	assert.Equal(t, []string{"24w40a", "1.21.2", "1.21.1", "1.20.1"}, versions)
}

func TestManifestUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	rl := httpclient.NewRLClient(rate.NewLimiter(rate.Inf, 0))
	rl.RetryConfig = httpclient.NoRetries()
	client := testutil.MustNewHostRewriteDoer(server.URL, rl)

	_, err := GetLatestVersion(context.Background(), client)
	// decoding an empty 503 body fails; the caller gets an error, not a panic
	assert.Error(t, err)
}
