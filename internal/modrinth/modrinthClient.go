package modrinth

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/packsmith/minecraft-pack-manager/internal/environment"
	"github.com/packsmith/minecraft-pack-manager/internal/httpclient"
	"github.com/packsmith/minecraft-pack-manager/internal/perf"
)

const defaultBaseURL = "https://api.modrinth.com"

var baseURL = defaultBaseURL

type Client struct {
	client httpclient.Doer
}

func NewClient(doer httpclient.Doer) *Client {
	return &Client{client: doer}
}

func (modrinthClient *Client) Do(request *http.Request) (*http.Response, error) {
	ctx, span := perf.StartSpan(request.Context(), "api.modrinth.http.request", perf.WithAttributes(attribute.String("url", request.URL.String())))
	defer span.End()
	headers := map[string]string{
		"user-agent":    fmt.Sprintf("github_com/packsmith/minecraft-pack-manager/%s", environment.AppVersion()),
		"Accept":        "application/json",
		"Authorization": environment.ModrinthAPIKey(),
	}

	for key, value := range headers {
		request.Header.Add(key, value)
	}

	return modrinthClient.client.Do(request.WithContext(ctx))
}

func GetBaseUrl() string {
	return baseURL
}

// SetBaseUrl overrides the API host, for mirrors and tests. An empty value
// restores the default.
func SetBaseUrl(url string) {
	if url == "" {
		baseURL = defaultBaseURL
		return
	}
	baseURL = url
}
