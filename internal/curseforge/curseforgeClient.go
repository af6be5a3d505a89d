package curseforge

import (
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/packsmith/minecraft-pack-manager/internal/environment"
	"github.com/packsmith/minecraft-pack-manager/internal/httpclient"
	"github.com/packsmith/minecraft-pack-manager/internal/perf"
)

const defaultBaseURL = "https://api.curseforge.com/v1"

var baseURL = defaultBaseURL

type Client struct {
	client httpclient.Doer
}

func NewClient(doer httpclient.Doer) *Client {
	return &Client{client: doer}
}

func (curseforgeClient *Client) Do(request *http.Request) (*http.Response, error) {
	ctx, span := perf.StartSpan(request.Context(), "api.curseforge.http.request", perf.WithAttributes(attribute.String("url", request.URL.String())))
	defer span.End()
	headers := map[string]string{
		"Accept":    "application/json",
		"x-api-key": environment.CurseforgeAPIKey(),
	}

	for key, value := range headers {
		request.Header.Add(key, value)
	}

	return curseforgeClient.client.Do(request.WithContext(ctx))
}

func GetBaseURL() string {
	return baseURL
}

// SetBaseURL overrides the API host, for mirrors and tests. An empty value
// restores the default.
func SetBaseURL(url string) {
	if url == "" {
		baseURL = defaultBaseURL
		return
	}
	baseURL = url
}
