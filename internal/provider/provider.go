// Package provider resolves and validates upstream versions for managed
// artifacts. Each host gets its own adapter behind a shared contract; network
// and parsing failures never escape as errors, they come back inside the
// validation result.
package provider

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/packsmith/minecraft-pack-manager/internal/apicache"
	"github.com/packsmith/minecraft-pack-manager/internal/httpclient"
	"github.com/packsmith/minecraft-pack-manager/internal/models"
	"github.com/packsmith/minecraft-pack-manager/internal/perf"
)

type Request struct {
	ProjectID       string
	ExpectedVersion string
	Loader          models.Loader
	// JarFilenameHint enables filename matching when the expected version is
	// stale relative to what upstream actually published.
	JarFilenameHint string
	// JarPath points at a local artifact for fingerprint lookup, the last
	// resort when neither version nor filename matches.
	JarPath string
}

type Dependencies struct {
	CurrentRequired []models.Dependency
	CurrentOptional []models.Dependency
	LatestRequired  []models.Dependency
	LatestOptional  []models.Dependency
}

// Result is the complete outcome of a validation pass. Exists=false with a
// nil Err means the project or version genuinely is not there; Err carries
// transient API failures.
type Result struct {
	Exists                bool
	MatchedVersion        string
	MatchedDownloadUrl    string
	VersionFoundByJar     bool
	LatestVersion         string
	LatestDownloadUrl     string
	LatestGameVersion     string
	AvailableGameVersions []string
	Dependencies          Dependencies
	Err                   error
}

// ProjectInfo carries the display metadata a record caches from upstream.
type ProjectInfo struct {
	Title                 string
	Description           string
	IconUrl               string
	SourceUrl             string
	IssuesUrl             string
	WikiUrl               string
	ClientSide            string
	ServerSide            string
	AvailableGameVersions []string
}

type Adapter interface {
	ValidateVersion(ctx context.Context, request Request) Result
	FetchProjectInfo(ctx context.Context, projectID string) (*ProjectInfo, error)
}

type Clients struct {
	Modrinth   httpclient.Doer
	Curseforge httpclient.Doer
}

func DefaultClients(limiter *rate.Limiter) Clients {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	client := httpclient.NewRLClient(limiter)
	return Clients{
		Modrinth:   client,
		Curseforge: client,
	}
}

type Options struct {
	Clients  Clients
	Cache    *apicache.Cache
	UseCache bool
	Log      *zap.Logger
}

// ForHost returns the adapter variant for a host. DIRECT records never
// validate against an API, so asking for their adapter is a caller bug.
func ForHost(host models.Host, options Options) (Adapter, error) {
	if options.Log == nil {
		options.Log = zap.NewNop()
	}
	switch host {
	case models.MODRINTH:
		return &modrinthAdapter{options: options}, nil
	case models.CURSEFORGE:
		return &curseforgeAdapter{options: options}, nil
	default:
		return nil, &UnknownHostError{Host: host.String()}
	}
}

// Validate wraps adapter dispatch and the never-throws conversion in one
// call. Errors picking the adapter surface inside the result like any other
// failure.
func Validate(ctx context.Context, host models.Host, request Request, options Options) Result {
	ctx, span := perf.StartSpan(ctx, "provider.validate",
		perf.WithAttributes(
			attribute.String("host", host.String()),
			attribute.String("project_id", request.ProjectID),
			attribute.String("loader", request.Loader.String()),
			attribute.String("expected_version", request.ExpectedVersion),
		),
	)
	defer span.End()

	adapter, err := ForHost(host, options)
	if err != nil {
		return Result{Err: err}
	}

	result := adapter.ValidateVersion(ctx, request)
	span.SetAttributes(
		attribute.Bool("exists", result.Exists),
		attribute.Bool("found_by_jar", result.VersionFoundByJar),
	)
	if result.Err != nil {
		span.SetAttributes(attribute.String("error_type", fmt.Sprintf("%T", result.Err)))
	}
	return result
}

// fetchRaw is the shared read-through cache path: replay a stored response
// when the caller opted in, otherwise hit the live API and persist the raw
// bytes for next time. Cache write failures only warn.
func fetchRaw(ctx context.Context, options Options, host models.Host, id string, kind apicache.Kind, live func(context.Context) ([]byte, error)) ([]byte, error) {
	if options.UseCache && options.Cache != nil {
		if data, ok := options.Cache.Read(host, id, kind); ok {
			options.Log.Debug("using cached response",
				zap.String("host", host.String()),
				zap.String("project", id),
				zap.String("kind", string(kind)),
			)
			return data, nil
		}
	}

	data, err := live(ctx)
	if err != nil {
		return nil, err
	}

	if options.Cache != nil {
		if writeErr := options.Cache.Write(host, id, kind, data); writeErr != nil {
			options.Log.Warn("failed to persist response cache",
				zap.String("host", host.String()),
				zap.String("project", id),
				zap.Error(writeErr),
			)
		}
	}
	return data, nil
}
