// Package downloader fetches resolved artifact URLs into the local artifacts
// tree. URL resolution happens in the provider layer; this package only moves
// bytes.
package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	retryablehttp "github.com/hashicorp/go-retryablehttp"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/packsmith/minecraft-pack-manager/internal/httpclient"
	"github.com/packsmith/minecraft-pack-manager/internal/models"
	"github.com/packsmith/minecraft-pack-manager/internal/perf"
)

type Downloader struct {
	fs     afero.Fs
	client *retryablehttp.Client
	log    *zap.Logger
}

func New(fs afero.Fs, log *zap.Logger) *Downloader {
	if log == nil {
		log = zap.NewNop()
	}
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = nil
	return &Downloader{fs: fs, client: client, log: log}
}

// Destination lays artifacts out as {artifacts}/{gameVersion}/{type}/{file}.
func Destination(artifactsDir string, gameVersion string, artifactType models.ArtifactType, filename string) string {
	return filepath.Join(artifactsDir, gameVersion, artifactType.String(), filename)
}

// Download streams a URL to a destination path, creating parent directories
// as needed. Transient HTTP failures retry before surfacing.
func (downloader *Downloader) Download(ctx context.Context, url string, destination string) (returnErr error) {
	ctx, span := perf.StartSpan(ctx, "download.fetch",
		perf.WithAttributes(
			attribute.String("url", url),
			attribute.String("destination", destination),
		),
	)
	defer span.End()

	timeoutCtx, cancel := httpclient.WithDownloadTimeout(ctx)
	defer cancel()

	request, err := retryablehttp.NewRequestWithContext(timeoutCtx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	response, err := downloader.client.Do(request)
	if err != nil {
		if httpclient.IsTimeoutError(err) {
			return httpclient.WrapTimeoutError(err)
		}
		return err
	}
	defer func() {
		if closeErr := response.Body.Close(); closeErr != nil && returnErr == nil {
			returnErr = closeErr
		}
	}()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code downloading %s: %d", url, response.StatusCode)
	}

	if err := downloader.fs.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return err
	}

	file, err := downloader.fs.Create(destination)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && returnErr == nil {
			returnErr = closeErr
		}
	}()

	written, err := io.Copy(file, response.Body)
	if err != nil {
		return err
	}

	downloader.log.Info("downloaded artifact",
		zap.String("destination", destination),
		zap.Int64("bytes", written))
	return nil
}

// RemoveArtifact deletes a previously downloaded file, ignoring files that
// are already gone.
func (downloader *Downloader) RemoveArtifact(destination string) error {
	exists, err := afero.Exists(downloader.fs, destination)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	return downloader.fs.Remove(destination)
}
