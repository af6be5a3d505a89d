// Package minecraft queries Mojang's version manifest.
package minecraft

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/packsmith/minecraft-pack-manager/internal/httpclient"
)

const versionManifestURL = "https://launchermeta.mojang.com/mc/game/version_manifest.json"

type latest struct {
	Release  string `json:"release"`
	Snapshot string `json:"snapshot"`
}

type version struct {
	Id          string    `json:"id"`
	Type        string    `json:"type"`
	Url         string    `json:"url"`
	Time        time.Time `json:"time"`
	ReleaseTime time.Time `json:"releaseTime"`
}

type versionManifest struct {
	Latest   latest    `json:"latest"`
	Versions []version `json:"versions"`
}

func getVersionManifest(ctx context.Context, client httpclient.Doer) (*versionManifest, error) {
	timeoutCtx, cancel := httpclient.WithMetadataTimeout(ctx)
	defer cancel()

	request, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, versionManifestURL, nil)
	if err != nil {
		return nil, err
	}

	response, err := client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	var manifest versionManifest
	if err := json.NewDecoder(response.Body).Decode(&manifest); err != nil {
		return nil, err
	}

	return &manifest, nil
}

// GetLatestVersion returns the newest release identifier, or an error when
// the manifest is unreachable.
func GetLatestVersion(ctx context.Context, client httpclient.Doer) (string, error) {
	manifest, err := getVersionManifest(ctx, client)
	if err != nil {
		return "", err
	}
	return manifest.Latest.Release, nil
}

// IsValidVersion reports whether Mojang knows the given version identifier.
func IsValidVersion(ctx context.Context, version string, client httpclient.Doer) (bool, error) {
	manifest, err := getVersionManifest(ctx, client)
	if err != nil {
		return false, err
	}

	for _, v := range manifest.Versions {
		if v.Id == version {
			return true, nil
		}
	}
	return false, nil
}

// GetAllVersions lists every version identifier in the manifest, newest first.
func GetAllVersions(ctx context.Context, client httpclient.Doer) ([]string, error) {
	manifest, err := getVersionManifest(ctx, client)
	if err != nil {
		return nil, err
	}

	versions := make([]string, 0, len(manifest.Versions))
	for _, v := range manifest.Versions {
		versions = append(versions, v.Id)
	}
	return versions, nil
}
