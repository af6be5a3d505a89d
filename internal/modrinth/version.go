package modrinth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/packsmith/minecraft-pack-manager/internal/globalerrors"
	"github.com/packsmith/minecraft-pack-manager/internal/httpclient"
	"github.com/packsmith/minecraft-pack-manager/internal/models"
	"github.com/packsmith/minecraft-pack-manager/internal/perf"
)

type DependencyType string

const (
	RequiredDependency DependencyType = "required"
	OptionalDependency DependencyType = "optional"
)

type VersionFileHash struct {
	Sha1   string `json:"sha1"`
	Sha512 string `json:"sha512"`
}

type VersionFile struct {
	FileName string          `json:"filename"`
	Hashes   VersionFileHash `json:"hashes"`
	Primary  bool            `json:"primary"`
	Size     int64           `json:"size"`
	Url      string          `json:"url"`
}

type VersionDependency struct {
	FileName  string         `json:"file_name"`
	ProjectId string         `json:"project_id"`
	Type      DependencyType `json:"dependency_type"`
	VersionId string         `json:"version_id"`
}

type Version struct {
	DatePublished time.Time           `json:"date_published"`
	Dependencies  []VersionDependency `json:"dependencies"`
	Files         []VersionFile       `json:"files"`
	GameVersions  []string            `json:"game_versions"`
	Loaders       []models.Loader     `json:"loaders"`
	Name          string              `json:"name"`
	ProjectId     string              `json:"project_id"`
	VersionId     string              `json:"id"`
	VersionNumber string              `json:"version_number"`
}

type Versions []Version

// GetVersionsBytes fetches the project's complete raw version list, newest
// first as the API returns it. Filtering happens in the provider layer.
func GetVersionsBytes(ctx context.Context, projectId string, client httpclient.Doer) (raw []byte, returnErr error) {
	ctx, span := perf.StartSpan(ctx, "api.modrinth.version.list", perf.WithAttributes(attribute.String("project_id", projectId)))
	defer span.End()

	url := fmt.Sprintf("%s/v2/project/%s/version", GetBaseUrl(), projectId)
	timeoutCtx, cancel := httpclient.WithMetadataTimeout(ctx)
	defer cancel()

	request, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	response, err := client.Do(request)
	if err != nil {
		if httpclient.IsTimeoutError(err) {
			err = httpclient.WrapTimeoutError(err)
		}
		return nil, globalerrors.ProjectApiErrorWrap(err, projectId, models.MODRINTH)
	}
	defer func() {
		if closeErr := response.Body.Close(); closeErr != nil && returnErr == nil {
			returnErr = closeErr
		}
	}()

	if response.StatusCode == http.StatusNotFound {
		return nil, &globalerrors.ProjectNotFoundError{
			ProjectID: projectId,
			Host:      models.MODRINTH,
		}
	}

	if response.StatusCode != http.StatusOK {
		return nil, globalerrors.ProjectApiErrorWrap(errors.Errorf("unexpected status code: %d", response.StatusCode), projectId, models.MODRINTH)
	}

	return io.ReadAll(response.Body)
}

func ParseVersions(data []byte) (Versions, error) {
	versions := Versions{}
	if err := json.Unmarshal(data, &versions); err != nil {
		return nil, errors.Wrap(err, "failed to decode version list")
	}
	return versions, nil
}

func GetVersionsForProject(ctx context.Context, projectId string, client httpclient.Doer) (Versions, error) {
	data, err := GetVersionsBytes(ctx, projectId, client)
	if err != nil {
		return nil, err
	}
	return ParseVersions(data)
}

// PrimaryFile picks the file flagged primary, falling back to the first one.
func (version Version) PrimaryFile() (VersionFile, bool) {
	if len(version.Files) == 0 {
		return VersionFile{}, false
	}
	for _, file := range version.Files {
		if file.Primary {
			return file, true
		}
	}
	return version.Files[0], true
}
