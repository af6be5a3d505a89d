package curseforge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/packsmith/minecraft-pack-manager/internal/globalerrors"
	"github.com/packsmith/minecraft-pack-manager/internal/httpclient"
	"github.com/packsmith/minecraft-pack-manager/internal/models"
	"github.com/packsmith/minecraft-pack-manager/internal/perf"
)

type getFilesResponse struct {
	Data       []File     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

func getPaginatedFilesForProject(ctx context.Context, projectId string, client httpclient.Doer, cursor int) (filesResponse *getFilesResponse, returnErr error) {
	ctx, span := perf.StartSpan(ctx, "api.curseforge.project.files.list",
		perf.WithAttributes(
			attribute.String("project_id", projectId),
			attribute.Int("cursor", cursor),
		),
	)
	defer span.End()

	url := fmt.Sprintf("%s/mods/%s/files?index=%d", GetBaseURL(), projectId, cursor)
	timeoutCtx, cancel := httpclient.WithMetadataTimeout(ctx)
	defer cancel()
	request, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	response, err := client.Do(request)
	if err != nil {
		if httpclient.IsTimeoutError(err) {
			return nil, httpclient.WrapTimeoutError(err)
		}
		return nil, globalerrors.ProjectApiErrorWrap(err, projectId, models.CURSEFORGE)
	}
	defer func() {
		if closeErr := response.Body.Close(); closeErr != nil && returnErr == nil {
			returnErr = closeErr
		}
	}()

	if response.StatusCode == http.StatusNotFound {
		return nil, &globalerrors.ProjectNotFoundError{
			ProjectID: projectId,
			Host:      models.CURSEFORGE,
		}
	}

	if response.StatusCode != http.StatusOK {
		return nil, globalerrors.ProjectApiErrorWrap(errors.Errorf("unexpected status code: %d", response.StatusCode), projectId, models.CURSEFORGE)
	}

	var decodedFilesResponse getFilesResponse
	err = json.NewDecoder(response.Body).Decode(&decodedFilesResponse)
	if err != nil {
		return nil, globalerrors.ProjectApiErrorWrap(errors.Wrap(err, "failed to decode response body"), projectId, models.CURSEFORGE)
	}

	return &decodedFilesResponse, nil
}

// GetFilesForProject follows the pagination cursor until the full file list
// is assembled. The upstream list is presorted newest-first.
func GetFilesForProject(ctx context.Context, projectId string, client httpclient.Doer) ([]File, error) {
	var files []File
	cursor := 0
	for {
		filesResponse, err := getPaginatedFilesForProject(ctx, projectId, client, cursor)
		if err != nil {
			return nil, err
		}

		files = append(files, filesResponse.Data...)
		if (cursor + filesResponse.Pagination.ResultCount) >= filesResponse.Pagination.TotalCount {
			break
		}
		if filesResponse.Pagination.ResultCount == 0 {
			break
		}

		cursor += filesResponse.Pagination.ResultCount
	}

	return files, nil
}

// MarshalFiles re-wraps an assembled file list in the API's response envelope
// so the sidecar cache stores the same shape a single response would have.
func MarshalFiles(files []File) ([]byte, error) {
	return json.Marshal(getFilesResponse{
		Data: files,
		Pagination: Pagination{
			ResultCount: len(files),
			TotalCount:  len(files),
		},
	})
}

func ParseFiles(data []byte) ([]File, error) {
	var filesResponse getFilesResponse
	if err := json.Unmarshal(data, &filesResponse); err != nil {
		return nil, errors.Wrap(err, "failed to decode files response")
	}
	return filesResponse.Data, nil
}

// SynthesizeDownloadUrl builds the canonical CDN download URL for files whose
// API record omits one. The file ID splits into the CDN's two path segments.
func SynthesizeDownloadUrl(fileId int, fileName string) string {
	return fmt.Sprintf("https://edge.forgecdn.net/files/%d/%d/%s", fileId/1000, fileId%1000, fileName)
}

// Hash returns the file's hash for the given algorithm.
func (file File) Hash(algorithm FileHashAlgorithm) (string, bool) {
	for _, hash := range file.Hashes {
		if hash.Algorithm == algorithm && hash.Hash != "" {
			return hash.Hash, true
		}
	}
	return "", false
}

// HasGameVersion reports whether the file supports a game version tag,
// matching case and whitespace insensitively against both tag lists.
func (file File) HasGameVersion(version string) bool {
	for _, gv := range file.SortableGameVersions {
		if tagEquals(gv.GameVersionName, version) || tagEquals(gv.GameVersion, version) {
			return true
		}
	}
	for _, gv := range file.GameVersions {
		if tagEquals(gv, version) {
			return true
		}
	}
	return false
}

// HasLoader reports whether the file is tagged with the loader. CurseForge
// mixes loader names into the gameVersions tag list.
func (file File) HasLoader(loader models.Loader) bool {
	if loader == models.NONE {
		return true
	}
	for _, gv := range file.GameVersions {
		if tagEquals(gv, loader.String()) {
			return true
		}
	}
	for _, gv := range file.SortableGameVersions {
		if tagEquals(gv.GameVersionName, loader.String()) {
			return true
		}
	}
	return false
}

func tagEquals(a string, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
