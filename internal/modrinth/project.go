package modrinth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/packsmith/minecraft-pack-manager/internal/globalerrors"
	"github.com/packsmith/minecraft-pack-manager/internal/httpclient"
	"github.com/packsmith/minecraft-pack-manager/internal/models"
	"github.com/packsmith/minecraft-pack-manager/internal/perf"
)

type ProjectEnvironment string

const (
	Required    ProjectEnvironment = "required"
	Optional    ProjectEnvironment = "optional"
	Unsupported ProjectEnvironment = "unsupported"
)

type Project struct {
	Id           string             `json:"id"`
	Title        string             `json:"title"`
	Slug         string             `json:"slug"`
	Description  string             `json:"description"`
	IconUrl      string             `json:"icon_url"`
	SourceUrl    string             `json:"source_url"`
	IssuesUrl    string             `json:"issues_url"`
	WikiUrl      string             `json:"wiki_url"`
	ClientSide   ProjectEnvironment `json:"client_side"`
	ServerSide   ProjectEnvironment `json:"server_side"`
	Type         string             `json:"project_type"`
	GameVersions []string           `json:"game_versions"`
	Loaders      []models.Loader    `json:"loaders"`
}

// GetProjectBytes fetches the raw project document so callers can persist it
// in the response cache before parsing.
func GetProjectBytes(ctx context.Context, projectId string, client httpclient.Doer) (raw []byte, returnErr error) {
	ctx, span := perf.StartSpan(ctx, "api.modrinth.project.get", perf.WithAttributes(attribute.String("project_id", projectId)))
	defer span.End()

	url := fmt.Sprintf("%s/v2/project/%s", GetBaseUrl(), projectId)
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

func ParseProject(data []byte) (*Project, error) {
	project := &Project{}
	if err := json.Unmarshal(data, project); err != nil {
		return nil, errors.Wrap(err, "failed to decode project response")
	}
	return project, nil
}

func GetProject(ctx context.Context, projectId string, client httpclient.Doer) (*Project, error) {
	data, err := GetProjectBytes(ctx, projectId, client)
	if err != nil {
		return nil, err
	}
	return ParseProject(data)
}
