package curseforge

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

type getProjectResponse struct {
	Data Project `json:"data"`
}

// GetProjectBytes fetches the raw project envelope so callers can persist it
// in the response cache before parsing.
func GetProjectBytes(ctx context.Context, projectId string, client httpclient.Doer) (raw []byte, returnErr error) {
	ctx, span := perf.StartSpan(ctx, "api.curseforge.project.get", perf.WithAttributes(attribute.String("project_id", projectId)))
	defer span.End()

	url := fmt.Sprintf("%s/mods/%s", GetBaseURL(), projectId)
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

	return io.ReadAll(response.Body)
}

func ParseProject(data []byte) (*Project, error) {
	var projectResponse getProjectResponse
	if err := json.Unmarshal(data, &projectResponse); err != nil {
		return nil, errors.Wrap(err, "failed to decode project response")
	}
	return &projectResponse.Data, nil
}

func GetProject(ctx context.Context, projectId string, client httpclient.Doer) (*Project, error) {
	data, err := GetProjectBytes(ctx, projectId, client)
	if err != nil {
		return nil, err
	}
	return ParseProject(data)
}
