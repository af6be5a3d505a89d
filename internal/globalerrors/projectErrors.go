package globalerrors

import (
	"fmt"

	"github.com/packsmith/minecraft-pack-manager/internal/models"
)

type ProjectNotFoundError struct {
	ProjectID string
	Host      models.Host
}

func (e *ProjectNotFoundError) Error() string {
	return fmt.Sprintf("Project not found on %s: %s", e.Host, e.ProjectID)
}

func (e *ProjectNotFoundError) Is(target error) bool {
	t, ok := target.(*ProjectNotFoundError)
	if !ok {
		return false
	}
	return e.ProjectID == t.ProjectID && e.Host == t.Host
}

type ProjectApiError struct {
	ProjectID string
	Host      models.Host
	Err       error
}

func (e *ProjectApiError) Error() string {
	return fmt.Sprintf("Project cannot be fetched due to an api error on %s: %s", e.Host, e.ProjectID)
}

func (e *ProjectApiError) Is(target error) bool {
	t, ok := target.(*ProjectApiError)
	if !ok {
		return false
	}
	return e.ProjectID == t.ProjectID && e.Host == t.Host
}

func (e *ProjectApiError) Unwrap() error {
	return e.Err
}

func ProjectApiErrorWrap(err error, projectId string, host models.Host) error {
	return &ProjectApiError{
		ProjectID: projectId,
		Host:      host,
		Err:       err,
	}
}
