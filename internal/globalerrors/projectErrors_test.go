package globalerrors

import (
	"errors"
	"testing"

	"github.com/packsmith/minecraft-pack-manager/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestProjectNotFoundError(t *testing.T) {
	err := &ProjectNotFoundError{ProjectID: "sodium", Host: models.MODRINTH}

	assert.EqualError(t, err, "Project not found on modrinth: sodium")
	assert.ErrorIs(t, err, &ProjectNotFoundError{ProjectID: "sodium", Host: models.MODRINTH})
	assert.NotErrorIs(t, err, &ProjectNotFoundError{ProjectID: "sodium", Host: models.CURSEFORGE})
}

func TestProjectApiErrorWrap(t *testing.T) {
	cause := errors.New("boom")
	err := ProjectApiErrorWrap(cause, "238222", models.CURSEFORGE)

	assert.EqualError(t, err, "Project cannot be fetched due to an api error on curseforge: 238222")
	assert.ErrorIs(t, err, cause)

	var apiErr *ProjectApiError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "238222", apiErr.ProjectID)
}
