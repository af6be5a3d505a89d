package provider

import (
	"fmt"

	"github.com/packsmith/minecraft-pack-manager/internal/models"
)

type UnknownHostError struct {
	Host string
}

func (hostError *UnknownHostError) Error() string {
	return fmt.Sprintf("no provider adapter for host: %s", hostError.Host)
}

type NoVersionsError struct {
	Host      models.Host
	ProjectID string
	Loader    models.Loader
}

func (versionsError *NoVersionsError) Error() string {
	return fmt.Sprintf("no versions found on %s for %s (loader %s)", versionsError.Host, versionsError.ProjectID, versionsError.Loader)
}
