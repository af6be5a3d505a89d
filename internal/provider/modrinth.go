package provider

import (
	"context"
	"errors"
	"strings"

	"github.com/packsmith/minecraft-pack-manager/internal/apicache"
	"github.com/packsmith/minecraft-pack-manager/internal/globalerrors"
	"github.com/packsmith/minecraft-pack-manager/internal/models"
	"github.com/packsmith/minecraft-pack-manager/internal/modrinth"
	"github.com/packsmith/minecraft-pack-manager/internal/versionutil"
)

type modrinthAdapter struct {
	options Options
}

func (adapter *modrinthAdapter) client() *modrinth.Client {
	return modrinth.NewClient(adapter.options.Clients.Modrinth)
}

func (adapter *modrinthAdapter) FetchProjectInfo(ctx context.Context, projectID string) (*ProjectInfo, error) {
	raw, err := fetchRaw(ctx, adapter.options, models.MODRINTH, projectID, apicache.ProjectResponse, func(ctx context.Context) ([]byte, error) {
		return modrinth.GetProjectBytes(ctx, projectID, adapter.client())
	})
	if err != nil {
		return nil, err
	}

	project, err := modrinth.ParseProject(raw)
	if err != nil {
		return nil, err
	}

	return &ProjectInfo{
		Title:                 project.Title,
		Description:           project.Description,
		IconUrl:               project.IconUrl,
		SourceUrl:             project.SourceUrl,
		IssuesUrl:             project.IssuesUrl,
		WikiUrl:               project.WikiUrl,
		ClientSide:            string(project.ClientSide),
		ServerSide:            string(project.ServerSide),
		AvailableGameVersions: project.GameVersions,
	}, nil
}

func (adapter *modrinthAdapter) ValidateVersion(ctx context.Context, request Request) Result {
	info, err := adapter.FetchProjectInfo(ctx, request.ProjectID)
	if err != nil {
		return resultFromError(err)
	}

	raw, err := fetchRaw(ctx, adapter.options, models.MODRINTH, request.ProjectID, apicache.VersionsResponse, func(ctx context.Context) ([]byte, error) {
		return modrinth.GetVersionsBytes(ctx, request.ProjectID, adapter.client())
	})
	if err != nil {
		return resultFromError(err)
	}

	versions, err := modrinth.ParseVersions(raw)
	if err != nil {
		return resultFromError(err)
	}

	filtered := filterModrinthVersions(versions, request.Loader)

	result := Result{AvailableGameVersions: info.AvailableGameVersions}
	if len(filtered) == 0 {
		return result
	}

	latest := pickModrinthLatest(filtered, info.AvailableGameVersions)
	result.LatestVersion = latest.VersionNumber
	result.LatestGameVersion = newestGameVersion(latest.GameVersions)
	if file, ok := latest.PrimaryFile(); ok {
		result.LatestDownloadUrl = file.Url
	}
	result.Dependencies.LatestRequired, result.Dependencies.LatestOptional = splitModrinthDependencies(latest.Dependencies)

	matched, foundByJar, ok := matchModrinthVersion(filtered, request)
	if !ok {
		return result
	}

	result.Exists = true
	result.VersionFoundByJar = foundByJar
	result.MatchedVersion = matched.VersionNumber
	if file, fileOk := matched.PrimaryFile(); fileOk {
		result.MatchedDownloadUrl = file.Url
	}
	result.Dependencies.CurrentRequired, result.Dependencies.CurrentOptional = splitModrinthDependencies(matched.Dependencies)

	return result
}

func filterModrinthVersions(versions modrinth.Versions, loader models.Loader) modrinth.Versions {
	if loader == models.NONE {
		return versions
	}

	var filtered modrinth.Versions
	for _, version := range versions {
		for _, candidate := range version.Loaders {
			if strings.EqualFold(strings.TrimSpace(candidate.String()), loader.String()) {
				filtered = append(filtered, version)
				break
			}
		}
	}
	return filtered
}

// pickModrinthLatest prefers the first entry supporting the project's newest
// declared game version. The project lists game versions oldest to newest and
// the version list arrives newest first.
func pickModrinthLatest(filtered modrinth.Versions, availableGameVersions []string) modrinth.Version {
	if len(availableGameVersions) > 0 {
		newest := availableGameVersions[len(availableGameVersions)-1]
		for _, version := range filtered {
			for _, gameVersion := range version.GameVersions {
				if gameVersion == newest {
					return version
				}
			}
		}
	}
	return filtered[0]
}

// matchModrinthVersion finds the requested version by normalized equality,
// falling back to the jar filename hint. A filename match means the caller's
// expected version string was stale, so the flag travels with the result.
func matchModrinthVersion(filtered modrinth.Versions, request Request) (modrinth.Version, bool, bool) {
	for _, version := range filtered {
		if versionutil.Equal(version.VersionNumber, request.ExpectedVersion) {
			return version, false, true
		}
	}

	if request.JarFilenameHint != "" {
		for _, version := range filtered {
			for _, file := range version.Files {
				if versionutil.Equal(file.FileName, request.JarFilenameHint) {
					return version, true, true
				}
			}
		}
	}

	return modrinth.Version{}, false, false
}

func splitModrinthDependencies(dependencies []modrinth.VersionDependency) ([]models.Dependency, []models.Dependency) {
	var required, optional []models.Dependency
	for _, dependency := range dependencies {
		if dependency.ProjectId == "" {
			continue
		}
		entry := models.Dependency{ID: dependency.ProjectId, Constraint: dependency.VersionId}
		switch dependency.Type {
		case modrinth.RequiredDependency:
			required = append(required, entry)
		case modrinth.OptionalDependency:
			optional = append(optional, entry)
		}
	}
	return required, optional
}

// newestGameVersion picks the highest dotted-numeric tag from a version's
// game version list, tolerating snapshot labels mixed in.
func newestGameVersion(gameVersions []string) string {
	newest := ""
	for _, candidate := range gameVersions {
		if !versionutil.IsGameVersion(candidate) {
			continue
		}
		if newest == "" || versionutil.Less(newest, candidate) {
			newest = candidate
		}
	}
	if newest == "" && len(gameVersions) > 0 {
		return gameVersions[len(gameVersions)-1]
	}
	return newest
}

// resultFromError converts fetch failures into the result contract. A missing
// project is a plain "does not exist", everything else is a transient error
// the caller can report per record.
func resultFromError(err error) Result {
	var notFound *globalerrors.ProjectNotFoundError
	if errors.As(err, &notFound) {
		return Result{}
	}
	return Result{Err: err}
}
