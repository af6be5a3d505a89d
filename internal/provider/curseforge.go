package provider

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/packsmith/minecraft-pack-manager/internal/apicache"
	"github.com/packsmith/minecraft-pack-manager/internal/curseforge"
	"github.com/packsmith/minecraft-pack-manager/internal/models"
	"github.com/packsmith/minecraft-pack-manager/internal/versionutil"
)

type curseforgeAdapter struct {
	options Options
	// fingerprintOfFile is swappable so tests do not need real jars on disk.
	fingerprintOfFile func(path string) (int, error)
}

func (adapter *curseforgeAdapter) client() *curseforge.Client {
	return curseforge.NewClient(adapter.options.Clients.Curseforge)
}

func (adapter *curseforgeAdapter) FetchProjectInfo(ctx context.Context, projectID string) (*ProjectInfo, error) {
	raw, err := fetchRaw(ctx, adapter.options, models.CURSEFORGE, projectID, apicache.ProjectResponse, func(ctx context.Context) ([]byte, error) {
		return curseforge.GetProjectBytes(ctx, projectID, adapter.client())
	})
	if err != nil {
		return nil, err
	}

	project, err := curseforge.ParseProject(raw)
	if err != nil {
		return nil, err
	}

	return &ProjectInfo{
		Title:       project.Name,
		Description: project.Summary,
		IconUrl:     project.Logo.Url,
		SourceUrl:   project.Links.SourceUrl,
		IssuesUrl:   project.Links.IssuesUrl,
		WikiUrl:     project.Links.WikiUrl,
	}, nil
}

func (adapter *curseforgeAdapter) ValidateVersion(ctx context.Context, request Request) Result {
	files, err := adapter.fetchFiles(ctx, request.ProjectID)
	if err != nil {
		return resultFromError(err)
	}

	filtered := filterCurseforgeFiles(files, request.Loader)

	result := Result{AvailableGameVersions: collectGameVersions(filtered)}
	if len(filtered) == 0 {
		return result
	}

	// The API presorts files newest first.
	latest := filtered[0]
	result.LatestVersion = latest.DisplayName
	result.LatestDownloadUrl = curseforgeDownloadUrl(latest)
	result.LatestGameVersion = newestGameVersion(latest.GameVersions)
	result.Dependencies.LatestRequired, result.Dependencies.LatestOptional = splitCurseforgeDependencies(latest.Dependencies)

	matched, foundByJar, ok := adapter.matchFile(ctx, filtered, request)
	if !ok {
		return result
	}

	result.Exists = true
	result.VersionFoundByJar = foundByJar
	result.MatchedVersion = matched.DisplayName
	result.MatchedDownloadUrl = curseforgeDownloadUrl(matched)
	result.Dependencies.CurrentRequired, result.Dependencies.CurrentOptional = splitCurseforgeDependencies(matched.Dependencies)

	return result
}

// fetchFiles reads the full file list through the response cache. The live
// path walks pagination first and stores the reassembled envelope.
func (adapter *curseforgeAdapter) fetchFiles(ctx context.Context, projectID string) ([]curseforge.File, error) {
	raw, err := fetchRaw(ctx, adapter.options, models.CURSEFORGE, projectID, apicache.VersionsResponse, func(ctx context.Context) ([]byte, error) {
		files, fetchErr := curseforge.GetFilesForProject(ctx, projectID, adapter.client())
		if fetchErr != nil {
			return nil, fetchErr
		}
		return curseforge.MarshalFiles(files)
	})
	if err != nil {
		return nil, err
	}
	return curseforge.ParseFiles(raw)
}

// matchFile tries normalized version equality, then the filename hint, then a
// murmur2 fingerprint lookup of the local jar.
func (adapter *curseforgeAdapter) matchFile(ctx context.Context, filtered []curseforge.File, request Request) (curseforge.File, bool, bool) {
	for _, file := range filtered {
		if versionutil.Equal(file.DisplayName, request.ExpectedVersion) || versionutil.Equal(file.FileName, request.ExpectedVersion) {
			return file, false, true
		}
	}

	if request.JarFilenameHint != "" {
		for _, file := range filtered {
			if versionutil.Equal(file.FileName, request.JarFilenameHint) {
				return file, true, true
			}
		}
	}

	if request.JarPath != "" {
		if file, ok := adapter.matchByFingerprint(ctx, filtered, request.JarPath); ok {
			return file, true, true
		}
	}

	return curseforge.File{}, false, false
}

func (adapter *curseforgeAdapter) matchByFingerprint(ctx context.Context, filtered []curseforge.File, jarPath string) (curseforge.File, bool) {
	fingerprintOf := adapter.fingerprintOfFile
	if fingerprintOf == nil {
		fingerprintOf = curseforge.FingerprintOfFile
	}

	fingerprint, err := fingerprintOf(jarPath)
	if err != nil {
		adapter.options.Log.Debug("fingerprint computation failed", zap.String("jar", jarPath), zap.Error(err))
		return curseforge.File{}, false
	}

	for _, file := range filtered {
		if file.FileFingerprint == fingerprint {
			return file, true
		}
	}

	matches, err := curseforge.GetFingerprintsMatches(ctx, []int{fingerprint}, adapter.client())
	if err != nil {
		adapter.options.Log.Debug("fingerprint lookup failed", zap.Int("fingerprint", fingerprint), zap.Error(err))
		return curseforge.File{}, false
	}

	for _, match := range matches.Matches {
		for _, file := range filtered {
			if file.Id == match.Id {
				return file, true
			}
		}
	}
	return curseforge.File{}, false
}

func filterCurseforgeFiles(files []curseforge.File, loader models.Loader) []curseforge.File {
	filtered := make([]curseforge.File, 0, len(files))
	for _, file := range files {
		if !file.IsAvailable {
			continue
		}
		if file.FileStatus != curseforge.Approved && file.FileStatus != curseforge.Released {
			continue
		}
		if !file.HasLoader(loader) {
			continue
		}
		filtered = append(filtered, file)
	}
	return filtered
}

func curseforgeDownloadUrl(file curseforge.File) string {
	if file.DownloadUrl != "" {
		return file.DownloadUrl
	}
	if file.Id == 0 || file.FileName == "" {
		return ""
	}
	return curseforge.SynthesizeDownloadUrl(file.Id, file.FileName)
}

func splitCurseforgeDependencies(dependencies []curseforge.Dependency) ([]models.Dependency, []models.Dependency) {
	var required, optional []models.Dependency
	for _, dependency := range dependencies {
		if dependency.ProjectId == 0 {
			continue
		}
		entry := models.Dependency{ID: strconv.Itoa(dependency.ProjectId)}
		switch dependency.Type {
		case curseforge.RequiredDependency:
			required = append(required, entry)
		case curseforge.OptionalDependency:
			optional = append(optional, entry)
		}
	}
	return required, optional
}

// collectGameVersions dedups the dotted-numeric tags across the file list in
// order of appearance. Ordering is not significant downstream.
func collectGameVersions(files []curseforge.File) []string {
	seen := make(map[string]bool)
	var versions []string
	for _, file := range files {
		for _, tag := range file.GameVersions {
			if !versionutil.IsGameVersion(tag) || seen[tag] {
				continue
			}
			seen[tag] = true
			versions = append(versions, tag)
		}
	}
	return versions
}
