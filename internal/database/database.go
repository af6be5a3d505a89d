// Package database owns the CSV pack database: loading with schema
// self-healing and integrity checks, bulk validation against the hosting
// APIs, staging and rolling over version upgrades.
package database

import (
	"context"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/packsmith/minecraft-pack-manager/internal/downloader"
	"github.com/packsmith/minecraft-pack-manager/internal/models"
	"github.com/packsmith/minecraft-pack-manager/internal/provider"
	"github.com/packsmith/minecraft-pack-manager/internal/reconcile"
	"github.com/packsmith/minecraft-pack-manager/internal/recordhash"
	"github.com/packsmith/minecraft-pack-manager/internal/schema"
)

// validator is the slice of the provider layer the database needs. Tests
// substitute a canned implementation.
type validator interface {
	Validate(ctx context.Context, host models.Host, request provider.Request) provider.Result
	ProjectInfo(ctx context.Context, host models.Host, projectID string) (*provider.ProjectInfo, error)
}

type liveValidator struct {
	options provider.Options
}

func (live *liveValidator) Validate(ctx context.Context, host models.Host, request provider.Request) provider.Result {
	return provider.Validate(ctx, host, request, live.options)
}

func (live *liveValidator) ProjectInfo(ctx context.Context, host models.Host, projectID string) (*provider.ProjectInfo, error) {
	adapter, err := provider.ForHost(host, live.options)
	if err != nil {
		return nil, err
	}
	return adapter.FetchProjectInfo(ctx, projectID)
}

type Options struct {
	Log      *zap.Logger
	Defaults schema.Defaults
	Provider provider.Options
	// ArtifactsDir locates downloaded jars for fingerprint identification.
	ArtifactsDir string
	// Clock stamps backup filenames; nil means wall clock.
	Clock func() time.Time
}

type Database struct {
	fs           afero.Fs
	path         string
	log          *zap.Logger
	defaults     schema.Defaults
	artifactsDir string
	validator    validator
	clock        func() time.Time
}

func New(fs afero.Fs, path string, options Options) *Database {
	log := options.Log
	if log == nil {
		log = zap.NewNop()
	}
	clock := options.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Database{
		fs:           fs,
		path:         path,
		log:          log,
		defaults:     options.Defaults,
		artifactsDir: options.ArtifactsDir,
		validator:    &liveValidator{options: options.Provider},
		clock:        clock,
	}
}

// Load reads the database, healing missing columns and adopting or repairing
// record hashes along the way. Records whose stored hash disagrees with their
// content are treated as externally edited: their API-derived metadata is
// refreshed from upstream while the operator's pinned version fields stay
// exactly as found. The file is rewritten only when something changed.
func (database *Database) Load(ctx context.Context) ([]models.ModRecord, error) {
	_, records, err := database.load(ctx)
	return records, err
}

// load keeps the raw table alongside the typed records so later writes can
// carry operator-added columns through unchanged.
func (database *Database) load(ctx context.Context) (*schema.Table, []models.ModRecord, error) {
	exists, err := afero.Exists(database.fs, database.path)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		return nil, nil, &NotFoundError{Path: database.path}
	}

	table, err := schema.Read(database.fs, database.path)
	if err != nil {
		return nil, nil, err
	}

	if schema.EnsureColumns(table, database.defaults) {
		if _, backupErr := schema.Backup(database.fs, database.path, schema.BackupColumns, database.clock()); backupErr != nil {
			return nil, nil, backupErr
		}
		if writeErr := table.Write(database.fs, database.path); writeErr != nil {
			return nil, nil, writeErr
		}
		database.log.Info("database schema healed", zap.String("path", database.path))
	}

	records := make([]models.ModRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		records = append(records, models.FromRow(table.RowMap(row)))
	}

	dirty := false
	for index := range records {
		record := &records[index]
		switch {
		case record.RecordHash == "":
			// First touch, not drift.
			recordhash.Assign(record)
			dirty = true
		case !recordhash.Verify(*record):
			database.log.Warn("record modified outside the tool, refreshing metadata",
				zap.String("id", record.ID))
			database.refreshDriftedRecord(ctx, record)
			recordhash.Assign(record)
			dirty = true
		}
	}

	if models.CleanSystemEntries(records) {
		for index := range records {
			if records[index].IsSystemEntry() {
				recordhash.Assign(&records[index])
			}
		}
		dirty = true
	}

	if dirty {
		// Hash adoption and metadata catch-up only; no backup needed.
		if err := database.persist(table, records); err != nil {
			return nil, nil, err
		}
	}

	return table, records, nil
}

// refreshDriftedRecord re-validates one externally modified record. Only
// upstream-derived fields are overwritten; a failed or skipped validation
// leaves the record as the operator edited it.
func (database *Database) refreshDriftedRecord(ctx context.Context, record *models.ModRecord) bool {
	if !record.IsValidateEligible() {
		return false
	}

	result := database.validator.Validate(ctx, record.Host, database.validationRequest(record))
	if result.Err != nil {
		database.log.Warn("validation failed for drifted record",
			zap.String("id", record.ID), zap.Error(result.Err))
		return false
	}

	info, err := database.validator.ProjectInfo(ctx, record.Host, record.ID)
	if err != nil {
		database.log.Warn("metadata fetch failed for drifted record",
			zap.String("id", record.ID), zap.Error(err))
		return false
	}

	applyProjectInfo(record, info)
	applyValidation(record, result)
	return true
}

// ValidationFailure describes one record a validation pass could not check.
type ValidationFailure struct {
	ID  string
	Err error
}

// ValidationReport summarizes a full validation pass.
type ValidationReport struct {
	Checked  int
	Missing  []string
	Failures []ValidationFailure
}

// ValidateAll re-validates every eligible record sequentially, refreshing
// metadata and latest version data and staging the one-step upgrade target in
// the Next fields. A single record failing is reported, not fatal. The table
// is written back once at the end, behind a fresh backup.
func (database *Database) ValidateAll(ctx context.Context) (*ValidationReport, error) {
	table, records, err := database.load(ctx)
	if err != nil {
		return nil, err
	}

	report := &ValidationReport{}
	for index := range records {
		record := &records[index]
		if !record.IsValidateEligible() {
			continue
		}
		report.Checked++

		result := database.validator.Validate(ctx, record.Host, database.validationRequest(record))
		if result.Err != nil {
			report.Failures = append(report.Failures, ValidationFailure{ID: record.ID, Err: result.Err})
			database.log.Warn("validation failed", zap.String("id", record.ID), zap.Error(result.Err))
			continue
		}
		if !result.Exists {
			report.Missing = append(report.Missing, record.ID)
			database.log.Warn("version not found upstream",
				zap.String("id", record.ID),
				zap.String("version", record.CurrentVersion))
		}

		if info, infoErr := database.validator.ProjectInfo(ctx, record.Host, record.ID); infoErr == nil {
			applyProjectInfo(record, info)
		}
		applyValidation(record, result)
		stageNext(record, result)
		recordhash.Assign(record)
	}

	if err := database.save(table, records, schema.BackupValidate); err != nil {
		return nil, err
	}
	return report, nil
}

// validationRequest builds the provider request for one record. When the
// record's jar is already on disk its path rides along, enabling the
// CurseForge fingerprint fallback for stale version strings.
func (database *Database) validationRequest(record *models.ModRecord) provider.Request {
	request := provider.Request{
		ProjectID:       record.ID,
		ExpectedVersion: record.CurrentVersion,
		Loader:          record.Loader,
		JarFilenameHint: record.JarFilename,
	}

	if database.artifactsDir != "" && record.JarFilename != "" {
		jarPath := downloader.Destination(database.artifactsDir, record.CurrentGameVersion, record.Type, record.JarFilename)
		if exists, err := afero.Exists(database.fs, jarPath); err == nil && exists {
			request.JarPath = jarPath
		}
	}

	return request
}

// Rollover promotes every staged Next version to Current and clears the
// staging fields, behind a backup.
func (database *Database) Rollover(ctx context.Context) (int, error) {
	table, records, err := database.load(ctx)
	if err != nil {
		return 0, err
	}

	rolled := 0
	for index := range records {
		record := &records[index]
		if record.NextVersion == "" && record.NextGameVersion == "" {
			continue
		}

		if record.NextVersion != "" {
			record.CurrentVersion = record.NextVersion
			record.CurrentVersionUrl = record.NextVersionUrl
		}
		if record.NextGameVersion != "" {
			record.CurrentGameVersion = record.NextGameVersion
		}
		record.NextVersion = ""
		record.NextVersionUrl = ""
		record.NextGameVersion = ""
		recordhash.Assign(record)
		rolled++

		database.log.Info("rolled record forward",
			zap.String("id", record.ID),
			zap.String("version", record.CurrentVersion),
			zap.String("game_version", record.CurrentGameVersion))
	}

	if rolled == 0 {
		return 0, nil
	}

	if err := database.save(table, records, schema.BackupRollover); err != nil {
		return 0, err
	}
	return rolled, nil
}

// Migrate upgrades a legacy column layout in place. The original file is
// backed up first and restored verbatim if the rewrite fails; an
// unrecognized structure aborts before anything touches the disk.
func (database *Database) Migrate(ctx context.Context) (bool, error) {
	exists, err := afero.Exists(database.fs, database.path)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, &NotFoundError{Path: database.path}
	}

	table, err := schema.Read(database.fs, database.path)
	if err != nil {
		return false, err
	}

	changed, err := schema.MigrateSchema(table)
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}

	backupPath, err := schema.Backup(database.fs, database.path, schema.BackupMigration, database.clock())
	if err != nil {
		return false, err
	}

	if writeErr := table.Write(database.fs, database.path); writeErr != nil {
		if restoreErr := schema.Restore(database.fs, backupPath, database.path); restoreErr != nil {
			database.log.Error("failed to restore backup after migration failure",
				zap.String("backup", backupPath), zap.Error(restoreErr))
		}
		return false, writeErr
	}

	database.log.Info("database migrated", zap.String("path", database.path), zap.String("backup", backupPath))
	return true, nil
}

// Remove deletes one record by ID and persists the table. The caller cleans
// up downloaded artifacts using the returned record.
func (database *Database) Remove(ctx context.Context, id string) (models.ModRecord, error) {
	table, records, err := database.load(ctx)
	if err != nil {
		return models.ModRecord{}, err
	}

	for index := range records {
		if !strings.EqualFold(records[index].ID, id) {
			continue
		}
		removed := records[index]
		records = append(records[:index], records[index+1:]...)
		table.RemoveRow(index)
		if err := database.persist(table, records); err != nil {
			return models.ModRecord{}, err
		}
		return removed, nil
	}

	return models.ModRecord{}, &RecordNotFoundError{ID: id, Path: database.path}
}

// Add appends a new record, enriching it through a first validation pass
// when its host supports one.
func (database *Database) Add(ctx context.Context, record models.ModRecord) (models.ModRecord, error) {
	table, records, err := database.load(ctx)
	if err != nil {
		return models.ModRecord{}, err
	}

	for index := range records {
		if strings.EqualFold(records[index].ID, record.ID) {
			return models.ModRecord{}, &DuplicateRecordError{ID: record.ID, Path: database.path}
		}
	}

	if record.Host == "" {
		record.Host = models.InferHost(record.ID)
	}
	if record.ApiSource == "" {
		record.ApiSource = record.Host
	}
	if record.CurrentGameVersion == "" {
		record.CurrentGameVersion = database.defaults.GameVersion
	}

	if record.IsValidateEligible() {
		result := database.validator.Validate(ctx, record.Host, provider.Request{
			ProjectID:       record.ID,
			ExpectedVersion: record.CurrentVersion,
			Loader:          record.Loader,
		})
		if result.Err != nil {
			return models.ModRecord{}, result.Err
		}
		if info, infoErr := database.validator.ProjectInfo(ctx, record.Host, record.ID); infoErr == nil {
			applyProjectInfo(&record, info)
		}
		if record.CurrentVersion == "" && result.LatestVersion != "" {
			record.CurrentVersion = result.LatestVersion
			record.CurrentVersionUrl = result.LatestDownloadUrl
			if result.LatestGameVersion != "" {
				record.CurrentGameVersion = result.LatestGameVersion
			}
			result.Exists = true
			result.MatchedVersion = result.LatestVersion
			result.MatchedDownloadUrl = result.LatestDownloadUrl
			result.Dependencies.CurrentRequired = result.Dependencies.LatestRequired
			result.Dependencies.CurrentOptional = result.Dependencies.LatestOptional
		}
		if !result.Exists {
			return models.ModRecord{}, &RecordNotFoundError{ID: record.ID, Path: database.path}
		}
		applyValidation(&record, result)
	}

	if record.IsSystemEntry() {
		cleaned := []models.ModRecord{record}
		models.CleanSystemEntries(cleaned)
		record = cleaned[0]
	}

	recordhash.Assign(&record)
	records = append(records, record)
	table.AppendRow(models.ToRow(record))
	if err := database.persist(table, records); err != nil {
		return models.ModRecord{}, err
	}
	return record, nil
}

// save persists the records behind a timestamped backup.
func (database *Database) save(table *schema.Table, records []models.ModRecord, reason schema.BackupReason) error {
	if reason != "" {
		exists, err := afero.Exists(database.fs, database.path)
		if err != nil {
			return err
		}
		if exists {
			if _, err := schema.Backup(database.fs, database.path, reason, database.clock()); err != nil {
				return err
			}
		}
	}
	return database.persist(table, records)
}

// persist writes the table back. A canonical header takes the tag-driven
// marshal path; anything else, operator-added columns above all, round-trips
// through the raw table so no column is ever dropped.
func (database *Database) persist(table *schema.Table, records []models.ModRecord) error {
	if table.IsCanonical() {
		return database.write(records)
	}

	for index := range records {
		table.SetRow(index, models.ToRow(records[index]))
	}
	return table.Write(database.fs, database.path)
}

func (database *Database) write(records []models.ModRecord) error {
	content, err := gocsv.MarshalString(&records)
	if err != nil {
		return err
	}
	return afero.WriteFile(database.fs, database.path, []byte(content), 0o644)
}

// applyProjectInfo overwrites the display metadata a record mirrors from
// upstream.
func applyProjectInfo(record *models.ModRecord, info *provider.ProjectInfo) {
	record.Title = info.Title
	record.Description = info.Description
	record.IconUrl = info.IconUrl
	record.SourceUrl = info.SourceUrl
	record.IssuesUrl = info.IssuesUrl
	record.WikiUrl = info.WikiUrl
	record.ClientSide = info.ClientSide
	record.ServerSide = info.ServerSide
}

// applyValidation overwrites the upstream-derived version data. The pinned
// Current version and game version belong to the operator and are never
// touched here; only the URL for the pinned version tracks upstream.
func applyValidation(record *models.ModRecord, result provider.Result) {
	if result.Exists && result.MatchedDownloadUrl != "" {
		record.CurrentVersionUrl = result.MatchedDownloadUrl
	}
	if result.Exists {
		record.JarFilename = jarNameFromUrl(result.MatchedDownloadUrl, record.JarFilename)
		record.CurrentDependenciesRequired = models.FormatDependencies(result.Dependencies.CurrentRequired)
		record.CurrentDependenciesOptional = models.FormatDependencies(result.Dependencies.CurrentOptional)
	}

	record.LatestVersion = result.LatestVersion
	record.LatestVersionUrl = result.LatestDownloadUrl
	record.LatestGameVersion = result.LatestGameVersion
	record.LatestDependenciesRequired = models.FormatDependencies(result.Dependencies.LatestRequired)
	record.LatestDependenciesOptional = models.FormatDependencies(result.Dependencies.LatestOptional)

	if len(result.AvailableGameVersions) > 0 {
		record.AvailableGameVersions = strings.Join(result.AvailableGameVersions, ";")
	}
}

// stageNext computes the one-step upgrade target from the advertised game
// versions. The Next version fields fill in only when the upstream latest
// release actually serves the staged game version.
func stageNext(record *models.ModRecord, result provider.Result) {
	available := strings.Split(record.AvailableGameVersions, ";")
	outcome := reconcile.NextGameVersion(record.CurrentGameVersion, available)

	if outcome.LatestGameVersion == "" || outcome.LatestGameVersion == record.CurrentGameVersion {
		record.NextVersion = ""
		record.NextVersionUrl = ""
		record.NextGameVersion = ""
		return
	}

	record.NextGameVersion = outcome.LatestGameVersion
	if result.LatestGameVersion == outcome.LatestGameVersion {
		record.NextVersion = result.LatestVersion
		record.NextVersionUrl = result.LatestDownloadUrl
	} else {
		record.NextVersion = ""
		record.NextVersionUrl = ""
	}
}

func jarNameFromUrl(downloadUrl string, fallback string) string {
	if downloadUrl == "" {
		return fallback
	}
	slash := strings.LastIndex(downloadUrl, "/")
	if slash < 0 || slash == len(downloadUrl)-1 {
		return fallback
	}
	return downloadUrl[slash+1:]
}
