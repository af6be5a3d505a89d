package schema

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

type BackupReason string

const (
	BackupColumns   BackupReason = "columns"
	BackupMigration BackupReason = "migration"
	BackupValidate  BackupReason = "validate"
	BackupRollover  BackupReason = "rollover"
)

const backupTimestampLayout = "20060102-150405"

// BackupName derives the backup filename written next to the database before
// a destructive operation.
func BackupName(path string, reason BackupReason, now time.Time) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, fmt.Sprintf("%s-%s-%s%s", name, reason, now.Format(backupTimestampLayout), ext))
}

// Backup copies the database file aside and returns the backup path.
func Backup(fs afero.Fs, path string, reason BackupReason, now time.Time) (string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", err
	}

	backupPath := BackupName(path, reason, now)
	if err := afero.WriteFile(fs, backupPath, data, 0o644); err != nil {
		return "", err
	}
	return backupPath, nil
}

// Restore copies a backup back over the database file, used to undo a failed
// migration.
func Restore(fs afero.Fs, backupPath string, path string) error {
	data, err := afero.ReadFile(fs, backupPath)
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, path, data, 0o644)
}
