// Package schema keeps the on-disk CSV database in the shape the rest of the
// tool expects. It self-heals missing columns, migrates the legacy layout and
// refuses to touch files it cannot recognize.
package schema

import (
	"encoding/csv"
	"strings"

	"github.com/spf13/afero"

	"github.com/packsmith/minecraft-pack-manager/internal/models"
)

// RequiredColumns enumerates the full column set in on-disk order. The list
// is append-only across schema versions; migrations rename or add, never drop.
func RequiredColumns() []string {
	return []string{
		"ID",
		"Type",
		"Host",
		"ApiSource",
		"Loader",
		"Title",
		"Description",
		"IconUrl",
		"SourceUrl",
		"IssuesUrl",
		"WikiUrl",
		"ClientSide",
		"ServerSide",
		"CurrentVersion",
		"CurrentVersionUrl",
		"CurrentGameVersion",
		"NextVersion",
		"NextVersionUrl",
		"NextGameVersion",
		"LatestVersion",
		"LatestVersionUrl",
		"LatestGameVersion",
		"AvailableGameVersions",
		"CurrentDependenciesRequired",
		"CurrentDependenciesOptional",
		"LatestDependenciesRequired",
		"LatestDependenciesOptional",
		"JarFilename",
		"RecordHash",
	}
}

// legacyRenames maps pre-Next-era column names to their current names.
var legacyRenames = map[string]string{
	"Version":     "CurrentVersion",
	"VersionUrl":  "CurrentVersionUrl",
	"GameVersion": "CurrentGameVersion",
}

// Table is the raw CSV content, header plus data rows, before any record
// typing happens. Schema repair works at this level so a half-migrated file
// never has to squeeze through the struct mapping.
type Table struct {
	Header []string
	Rows   [][]string
}

func Read(fs afero.Fs, path string) (*Table, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	table := &Table{}
	if len(all) > 0 {
		table.Header = all[0]
		table.Rows = all[1:]
	}
	return table, nil
}

func (table *Table) Write(fs afero.Fs, path string) (returnErr error) {
	file, err := fs.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && returnErr == nil {
			returnErr = closeErr
		}
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write(table.Header); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func (table *Table) columnIndex(name string) int {
	for index, column := range table.Header {
		if strings.EqualFold(strings.TrimSpace(column), name) {
			return index
		}
	}
	return -1
}

// RowMap renders one data row as a column-name map. Short rows yield empty
// cells rather than an index panic.
func (table *Table) RowMap(row []string) map[string]string {
	mapped := make(map[string]string, len(table.Header))
	for index, column := range table.Header {
		if index < len(row) {
			mapped[strings.TrimSpace(column)] = row[index]
		} else {
			mapped[strings.TrimSpace(column)] = ""
		}
	}
	return mapped
}

// IsCanonical reports whether the header is exactly the required column set,
// in order, with nothing extra. Only then is a tag-driven rewrite lossless.
func (table *Table) IsCanonical() bool {
	required := RequiredColumns()
	if len(table.Header) != len(required) {
		return false
	}
	for index, column := range required {
		if !strings.EqualFold(strings.TrimSpace(table.Header[index]), column) {
			return false
		}
	}
	return true
}

// SetRow overwrites one data row's cells from a column-name map. Header
// columns absent from the map, operator-added ones included, keep their
// current value.
func (table *Table) SetRow(index int, values map[string]string) {
	if index < 0 || index >= len(table.Rows) {
		return
	}

	row := table.Rows[index]
	for len(row) < len(table.Header) {
		row = append(row, "")
	}

	for columnIndex, column := range table.Header {
		if value, ok := lookupColumn(values, strings.TrimSpace(column)); ok {
			row[columnIndex] = value
		}
	}
	table.Rows[index] = row
}

// AppendRow adds a data row built from a column-name map; unknown header
// columns start empty.
func (table *Table) AppendRow(values map[string]string) {
	row := make([]string, len(table.Header))
	for columnIndex, column := range table.Header {
		if value, ok := lookupColumn(values, strings.TrimSpace(column)); ok {
			row[columnIndex] = value
		}
	}
	table.Rows = append(table.Rows, row)
}

// RemoveRow drops one data row. Out-of-range indexes are ignored.
func (table *Table) RemoveRow(index int) {
	if index < 0 || index >= len(table.Rows) {
		return
	}
	table.Rows = append(table.Rows[:index], table.Rows[index+1:]...)
}

func lookupColumn(values map[string]string, column string) (string, bool) {
	if value, ok := values[column]; ok {
		return value, true
	}
	for key, value := range values {
		if strings.EqualFold(key, column) {
			return value, true
		}
	}
	return "", false
}

// Defaults supplies the computed values EnsureColumns backfills instead of an
// empty string.
type Defaults struct {
	GameVersion string
}

// EnsureColumns appends every missing required column with its default and
// pads short rows. Existing columns keep their position and content, unknown
// extra columns survive untouched. The return value reports whether anything
// changed, so callers know a backup and rewrite are due. Running it on an
// already conformant table changes nothing.
func EnsureColumns(table *Table, defaults Defaults) bool {
	changed := false

	if len(table.Header) == 0 {
		table.Header = RequiredColumns()
		return true
	}

	idIndex := table.columnIndex("ID")

	for _, required := range RequiredColumns() {
		if table.columnIndex(required) >= 0 {
			continue
		}

		table.Header = append(table.Header, required)
		changed = true

		for rowIndex := range table.Rows {
			table.Rows[rowIndex] = append(table.Rows[rowIndex], defaultFor(required, table.Rows[rowIndex], idIndex, defaults))
		}
	}

	for rowIndex, row := range table.Rows {
		for len(row) < len(table.Header) {
			row = append(row, "")
			changed = true
		}
		table.Rows[rowIndex] = row
	}

	return changed
}

// defaultFor computes the backfill value for a newly added column. Host and
// ApiSource derive from the ID's shape, the game version comes from config,
// everything else starts empty.
func defaultFor(column string, row []string, idIndex int, defaults Defaults) string {
	switch column {
	case "Host", "ApiSource":
		if idIndex >= 0 && idIndex < len(row) {
			return models.InferHost(row[idIndex]).String()
		}
		return ""
	case "CurrentGameVersion":
		return defaults.GameVersion
	default:
		return ""
	}
}

// MigrateSchema renames the legacy Version/VersionUrl/GameVersion columns to
// their Current* names and adds the Next* columns. A table already carrying
// the new names is left alone; a table with neither the old nor the new
// layout is refused with a StructuralError so the caller aborts before
// touching the file.
func MigrateSchema(table *Table) (bool, error) {
	if len(table.Header) == 0 {
		return false, nil
	}

	if table.columnIndex("ID") < 0 || table.columnIndex("Type") < 0 {
		return false, &StructuralError{Header: table.Header}
	}

	if table.columnIndex("CurrentVersion") >= 0 {
		return false, nil
	}

	if table.columnIndex("Version") < 0 {
		return false, &StructuralError{Header: table.Header}
	}

	changed := false
	for index, column := range table.Header {
		if renamed, ok := legacyRenames[strings.TrimSpace(column)]; ok {
			table.Header[index] = renamed
			changed = true
		}
	}

	for _, added := range []string{"NextVersion", "NextVersionUrl", "NextGameVersion"} {
		if table.columnIndex(added) >= 0 {
			continue
		}
		table.Header = append(table.Header, added)
		for rowIndex := range table.Rows {
			table.Rows[rowIndex] = append(table.Rows[rowIndex], "")
		}
		changed = true
	}

	return changed, nil
}
