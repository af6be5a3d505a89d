package models

// CleanSystemEntries forces installer, launcher and server records into their
// canonical direct-hosted shape: no API-derived display fields, host and api
// source pinned to direct. Returns true when any record changed.
func CleanSystemEntries(records []ModRecord) bool {
	changed := false
	for i := range records {
		if !records[i].IsSystemEntry() {
			continue
		}
		if cleanSystemEntry(&records[i]) {
			changed = true
		}
	}
	return changed
}

func cleanSystemEntry(record *ModRecord) bool {
	before := *record

	record.Host = DIRECT
	record.ApiSource = DIRECT

	record.Title = ""
	record.Description = ""
	record.IconUrl = ""
	record.SourceUrl = ""
	record.IssuesUrl = ""
	record.WikiUrl = ""
	record.ClientSide = ""
	record.ServerSide = ""

	record.AvailableGameVersions = ""
	record.CurrentDependenciesRequired = ""
	record.CurrentDependenciesOptional = ""
	record.LatestDependenciesRequired = ""
	record.LatestDependenciesOptional = ""

	return *record != before
}
