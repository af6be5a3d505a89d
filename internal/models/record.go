package models

import (
	"regexp"
	"strings"
)

// ModRecord is one row of the pack database. The csv tags are the single
// source of truth for the on-disk column names; schema.RequiredColumns is
// asserted against them in tests.
type ModRecord struct {
	ID        string       `csv:"ID"`
	Type      ArtifactType `csv:"Type"`
	Host      Host         `csv:"Host"`
	ApiSource Host         `csv:"ApiSource"`
	Loader    Loader       `csv:"Loader"`

	Title       string `csv:"Title"`
	Description string `csv:"Description"`
	IconUrl     string `csv:"IconUrl"`
	SourceUrl   string `csv:"SourceUrl"`
	IssuesUrl   string `csv:"IssuesUrl"`
	WikiUrl     string `csv:"WikiUrl"`
	ClientSide  string `csv:"ClientSide"`
	ServerSide  string `csv:"ServerSide"`

	CurrentVersion     string `csv:"CurrentVersion"`
	CurrentVersionUrl  string `csv:"CurrentVersionUrl"`
	CurrentGameVersion string `csv:"CurrentGameVersion"`

	NextVersion     string `csv:"NextVersion"`
	NextVersionUrl  string `csv:"NextVersionUrl"`
	NextGameVersion string `csv:"NextGameVersion"`

	LatestVersion     string `csv:"LatestVersion"`
	LatestVersionUrl  string `csv:"LatestVersionUrl"`
	LatestGameVersion string `csv:"LatestGameVersion"`

	AvailableGameVersions string `csv:"AvailableGameVersions"`

	CurrentDependenciesRequired string `csv:"CurrentDependenciesRequired"`
	CurrentDependenciesOptional string `csv:"CurrentDependenciesOptional"`
	LatestDependenciesRequired  string `csv:"LatestDependenciesRequired"`
	LatestDependenciesOptional  string `csv:"LatestDependenciesOptional"`

	JarFilename string `csv:"JarFilename"`
	RecordHash  string `csv:"RecordHash"`
}

var numericID = regexp.MustCompile(`^[0-9]+$`)

// InferHost guesses the hosting platform from the shape of an upstream ID.
// CurseForge project IDs are numeric, Modrinth uses slugs or base62 IDs.
func InferHost(id string) Host {
	if numericID.MatchString(strings.TrimSpace(id)) {
		return CURSEFORGE
	}
	return MODRINTH
}

// FromRow builds a record from a raw CSV row. Missing cells become empty
// strings, so a row from an older schema never fails to construct.
func FromRow(row map[string]string) ModRecord {
	get := func(column string) string {
		return strings.TrimSpace(row[column])
	}

	return ModRecord{
		ID:        get("ID"),
		Type:      ArtifactType(get("Type")),
		Host:      Host(get("Host")),
		ApiSource: Host(get("ApiSource")),
		Loader:    Loader(get("Loader")),

		Title:       get("Title"),
		Description: get("Description"),
		IconUrl:     get("IconUrl"),
		SourceUrl:   get("SourceUrl"),
		IssuesUrl:   get("IssuesUrl"),
		WikiUrl:     get("WikiUrl"),
		ClientSide:  get("ClientSide"),
		ServerSide:  get("ServerSide"),

		CurrentVersion:     get("CurrentVersion"),
		CurrentVersionUrl:  get("CurrentVersionUrl"),
		CurrentGameVersion: get("CurrentGameVersion"),

		NextVersion:     get("NextVersion"),
		NextVersionUrl:  get("NextVersionUrl"),
		NextGameVersion: get("NextGameVersion"),

		LatestVersion:     get("LatestVersion"),
		LatestVersionUrl:  get("LatestVersionUrl"),
		LatestGameVersion: get("LatestGameVersion"),

		AvailableGameVersions: get("AvailableGameVersions"),

		CurrentDependenciesRequired: get("CurrentDependenciesRequired"),
		CurrentDependenciesOptional: get("CurrentDependenciesOptional"),
		LatestDependenciesRequired:  get("LatestDependenciesRequired"),
		LatestDependenciesOptional:  get("LatestDependenciesOptional"),

		JarFilename: get("JarFilename"),
		RecordHash:  get("RecordHash"),
	}
}

// ToRow renders a record as a column-name map, the inverse of FromRow. Used
// when writing through a raw table so columns this struct does not know about
// survive the rewrite.
func ToRow(record ModRecord) map[string]string {
	return map[string]string{
		"ID":        record.ID,
		"Type":      record.Type.String(),
		"Host":      record.Host.String(),
		"ApiSource": record.ApiSource.String(),
		"Loader":    record.Loader.String(),

		"Title":       record.Title,
		"Description": record.Description,
		"IconUrl":     record.IconUrl,
		"SourceUrl":   record.SourceUrl,
		"IssuesUrl":   record.IssuesUrl,
		"WikiUrl":     record.WikiUrl,
		"ClientSide":  record.ClientSide,
		"ServerSide":  record.ServerSide,

		"CurrentVersion":     record.CurrentVersion,
		"CurrentVersionUrl":  record.CurrentVersionUrl,
		"CurrentGameVersion": record.CurrentGameVersion,

		"NextVersion":     record.NextVersion,
		"NextVersionUrl":  record.NextVersionUrl,
		"NextGameVersion": record.NextGameVersion,

		"LatestVersion":     record.LatestVersion,
		"LatestVersionUrl":  record.LatestVersionUrl,
		"LatestGameVersion": record.LatestGameVersion,

		"AvailableGameVersions": record.AvailableGameVersions,

		"CurrentDependenciesRequired": record.CurrentDependenciesRequired,
		"CurrentDependenciesOptional": record.CurrentDependenciesOptional,
		"LatestDependenciesRequired":  record.LatestDependenciesRequired,
		"LatestDependenciesOptional":  record.LatestDependenciesOptional,

		"JarFilename": record.JarFilename,
		"RecordHash":  record.RecordHash,
	}
}

// IsSystemEntry reports whether the record is a locally managed artifact that
// never undergoes API validation.
func (record *ModRecord) IsSystemEntry() bool {
	switch record.Type {
	case INSTALLER, LAUNCHER, SERVER:
		return true
	}
	return false
}

// IsValidateEligible reports whether a validation pass may query the hosting
// API for this record.
func (record *ModRecord) IsValidateEligible() bool {
	if record.Host == DIRECT {
		return false
	}
	switch record.Type {
	case MOD, SHADERPACK, DATAPACK:
		return true
	}
	return false
}
