package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferHost(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		expected Host
	}{
		{name: "numeric curseforge id", id: "238222", expected: CURSEFORGE},
		{name: "modrinth slug", id: "sodium", expected: MODRINTH},
		{name: "modrinth base62 id", id: "AANobbMI", expected: MODRINTH},
		{name: "slug with digits", id: "fabric-api2", expected: MODRINTH},
		{name: "padded numeric id", id: " 306612 ", expected: CURSEFORGE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InferHost(tt.id))
		})
	}
}

func TestFromRowToleratesMissingColumns(t *testing.T) {
	record := FromRow(map[string]string{
		"ID":      "sodium",
		"Type":    "mod",
		"Loader":  "fabric",
		"Version": "0.5.8", // legacy column, ignored by construction
	})

	assert.Equal(t, "sodium", record.ID)
	assert.Equal(t, MOD, record.Type)
	assert.Equal(t, FABRIC, record.Loader)
	assert.Empty(t, record.CurrentVersion)
	assert.Empty(t, record.RecordHash)
}

func TestIsValidateEligible(t *testing.T) {
	tests := []struct {
		name     string
		record   ModRecord
		expected bool
	}{
		{name: "mod on modrinth", record: ModRecord{Type: MOD, Host: MODRINTH}, expected: true},
		{name: "shaderpack on modrinth", record: ModRecord{Type: SHADERPACK, Host: MODRINTH}, expected: true},
		{name: "datapack on curseforge", record: ModRecord{Type: DATAPACK, Host: CURSEFORGE}, expected: true},
		{name: "direct host", record: ModRecord{Type: MOD, Host: DIRECT}, expected: false},
		{name: "installer", record: ModRecord{Type: INSTALLER, Host: MODRINTH}, expected: false},
		{name: "jdk", record: ModRecord{Type: JDK, Host: DIRECT}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.record.IsValidateEligible())
		})
	}
}

func TestCleanSystemEntries(t *testing.T) {
	records := []ModRecord{
		{
			ID:          "fabric-installer",
			Type:        INSTALLER,
			Host:        MODRINTH,
			ApiSource:   MODRINTH,
			Title:       "Fabric Installer",
			Description: "should go",
			IconUrl:     "https://example.com/icon.png",
			ClientSide:  "required",

			CurrentVersion:        "1.0.1",
			AvailableGameVersions: "1.21.1;1.21.2",
		},
		{
			ID:    "sodium",
			Type:  MOD,
			Host:  MODRINTH,
			Title: "Sodium",
		},
	}

	changed := CleanSystemEntries(records)
	assert.True(t, changed)

	installer := records[0]
	assert.Equal(t, DIRECT, installer.Host)
	assert.Equal(t, DIRECT, installer.ApiSource)
	assert.Empty(t, installer.Title)
	assert.Empty(t, installer.Description)
	assert.Empty(t, installer.IconUrl)
	assert.Empty(t, installer.ClientSide)
	assert.Empty(t, installer.AvailableGameVersions)
	// the pinned version is operator-controlled and survives
	assert.Equal(t, "1.0.1", installer.CurrentVersion)

	// non-system records are untouched
	assert.Equal(t, "Sodium", records[1].Title)
	assert.Equal(t, MODRINTH, records[1].Host)

	// second pass is a no-op
	assert.False(t, CleanSystemEntries(records))
}

func TestDependencyRoundTrip(t *testing.T) {
	dependencies := []Dependency{
		{ID: "fabric-api", Constraint: "0.92.0"},
		{ID: "P7dR8mSH"},
	}

	cell := FormatDependencies(dependencies)
	assert.Equal(t, "fabric-api@0.92.0;P7dR8mSH", cell)
	assert.Equal(t, dependencies, ParseDependencies(cell))
}

func TestParseDependenciesDegradesGracefully(t *testing.T) {
	assert.Nil(t, ParseDependencies(""))
	assert.Nil(t, ParseDependencies("  "))
	assert.Equal(t, []Dependency{{ID: "a"}}, ParseDependencies(";a;"))
}
