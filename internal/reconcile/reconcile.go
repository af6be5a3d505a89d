// Package reconcile computes the one-step game version upgrade target for a
// record. Advancing a single version at a time keeps every rollover
// re-validated instead of jumping straight to the newest release.
package reconcile

import (
	"sort"

	"github.com/packsmith/minecraft-pack-manager/internal/versionutil"
)

// Outcome is the engine's answer for one record.
type Outcome struct {
	// LatestGameVersion is the next version up from the current one, or the
	// current one itself when already at the end of the list.
	LatestGameVersion string
	// Newer holds every known version strictly above LatestGameVersion,
	// ordered ascending.
	Newer []string
}

// NextGameVersion filters the advertised version list to dotted-numeric
// entries, anchors at the record's current game version and steps forward by
// one. An unrecognized current version anchors at the oldest known entry;
// see the package tests for the pinned consequences of that fallback.
func NextGameVersion(currentGameVersion string, available []string) Outcome {
	sorted := sortedGameVersions(available)
	if len(sorted) == 0 {
		return Outcome{LatestGameVersion: currentGameVersion}
	}

	anchor := 0
	for index, version := range sorted {
		if version == currentGameVersion {
			anchor = index
			break
		}
	}

	latest := sorted[anchor]
	if anchor+1 < len(sorted) {
		latest = sorted[anchor+1]
	}

	var newer []string
	for _, version := range sorted {
		if versionutil.Less(latest, version) {
			newer = append(newer, version)
		}
	}

	return Outcome{LatestGameVersion: latest, Newer: newer}
}

func sortedGameVersions(available []string) []string {
	seen := make(map[string]bool)
	var filtered []string
	for _, version := range available {
		if !versionutil.IsGameVersion(version) || seen[version] {
			continue
		}
		seen[version] = true
		filtered = append(filtered, version)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return versionutil.Less(filtered[i], filtered[j])
	})
	return filtered
}
