package models

import "strings"

// Dependency is a single upstream dependency reference as recorded in the
// database. Constraint is whatever version identifier the provider reported,
// empty when the provider only names the project.
type Dependency struct {
	ID         string
	Constraint string
}

const (
	dependencySeparator = ";"
	constraintSeparator = "@"
)

func (d Dependency) String() string {
	if d.Constraint == "" {
		return d.ID
	}
	return d.ID + constraintSeparator + d.Constraint
}

// FormatDependencies serializes a dependency list into a single CSV cell.
func FormatDependencies(dependencies []Dependency) string {
	if len(dependencies) == 0 {
		return ""
	}
	parts := make([]string, 0, len(dependencies))
	for _, dependency := range dependencies {
		if dependency.ID == "" {
			continue
		}
		parts = append(parts, dependency.String())
	}
	return strings.Join(parts, dependencySeparator)
}

// ParseDependencies is the inverse of FormatDependencies. Malformed items
// degrade to an ID-only dependency rather than failing the row.
func ParseDependencies(cell string) []Dependency {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}

	parts := strings.Split(cell, dependencySeparator)
	dependencies := make([]Dependency, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, constraint, _ := strings.Cut(part, constraintSeparator)
		dependencies = append(dependencies, Dependency{ID: id, Constraint: constraint})
	}
	return dependencies
}
