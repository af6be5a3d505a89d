// Package constants defines shared constant values.
package constants

// AppName is the project identifier used in logs and metadata.
const AppName = "minecraft-pack-manager"

// CommandName is the primary CLI command name.
const CommandName = "mpm"

// DefaultDatabaseFile is the database filename used when no path is given.
const DefaultDatabaseFile = "modlist.csv"
