// Package mpm assembles the command line interface.
package mpm

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/packsmith/minecraft-pack-manager/cmd/mpm/add"
	"github.com/packsmith/minecraft-pack-manager/cmd/mpm/migrate"
	"github.com/packsmith/minecraft-pack-manager/cmd/mpm/remove"
	"github.com/packsmith/minecraft-pack-manager/cmd/mpm/rollover"
	"github.com/packsmith/minecraft-pack-manager/cmd/mpm/validate"
	"github.com/packsmith/minecraft-pack-manager/cmd/mpm/version"
	"github.com/packsmith/minecraft-pack-manager/internal/constants"
	"github.com/packsmith/minecraft-pack-manager/internal/environment"
)

func Command() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           constants.CommandName,
		Short:         "Manage a Minecraft mod pack from a CSV database",
		Version:       environment.AppVersion(),
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cobra.MousetrapHelpText = "" // allow the app to run in windows by clicking the exe

	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringP("dir", "d", ".", "working directory holding the pack database")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "only log warnings and errors")
	rootCmd.PersistentFlags().Bool("debug", false, "verbose debug logging")
	rootCmd.PersistentFlags().Bool("use-cache", false, "replay cached API responses when present")

	rootCmd.AddCommand(add.Command())
	rootCmd.AddCommand(validate.Command())
	rootCmd.AddCommand(rollover.Command())
	rootCmd.AddCommand(remove.Command())
	rootCmd.AddCommand(migrate.Command())
	rootCmd.AddCommand(version.Command())

	fixFlagUsageAlignment(rootCmd)

	return rootCmd
}

func fixFlagUsageAlignment(rootCmd *cobra.Command) {
	width, _, _ := term.GetSize(int(os.Stdout.Fd()))
	usageTemplate := rootCmd.UsageTemplate()
	usageTemplate = strings.ReplaceAll(usageTemplate, ".FlagUsages", fmt.Sprintf(".FlagUsagesWrapped %d", width))
	rootCmd.SetUsageTemplate(usageTemplate)
}

func Execute() error {
	return Command().Execute()
}
