package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packsmith/minecraft-pack-manager/internal/constants"
	"github.com/packsmith/minecraft-pack-manager/internal/environment"
)

func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: fmt.Sprintf("Print the %s version", constants.AppName),
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(environment.AppVersion())
		},
	}
}
