package migrate

import (
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/packsmith/minecraft-pack-manager/cmd/mpm/cmdutil"
	"github.com/packsmith/minecraft-pack-manager/internal/perf"
)

func Command() *cobra.Command {
	return commandWithRuntime(cmdutil.RuntimeFromFlags)
}

func commandWithRuntime(buildRuntime cmdutil.RuntimeBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Upgrade a legacy database layout in place",
		Long:  "Renames the old Version, VersionUrl and GameVersion columns to their Current names and adds the Next staging columns. The original file is backed up first and restored automatically if the rewrite fails.",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx, span := perf.StartSpan(cmd.Context(), "app.command.migrate")
			defer func() {
				span.SetAttributes(attribute.Bool("success", err == nil))
				span.End()
			}()

			runtime, err := buildRuntime(cmd)
			if err != nil {
				return err
			}

			changed, err := runtime.DB.Migrate(ctx)
			if err != nil {
				return err
			}
			span.SetAttributes(attribute.Bool("changed", changed))

			if !changed {
				cmd.Println("database already up to date")
				return nil
			}
			cmd.Println("database migrated")
			return nil
		},
	}
}
