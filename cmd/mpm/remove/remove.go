package remove

import (
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/packsmith/minecraft-pack-manager/cmd/mpm/cmdutil"
	"github.com/packsmith/minecraft-pack-manager/internal/downloader"
	"github.com/packsmith/minecraft-pack-manager/internal/perf"
)

func Command() *cobra.Command {
	return commandWithRuntime(cmdutil.RuntimeFromFlags)
}

func commandWithRuntime(buildRuntime cmdutil.RuntimeBuilder) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a record and its downloaded artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx, span := perf.StartSpan(cmd.Context(), "app.command.remove",
				perf.WithAttributes(attribute.String("id", args[0])),
			)
			defer func() {
				span.SetAttributes(attribute.Bool("success", err == nil))
				span.End()
			}()

			runtime, err := buildRuntime(cmd)
			if err != nil {
				return err
			}

			removed, err := runtime.DB.Remove(ctx, args[0])
			if err != nil {
				return err
			}
			cmd.Printf("removed %s\n", removed.ID)

			if removed.JarFilename != "" {
				destination := downloader.Destination(
					runtime.Config.ArtifactsDir,
					removed.CurrentGameVersion,
					removed.Type,
					removed.JarFilename,
				)
				if err := runtime.Downloader.RemoveArtifact(destination); err != nil {
					return err
				}
			}

			return nil
		},
	}
}
