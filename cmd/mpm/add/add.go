package add

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/packsmith/minecraft-pack-manager/cmd/mpm/cmdutil"
	"github.com/packsmith/minecraft-pack-manager/internal/downloader"
	"github.com/packsmith/minecraft-pack-manager/internal/minecraft"
	"github.com/packsmith/minecraft-pack-manager/internal/models"
	"github.com/packsmith/minecraft-pack-manager/internal/perf"
)

func Command() *cobra.Command {
	return commandWithRuntime(cmdutil.RuntimeFromFlags)
}

func commandWithRuntime(buildRuntime cmdutil.RuntimeBuilder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add an artifact to the pack database",
		Long:  "Adds a record by its upstream ID. The hosting platform is inferred from the ID shape and the record is enriched with upstream metadata on the spot.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx, span := perf.StartSpan(cmd.Context(), "app.command.add",
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

			artifactType, _ := cmd.Flags().GetString("type")
			loader, _ := cmd.Flags().GetString("loader")
			pinned, _ := cmd.Flags().GetString("version")
			gameVersion, _ := cmd.Flags().GetString("game-version")
			download, _ := cmd.Flags().GetBool("download")

			if gameVersion != "" && runtime.Minecraft != nil {
				known, lookupErr := minecraft.IsValidVersion(ctx, gameVersion, runtime.Minecraft)
				if lookupErr != nil {
					runtime.Log.Warn("could not verify the game version against the mojang manifest", zap.Error(lookupErr))
				} else if !known {
					return errors.Errorf("%s is not a known minecraft version", gameVersion)
				}
			}

			record := models.ModRecord{
				ID:                 args[0],
				Type:               models.ArtifactType(artifactType),
				Loader:             models.Loader(loader),
				CurrentVersion:     pinned,
				CurrentGameVersion: gameVersion,
			}

			added, err := runtime.DB.Add(ctx, record)
			if err != nil {
				return err
			}

			cmd.Printf("added %s (%s %s)\n", added.ID, added.CurrentVersion, added.CurrentGameVersion)

			if download && added.CurrentVersionUrl != "" && added.JarFilename != "" {
				destination := downloader.Destination(
					runtime.Config.ArtifactsDir,
					added.CurrentGameVersion,
					added.Type,
					added.JarFilename,
				)
				if err := runtime.Downloader.Download(ctx, added.CurrentVersionUrl, destination); err != nil {
					return err
				}
				cmd.Printf("downloaded %s\n", destination)
			}

			return nil
		},
	}

	cmd.Flags().String("type", models.MOD.String(), "artifact type (mod, shaderpack, datapack, modpack, installer, launcher, server, jdk)")
	cmd.Flags().String("loader", "", "mod loader the artifact targets (fabric, forge, iris, neoforge, quilt)")
	cmd.Flags().String("version", "", "pin a specific upstream version instead of the latest")
	cmd.Flags().String("game-version", "", "game version to record, defaults to the configured one")
	cmd.Flags().Bool("download", false, "download the resolved artifact after adding")

	return cmd
}
