package validate

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
		Use:   "validate",
		Short: "Re-validate every record against its hosting API",
		Long:  "Checks each mod, shaderpack and datapack against its platform, refreshes metadata and latest version data, and stages one-step upgrades in the Next columns. Failures are reported per record and never abort the pass.",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx, span := perf.StartSpan(cmd.Context(), "app.command.validate")
			defer func() {
				span.SetAttributes(attribute.Bool("success", err == nil))
				span.End()
			}()

			runtime, err := buildRuntime(cmd)
			if err != nil {
				return err
			}

			report, err := runtime.DB.ValidateAll(ctx)
			if err != nil {
				return err
			}

			span.SetAttributes(
				attribute.Int("checked", report.Checked),
				attribute.Int("missing", len(report.Missing)),
				attribute.Int("failures", len(report.Failures)),
			)

			cmd.Printf("checked %d records\n", report.Checked)
			for _, id := range report.Missing {
				cmd.Printf("not found upstream: %s\n", id)
			}
			for _, failure := range report.Failures {
				cmd.Printf("failed: %s (%v)\n", failure.ID, failure.Err)
			}

			return nil
		},
	}
}
