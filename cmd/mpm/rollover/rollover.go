package rollover

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
		Use:   "rollover",
		Short: "Promote staged Next versions to Current",
		Long:  "Moves every record with a staged upgrade one step forward: Next becomes Current and the staging columns clear. Run validate afterwards to stage the following step.",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx, span := perf.StartSpan(cmd.Context(), "app.command.rollover")
			defer func() {
				span.SetAttributes(attribute.Bool("success", err == nil))
				span.End()
			}()

			runtime, err := buildRuntime(cmd)
			if err != nil {
				return err
			}

			rolled, err := runtime.DB.Rollover(ctx)
			if err != nil {
				return err
			}
			span.SetAttributes(attribute.Int("rolled", rolled))

			if rolled == 0 {
				cmd.Println("nothing staged, database unchanged")
				return nil
			}
			cmd.Printf("rolled %d records forward\n", rolled)
			return nil
		},
	}
}
