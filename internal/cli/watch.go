package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/shaiso/cityweather/internal/pipeline"
	"github.com/shaiso/cityweather/internal/scheduler"
	"github.com/shaiso/cityweather/internal/steps"
)

// NewWatchCmd создаёт команду watch.
func NewWatchCmd(deps Deps) *cobra.Command {
	var cronExpr string
	var now bool

	cmd := &cobra.Command{
		Use:   "watch [CITY]",
		Short: "Refresh weather for a city on a cron schedule",
		Long: `Watch runs the pipeline for CITY on a cron schedule until interrupted.

Every run is independent and prints a fresh result.
The schedule defaults to WATCH_CRON.`,
		Example: `  cityweather watch Paris
  cityweather watch Berlin --cron "*/5 * * * *" --now
  cityweather watch London --cron "@every 30s"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := deps.Output()

			if cronExpr == "" && deps.WatchCron != nil {
				cronExpr = deps.WatchCron()
			}
			if err := scheduler.ValidateCronExpr(cronExpr); err != nil {
				return err
			}

			runner, err := deps.Runner()
			if err != nil {
				return err
			}

			s, err := scheduler.New(scheduler.Config{
				Runner:    runner,
				CronExpr:  cronExpr,
				Source:    steps.StaticSource(strings.Join(args, " ")),
				Renderer:  func() steps.Renderer { out.Separator(); return out.Renderer() },
				Immediate: now,
				OnResult: func(res *pipeline.Result, err error) {
					if err != nil {
						out.Error(err.Error())
						return
					}
					out.Result(res)
				},
			})
			if err != nil {
				return err
			}

			out.Success("Watching with schedule " + cronExpr + ", press Ctrl+C to stop")
			return s.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&cronExpr, "cron", "", "Cron expression (default from WATCH_CRON)")
	cmd.Flags().BoolVar(&now, "now", false, "Run once immediately before the first tick")

	return cmd
}
