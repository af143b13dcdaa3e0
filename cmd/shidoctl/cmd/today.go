package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/shidoapp/shido/internal/app"
	"github.com/shidoapp/shido/internal/config"
	"github.com/spf13/cobra"
)

func TodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today <user-id>",
		Short: "Print today's score and the state of every active habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := args[0]

			a, err := app.New(config.Load())
			if err != nil {
				return err
			}
			defer a.Close()

			summary, err := a.DashboardService.TodaySummary(userID)
			if err != nil {
				return err
			}
			lifetime, err := a.DashboardService.LifetimeScore(userID)
			if err != nil {
				return err
			}
			habits, err := a.HabitService.List(userID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  today %d  lifetime %d\n\n", summary.Date, summary.Score, lifetime)

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "HABIT\tTYPE\tPOINTS\tDONE")
			for _, h := range habits {
				done := ""
				if summary.Completed(h.ID) {
					done = "yes"
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", h.Name, h.Type, h.PointsApplied(), done)
			}
			return tw.Flush()
		},
	}
}
