package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/kusaanko/BatFi/pkg/history"
)

// NewHistoryCommand .
func NewHistoryCommand() *cobra.Command {
	var since time.Duration

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded battery history as chart intervals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			to := time.Now()
			from := to.Add(-since)

			points, err := apiClient.History(ctx, from, to)
			if err != nil {
				return err
			}
			if len(points) == 0 {
				cmd.Println("no history recorded in this window")
				return nil
			}

			intervals := history.RenderIntervals(history.NewPointSet(points))
			for _, iv := range intervals {
				cmd.Printf("%s  %s  %3d%%  %s\n",
					iv.Start.Format(time.DateTime),
					iv.End.Format(time.DateTime),
					iv.BatteryLevel,
					iv.Classification,
				)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&since, "since", 24*time.Hour, "how far back to query")

	return cmd
}
