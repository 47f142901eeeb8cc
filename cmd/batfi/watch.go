package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kusaanko/BatFi/pkg/dist"
	"github.com/kusaanko/BatFi/pkg/mode"
	"github.com/kusaanko/BatFi/pkg/power"
)

// NewWatchCommand .
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Continuously watch power distribution and charging status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			infos := dist.NewPoller(apiClient).Subscribe(ctx)

			classifications := make(chan power.Classification, 1)
			enabled := make(chan bool, 1)
			go watchStatusInputs(ctx, classifications, enabled)
			labels := mode.WatchLabel(ctx, classifications, enabled)

			for {
				select {
				case <-ctx.Done():
					return nil
				case info, ok := <-infos:
					if !ok {
						return nil
					}
					cmd.Printf("AC %.1fW  battery %+.1fW  system %.1fW\n",
						info.ACPower, info.BatteryPower, info.SystemPower)
				case label, ok := <-labels:
					if !ok {
						return nil
					}
					cmd.Printf("status: %s\n", label)
				}
			}
		},
	}
}

// watchStatusInputs polls the helper for the charging mode and the
// charge-management flag, feeding the label stream. Duplicates are fine;
// the label stream is driven by updates, not by change detection.
func watchStatusInputs(ctx context.Context, classifications chan<- power.Classification, enabled chan<- bool) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		m, err := apiClient.ChargingMode(ctx)
		if err != nil {
			logrus.Debugf("failed to fetch charging mode: %v", err)
		} else {
			select {
			case classifications <- m.Classify():
			case <-ctx.Done():
				return
			}
		}

		managed, err := apiClient.ChargeManagementEnabled(ctx)
		if err != nil {
			logrus.Debugf("failed to fetch charge management flag: %v", err)
		} else {
			select {
			case enabled <- managed:
			case <-ctx.Done():
				return
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
