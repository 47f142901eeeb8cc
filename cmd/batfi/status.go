package main

import (
	"context"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/kusaanko/BatFi/pkg/mode"
	"github.com/kusaanko/BatFi/pkg/power"
)

// NewStatusCommand .
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get the current battery and charging status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			snap, err := apiClient.Snapshot(ctx)
			if err != nil {
				return err
			}
			chargingMode, err := apiClient.ChargingMode(ctx)
			if err != nil {
				return err
			}
			managed, err := apiClient.ChargeManagementEnabled(ctx)
			if err != nil {
				return err
			}
			limit, err := apiClient.ChargeLimit(ctx)
			if err != nil {
				return err
			}

			cmd.Println(bold("Battery status:"))
			cmd.Printf("  Current charge: %s\n", bold("%d%%", snap.BatteryLevel))
			cmd.Println("  Power source: " + snap.PowerSource)
			cmd.Println("  Charging: " + bool2Text(snap.IsCharging))
			cmd.Println("  Charger connected: " + bool2Text(snap.ChargerConnected))
			if snap.OptimizedChargingEngaged {
				cmd.Println("  Optimized charging is holding back charge")
			}

			t := mode.TimeFromSnapshot(&snap)
			if t.Charging && t.TimeToFull != power.UnknownMinutes {
				cmd.Printf("  Time to full: %s\n", formatMinutes(t.TimeToFull))
			}
			if !t.Charging && t.TimeToEmpty != power.UnknownMinutes {
				cmd.Printf("  Time to empty: %s\n", formatMinutes(t.TimeToEmpty))
			}

			if temp := mode.FormatTemperature(&snap.Temperature, language.English); temp != nil {
				cmd.Printf("  Temperature: %s\n", *temp)
			}
			cmd.Printf("  Cycle count: %d\n", snap.CycleCount)
			if snap.Health != nil {
				cmd.Printf("  Maximum capacity: %s\n", *snap.Health)
			}

			cmd.Println()
			cmd.Println(bold("Charging control:"))
			cmd.Println("  Status: " + mode.Label(chargingMode.Classify(), managed))
			cmd.Printf("  Mode: %s\n", chargingMode)
			cmd.Printf("  Charge limit: %d%%\n", limit)
			cmd.Println("  Charge management: " + bool2Text(managed))

			return nil
		},
	}
}

func formatMinutes(minutes int) string {
	return (time.Duration(minutes) * time.Minute).String()
}

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
