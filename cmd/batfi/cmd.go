package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kusaanko/BatFi/internal/client"
	"github.com/kusaanko/BatFi/pkg/daemon"
)

var apiClient *client.Client

func handleCmdError(err error) {
	if errors.Is(err, client.ErrDaemonNotRunning) {
		fmt.Fprintln(os.Stderr, "\nError: batfi daemon is not running")
		fmt.Fprintln(os.Stderr, "Is the daemon running? Have you installed it?")
	} else if errors.Is(err, client.ErrPermissionDenied) {
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintln(os.Stderr, "  - Try running the command again with 'sudo'")
	}
}

// NewCommand .
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batfi",
		Short: "batfi observes the battery and keeps its charge within a limit",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			apiClient = client.NewClient(unixSocketPath)
			return setupLogger()
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&unixSocketPath, "socket", unixSocketPath, "helper daemon unix socket path")

	cmd.AddCommand(
		NewDaemonCommand(),
		NewStatusCommand(),
		NewHistoryCommand(),
		NewLimitCommand(),
		NewModeCommand(),
		NewChargeManagementCommand(),
		NewWatchCommand(),
	)

	return cmd
}

// NewDaemonCommand .
func NewDaemonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the batfi helper daemon in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			return daemon.Run(daemon.Options{
				SocketPath:   unixSocketPath,
				DatabasePath: databasePath,
				SettingsPath: settingsPath,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&databasePath, "database", databasePath, "history database path")
	flags.StringVar(&settingsPath, "settings", settingsPath, "settings file path")

	return cmd
}

// NewLimitCommand .
func NewLimitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "limit [percentage]",
		Short: "Get or set the charge limit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			if len(args) == 0 {
				limit, err := apiClient.ChargeLimit(ctx)
				if err != nil {
					return err
				}
				cmd.Printf("%d%%\n", limit)
				return nil
			}

			var limit int
			if _, err := fmt.Sscanf(args[0], "%d", &limit); err != nil {
				return fmt.Errorf("invalid limit %q: %v", args[0], err)
			}
			if err := apiClient.SetChargeLimit(ctx, limit); err != nil {
				return err
			}
			cmd.Printf("charge limit set to %d%%\n", limit)
			return nil
		},
	}
}

// NewModeCommand .
func NewModeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mode [forceCharge|forceDischarge|auto]",
		Short: "Get the charging mode, or force one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			if len(args) == 0 {
				m, err := apiClient.ChargingMode(ctx)
				if err != nil {
					return err
				}
				cmd.Printf("%s\n", m)
				return nil
			}

			want := args[0]
			if want == "auto" {
				want = ""
			}
			if err := apiClient.Put(ctx, "/charging-mode", want); err != nil {
				return err
			}
			cmd.Printf("charging mode override set to %q\n", args[0])
			return nil
		},
	}
}

// NewChargeManagementCommand .
func NewChargeManagementCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manage [on|off]",
		Short: "Get or set whether batfi manages charging",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			if len(args) == 0 {
				enabled, err := apiClient.ChargeManagementEnabled(ctx)
				if err != nil {
					return err
				}
				if enabled {
					cmd.Println("on")
				} else {
					cmd.Println("off")
				}
				return nil
			}

			switch args[0] {
			case "on":
				return apiClient.SetChargeManagementEnabled(ctx, true)
			case "off":
				return apiClient.SetChargeManagementEnabled(ctx, false)
			default:
				return fmt.Errorf("expected on or off, got %q", args[0])
			}
		},
	}
	return cmd
}
