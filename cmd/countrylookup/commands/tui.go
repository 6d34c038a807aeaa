package commands

import (
	"fmt"
	"io"
	"os"

	"countrylookup/internal/components/telemetry"
	"countrylookup/internal/tui"

	"github.com/spf13/cobra"
)

const tuiLogFile = "countrylookup.log"

func init() {
	rootCmd.AddCommand(tuiCmd)
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Opens the interactive terminal lookup.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// the terminal belongs to the program, logs go to a file when verbose
		var logOutput io.Writer = io.Discard
		if verbose {
			f, err := os.OpenFile(tuiLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer f.Close()
			logOutput = f
		}
		telemetry.InitSlogTo(logOutput, verbose)

		tel := telemetry.SlogAPI{}
		shutdown, err := setupTelemetry(ctx, cfg, tel)
		if err != nil {
			return err
		}
		defer shutdown()

		dispatcher, err := newDispatcher(cfg, tel)
		if err != nil {
			return fmt.Errorf("init dispatcher: %w", err)
		}

		err = tui.Run(ctx, dispatcher)
		if err != nil {
			return fmt.Errorf("run tui: %w", err)
		}
		return nil
	},
}
