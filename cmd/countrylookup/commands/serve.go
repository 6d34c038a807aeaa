package commands

import (
	"fmt"
	"log/slog"

	"countrylookup/internal/components/telemetry"
	"countrylookup/internal/render/html"
	"countrylookup/internal/server"

	"github.com/spf13/cobra"
)

var listenAddr string

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Address to listen on, overrides the config.")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [--listen <addr>]",
	Short: "Serves the lookup page, fragments and the search RPC.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if listenAddr != "" {
			cfg.Listen = listenAddr
		}

		tel := telemetry.SlogAPI{}
		shutdown, err := setupTelemetry(ctx, cfg, tel)
		if err != nil {
			return err
		}
		defer shutdown()
		telemetry.InstrumentPerfStats(ctx, tel)

		dispatcher, err := newDispatcher(cfg, tel)
		if err != nil {
			return fmt.Errorf("init dispatcher: %w", err)
		}
		renderer, err := html.NewRenderer()
		if err != nil {
			return fmt.Errorf("init renderer: %w", err)
		}
		handler, err := server.NewServer(dispatcher, renderer, tel).Handler()
		if err != nil {
			return fmt.Errorf("init server: %w", err)
		}

		err = server.ListenAndServe(ctx, cfg.Listen, handler)
		if err != nil {
			return err
		}
		slog.Info("server stopped")
		return nil
	},
}
