package commands

import (
	"fmt"
	"strings"

	"countrylookup/internal/components/telemetry"
	"countrylookup/internal/render/text"
	"countrylookup/internal/view"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <name...>",
	Short: "Looks up a country once and prints every match as a table, exits 1 when nothing is shown.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

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

		renderer := text.NewRenderer()
		// loading goes to stderr so stdout only carries the outcome
		progress := view.SinkFunc(func(v view.ResultView) {
			if v.Kind == view.KindLoading {
				renderer.Render(cmd.ErrOrStderr(), v)
			}
		})

		result := dispatcher.FetchCountryData(ctx, strings.Join(args, " "), progress)
		err = renderer.Render(cmd.OutOrStdout(), result)
		if err != nil {
			return fmt.Errorf("render result: %w", err)
		}
		if result.Kind == view.KindError {
			return errNoResult
		}
		return nil
	},
}
