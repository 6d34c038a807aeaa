package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"countrylookup/internal/components/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	dumpHttp   string
)

// errNoResult means a search ended in an error view, which was already printed.
var errNoResult = errors.New("search did not find any country")

var rootCmd = &cobra.Command{
	Use:           "countrylookup",
	Short:         "countrylookup looks up countries by name and shows them as cards.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "countrylookup.json5", "Path to the config file, a missing file means defaults.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging/instrumentation.")
	rootCmd.PersistentFlags().StringVar(&dumpHttp, "dump-http", "", "Write every outbound HTTP exchange into this directory.")
}

func ExecuteContext(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return
	}
	if !errors.Is(err, errNoResult) {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}
