package commands

import (
	"context"
	"fmt"
	"time"

	"countrylookup/internal/components/telemetry"
	"countrylookup/internal/configutil"
	"countrylookup/internal/dispatch"
	"countrylookup/internal/restcountries"
	"countrylookup/internal/restyutil"
)

type Config struct {
	BaseUrl string `json:"base_url"`
	Listen  string `json:"listen"`
	// Timeout is a Go duration string, empty means no timeout.
	Timeout     string           `json:"timeout"`
	LatestOnly  bool             `json:"latest_only"`
	DumpHttpDir string           `json:"dump_http_dir"`
	Telemetry   telemetry.Config `json:"telemetry"`
}

func defaultConfig() Config {
	return Config{
		BaseUrl: restcountries.DefaultBaseUrl,
		Listen:  ":8000",
	}
}

func (c Config) timeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("parse timeout %q: %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return d, nil
}

func loadConfig() (Config, error) {
	cfg, err := configutil.ReadConfigWithDefaults(configPath, defaultConfig())
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if dumpHttp != "" {
		cfg.DumpHttpDir = dumpHttp
	}
	return cfg, nil
}

// newDispatcher wires the restcountries client into a dispatcher according to cfg.
func newDispatcher(cfg Config, tel telemetry.API) (*dispatch.Dispatcher, error) {
	timeout, err := cfg.timeout()
	if err != nil {
		return nil, err
	}

	opts := restcountries.ClientOptions{
		BaseUrl: cfg.BaseUrl,
		Timeout: timeout,
	}
	if cfg.DumpHttpDir != "" {
		output, err := restyutil.NewFilesystemOutput(cfg.DumpHttpDir)
		if err != nil {
			return nil, err
		}
		opts.DumpOutput = output
	}
	client := restcountries.NewClient(opts, tel)

	var dispatchOpts []dispatch.Option
	if cfg.LatestOnly {
		dispatchOpts = append(dispatchOpts, dispatch.WithLatestOnly())
	}
	return dispatch.NewDispatcher(client, tel, dispatchOpts...), nil
}

// setupTelemetry returns a function that flushes the exporters, callers defer
// it before anything that can fail.
func setupTelemetry(ctx context.Context, cfg Config, tel telemetry.API) (func(), error) {
	t, err := telemetry.Setup(ctx, "countrylookup", cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("setup telemetry: %w", err)
	}
	return func() {
		err := t.Shutdown(context.Background())
		if err != nil {
			tel.ReportWarning("telemetry.shutdown", err)
		}
	}, nil
}
