package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl    string `json:"base_url"`
	Listen     string `json:"listen"`
	LatestOnly bool   `json:"latest_only"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	err := os.WriteFile(path, []byte(contents), 0o644)
	require.NoError(t, err)
}

func TestReadConfigMergesLocalOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{
		// comments are allowed
		base_url: "https://restcountries.com",
		listen: "127.0.0.1:8080",
	}`)
	writeFile(t, filepath.Join(dir, "app.local.json5"), `{ listen: "0.0.0.0:9000" }`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "app.json5"))
	require.NoError(t, err)
	require.Equal(t, "https://restcountries.com", cfg.BaseUrl)
	require.Equal(t, "0.0.0.0:9000", cfg.Listen)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "missing.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfigWithDefaults(t *testing.T) {
	defaults := testConfig{
		BaseUrl: "https://restcountries.com",
		Listen:  "127.0.0.1:8080",
	}

	cfg, err := ReadConfigWithDefaults(filepath.Join(t.TempDir(), "missing.json5"), defaults)
	require.NoError(t, err)
	require.Equal(t, defaults, cfg)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{ latest_only: true }`)
	cfg, err = ReadConfigWithDefaults(filepath.Join(dir, "app.json5"), defaults)
	require.NoError(t, err)
	require.Equal(t, testConfig{
		BaseUrl:    "https://restcountries.com",
		Listen:     "127.0.0.1:8080",
		LatestOnly: true,
	}, cfg)
}

func TestReadConfigRejectsMalformed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{ listen: `)

	_, err := ReadConfig[testConfig](filepath.Join(dir, "app.json5"))
	require.Error(t, err)
}
