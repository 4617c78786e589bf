package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigFile_TOML(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "report.toml", `
profile = "billing"
days = 14
threshold_fraction = 0.05
channel = "C0123"
fold_change = false
report_type = ["csv", "pdf"]

[chart]
dpi = 150
`)

	cfg, err := NewConfigRepository("").LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "billing", cfg.Profile)
	assert.Equal(t, 14, cfg.Days)
	require.NotNil(t, cfg.ThresholdFraction)
	assert.Equal(t, 0.05, *cfg.ThresholdFraction)
	assert.Nil(t, cfg.LookbackDays)
	assert.Equal(t, "C0123", cfg.Channel)
	require.NotNil(t, cfg.FoldChange)
	assert.False(t, *cfg.FoldChange)
	assert.Equal(t, []string{"csv", "pdf"}, cfg.ReportType)
	assert.Equal(t, 150, cfg.Chart.DPI)
}

func TestLoadConfigFile_YAMLAndJSON(t *testing.T) {
	dir := t.TempDir()
	yml := write(t, dir, "report.yml", "tag_key: team\nlookback_days: 45\n")
	js := write(t, dir, "report.json", `{"metric": "UnblendedCost", "rolling_window": 14}`)

	cfg, err := NewConfigRepository("").LoadConfigFile(yml)
	require.NoError(t, err)
	assert.Equal(t, "team", cfg.TagKey)
	require.NotNil(t, cfg.LookbackDays)
	assert.Equal(t, 45, *cfg.LookbackDays)
	assert.Nil(t, cfg.FoldChange)

	cfg, err = NewConfigRepository("").LoadConfigFile(js)
	require.NoError(t, err)
	assert.Equal(t, "UnblendedCost", cfg.Metric)
	assert.Equal(t, 14, cfg.RollingWindow)
}

func TestLoadConfigFile_ExplicitZeroIsKept(t *testing.T) {
	dir := t.TempDir()
	repo := NewConfigRepository("")

	cfg, err := repo.LoadConfigFile(write(t, dir, "zero.toml", "lookback_days = 0\nthreshold_fraction = 0.0\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.LookbackDays)
	require.NotNil(t, cfg.ThresholdFraction)
	assert.Zero(t, *cfg.LookbackDays)
	assert.Zero(t, *cfg.ThresholdFraction)

	cfg, err = repo.LoadConfigFile(write(t, dir, "zero.yaml", "lookback_days: 0\nthreshold_fraction: 0\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.LookbackDays)
	require.NotNil(t, cfg.ThresholdFraction)
	assert.Zero(t, *cfg.LookbackDays)
	assert.Zero(t, *cfg.ThresholdFraction)
}

func TestLoadConfigFile_DefaultLookup(t *testing.T) {
	dir := t.TempDir()

	cfg, err := NewConfigRepository(dir).LoadConfigFile("")
	require.NoError(t, err)
	assert.Nil(t, cfg)

	write(t, dir, DefaultConfigBase+".yaml", "channel: CDEFAULT\n")
	cfg, err = NewConfigRepository(dir).LoadConfigFile("")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "CDEFAULT", cfg.Channel)
}

func TestLoadConfigFile_Errors(t *testing.T) {
	dir := t.TempDir()
	repo := NewConfigRepository("")

	_, err := repo.LoadConfigFile(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	_, err = repo.LoadConfigFile(dir)
	assert.Error(t, err)

	_, err = repo.LoadConfigFile(write(t, dir, "report.ini", "days=3"))
	assert.ErrorContains(t, err, "unsupported config file format")

	_, err = repo.LoadConfigFile(write(t, dir, "bad.json", `{"threshold_fraction": 2}`))
	assert.ErrorContains(t, err, "threshold_fraction")

	_, err = repo.LoadConfigFile(write(t, dir, "neg.yaml", "lookback_days: -1\n"))
	assert.ErrorContains(t, err, "lookback_days")

	_, err = repo.LoadConfigFile(write(t, dir, "bad.yaml", "report_type: [xlsx]\n"))
	assert.ErrorContains(t, err, "xlsx")
}
