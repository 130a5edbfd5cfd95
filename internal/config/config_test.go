package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landed-cost/internal/errors"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, int64(10000), cfg.Engine.ReferenceBatchSize)
	assert.Equal(t, "full", cfg.Engine.CustomsBase)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("engine:\n  currency: CHF\n  reference_batch_size: 5000\n  customs_base: inbound\ndata:\n  dir: ./ref\n  format: json\n")
	require.NoError(t, os.WriteFile(path, body, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "CHF", cfg.Engine.Currency.String())
	assert.Equal(t, int64(5000), cfg.Engine.ReferenceBatchSize)
	assert.Equal(t, "inbound", cfg.Engine.CustomsBase)
	assert.Equal(t, "./ref", cfg.Data.Dir)
	// untouched sections keep defaults
	assert.Equal(t, "cli", cfg.Output.DefaultFormat)
}

func TestLoadRejectsUnknownCustomsBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"engine":{"customs_base":"cif","reference_batch_size":1}}`), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Default()
	cfg.Engine.UseTemplateDefaults = true
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, loaded.Engine.UseTemplateDefaults)
}

func TestDotEnvAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("LANDED_COST_BATCH_SIZE=2500\n"), 0644))

	t.Setenv("LANDED_COST_BATCH_SIZE", "")
	os.Unsetenv("LANDED_COST_BATCH_SIZE")
	t.Setenv("LANDED_COST_LOG_LEVEL", "debug")
	t.Setenv("LANDED_COST_CUSTOMS_BASE", "material_conversion")

	require.NoError(t, LoadDotEnv(envPath))
	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, int64(2500), cfg.Engine.ReferenceBatchSize)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "material_conversion", cfg.Engine.CustomsBase)
}

func TestApplyEnvRejectsBadBatchSize(t *testing.T) {
	t.Setenv("LANDED_COST_BATCH_SIZE", "many")
	cfg := Default()
	err := cfg.ApplyEnv()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}
