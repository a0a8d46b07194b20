package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(minPairAdsEnv, "")

	cfg := Load()
	assert.Equal(t, 30, cfg.Thresholds.MinRoleAds)
	assert.Equal(t, 20, cfg.Thresholds.MinSkillAdsGlobal)
	assert.Equal(t, 5, cfg.Thresholds.MinPairAds)
	assert.Equal(t, "ads_parsed_all.csv", cfg.Artifacts.Parsed)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`
paths:
  inputDir: /data/export
thresholds:
  minRoleAds: 10
  topN: 5
charts:
  offline: true
skillsColumn: skills_extracted
`)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	t.Setenv(configPathEnv, path)
	t.Setenv(minPairAdsEnv, "2")
	t.Setenv(workersEnv, "not-a-number")

	cfg := Load()
	assert.Equal(t, "/data/export", cfg.Paths.InputDir)
	assert.Equal(t, "outputs", cfg.Paths.OutputDir)
	assert.Equal(t, 10, cfg.Thresholds.MinRoleAds)
	assert.Equal(t, 20, cfg.Thresholds.MinSkillAdsGlobal)
	assert.Equal(t, 2, cfg.Thresholds.MinPairAds)
	assert.Equal(t, 5, cfg.Thresholds.TopN)
	assert.True(t, cfg.Charts.Offline)
	assert.Equal(t, "skills_extracted", cfg.SkillsColumn)
	assert.Equal(t, 4, cfg.Workers, "invalid override keeps the previous value")
}

func TestLoadBadFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("thresholds: [unterminated"), 0o644))
	t.Setenv(configPathEnv, path)

	cfg := Load()
	assert.Equal(t, Default().Thresholds, cfg.Thresholds)
}
