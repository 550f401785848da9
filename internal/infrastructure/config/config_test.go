package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "v1", cfg.GetAPIVersion())
	assert.Equal(t, 5*time.Minute, cfg.GetListStaleTime())
	assert.Equal(t, time.Duration(0), cfg.GetDetailStaleTime())
	assert.Equal(t, time.Duration(0), cfg.GetCommentsStaleTime())
	assert.Equal(t, 5*time.Minute, cfg.GetCacheGCTime())
	assert.Equal(t, 3, cfg.GetQueryRetry())
	assert.Equal(t, time.Hour, cfg.GetAccessTokenExpiry())
	assert.True(t, cfg.GetSeedDemoData())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://api.test")
	t.Setenv("LIST_STALE_TIME", "30s")
	t.Setenv("QUERY_RETRY", "0")
	t.Setenv("ACCESS_TOKEN_EXPIRY_MINUTES", "15")
	t.Setenv("SEED_DEMO_DATA", "false")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://api.test", cfg.GetAPIBaseURL())
	assert.Equal(t, 30*time.Second, cfg.GetListStaleTime())
	assert.Equal(t, 0, cfg.GetQueryRetry())
	assert.Equal(t, 15*time.Minute, cfg.GetAccessTokenExpiry())
	assert.False(t, cfg.GetSeedDemoData())
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	body := `{"PORT": "9090", "CACHE_GC_TIME": "1m", "LOG_FORMAT": "text"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.GetPort())
	assert.Equal(t, time.Minute, cfg.GetCacheGCTime())
	assert.Equal(t, "text", cfg.GetLogFormat())
}

func TestLoad_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o600))

	_, err := Load(dir)
	assert.Error(t, err)
}
