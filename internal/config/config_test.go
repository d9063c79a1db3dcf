package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, name := range []string{
		"REPWIZARD_CATALOG", "REPWIZARD_S3_BUCKET", "REPWIZARD_S3_KEY", "REPWIZARD_ADDR",
		"REPWIZARD_BASE_URL", "REPWIZARD_POLL_INTERVAL", "REPWIZARD_DEBUG",
	} {
		t.Setenv(name, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.False(t, cfg.Catalog.UseS3())
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "repwizard.yaml")
	doc := `
catalog:
  bucket: reports
  key: catalogs/jobs.yaml
http:
  addr: ":9000"
poll:
  interval: 5s
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Catalog.UseS3())
	assert.Equal(t, "catalogs/jobs.yaml", cfg.Catalog.Key)
	assert.Equal(t, "us-east-1", cfg.Catalog.Region)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, 5*time.Second, cfg.Poll.Interval)
	assert.Equal(t, "/notifications/unread/", cfg.Poll.Path)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("zero interval", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("poll:\n  interval: 0s\n"), 0o600))
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestEnvOverrides(t *testing.T) {
	t.Run("env beats file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("REPWIZARD_ADDR", ":7000")
		t.Setenv("REPWIZARD_S3_BUCKET", "from-env")
		t.Setenv("REPWIZARD_POLL_INTERVAL", "1m")
		t.Setenv("REPWIZARD_DEBUG", "true")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, ":7000", cfg.HTTP.Addr)
		assert.Equal(t, "from-env", cfg.Catalog.Bucket)
		assert.Equal(t, time.Minute, cfg.Poll.Interval)
		assert.True(t, cfg.Debug)
	})

	t.Run("bad interval", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("REPWIZARD_POLL_INTERVAL", "soon")

		_, err := Load("")
		assert.Error(t, err)
	})
}
