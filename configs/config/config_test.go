package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `name: ivmfolio
port: "8090"
max_conns_per_ip: 5
firestore:
  project_id: ${TEST_FS_PROJECT}
  projects_collection_name: projects
  ratelimits_collection_name: rateLimits
storage:
  bucket: test-bucket
mail:
  api_key: re_test_key
  from: noreply@ivmanto.dev
auth:
  enabled: true
`

func TestLoadConfig(t *testing.T) {
	t.Setenv("TEST_FS_PROJECT", "ivmfolio-test")

	fn := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(fn, []byte(testConfig), 0o600))

	cfg, err := LoadConfig(fn)
	require.NoError(t, err)

	assert.Equal(t, "ivmfolio", cfg.Name)
	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, 5, cfg.GetMaxConnsPerIP())
	// env vars are expanded before unmarshal
	assert.Equal(t, "ivmfolio-test", cfg.GetProjectID())
	assert.Equal(t, "projects", cfg.GetProjectsCollectionName())
	assert.Equal(t, "rateLimits", cfg.GetRateLimitsCollectionName())
	assert.Equal(t, "test-bucket", cfg.GetBucket())
	assert.Equal(t, "re_test_key", cfg.GetMailAPIKey())
	// `to` falls back to `from` when unset
	assert.Equal(t, "noreply@ivmanto.dev", cfg.GetMailTo())
	assert.True(t, cfg.GetAuthEnabled())
	// unset values fall back to the defaults
	assert.Equal(t, 4, cfg.GetPoolSize())
	assert.Equal(t, "admin", cfg.GetAdminClaim())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
