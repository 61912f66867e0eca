package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadMissingFile verifies a missing config file yields the defaults.
func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "cashier.db", cfg.Database.Name)
	assert.Equal(t, "Europe/Zurich", cfg.System.Location)
	assert.Equal(t, 8090, cfg.Web.Port)
}

// TestLoadOverridesDefaults verifies file values win while unset keys keep
// their defaults.
func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cashier.yml")
	content := `
database:
  type: postgres
  host: db.local
  port: 5432
  name: cashier
  user: cashier
  passwd: secret
web:
  port: 9000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, 9000, cfg.Web.Port)
	assert.Equal(t, "127.0.0.1", cfg.Web.Host, "unset key keeps default")
	assert.Equal(t, "Europe/Zurich", cfg.System.Location)
}

// TestLoadRejectsGarbage verifies unparseable YAML is an error.
func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cashier.yml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
