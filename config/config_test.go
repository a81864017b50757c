package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 2*time.Hour, cfg.Cart.SessionTTL)
	assert.Equal(t, "pix@restaurante.com.br", cfg.Pix.Key)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("app:\n  timezone: America/Sao_Paulo\ndatabase:\n  driver: postgres\n  dsn: host=db\ncart:\n  session_ttl: 45m\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DATABASE_DSN", "host=override")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "host=override", cfg.Database.DSN)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 45*time.Minute, cfg.Cart.SessionTTL)
	assert.Equal(t, "America/Sao_Paulo", cfg.Location().String())
}

func TestValidate(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	prod := *cfg
	prod.App.Env = "production"
	assert.Error(t, prod.Validate(), "production needs a jwt secret")
	prod.JWT.Secret = "s3cret"
	assert.NoError(t, prod.Validate())

	bad := *cfg
	bad.Database.Driver = "oracle"
	assert.Error(t, bad.Validate())

	tz := *cfg
	tz.App.Timezone = "Mars/Olympus"
	assert.Error(t, tz.Validate())
}
