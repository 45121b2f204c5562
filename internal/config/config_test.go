package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v := NewViper()
	v.Set("jwt.secret", "s3cret")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "gym_app", cfg.Database.Name)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "UTC", cfg.App.Timezone)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, 20, cfg.RateLimit.AuthPerMinute)
	assert.True(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.S3.Enabled())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("GYM_JWT_SECRET", "from-env")
	t.Setenv("GYM_DATABASE_DRIVER", "memory")
	t.Setenv("GYM_APP_TIMEZONE", "America/Sao_Paulo")
	t.Setenv("GYM_ADMIN_OWNER_EMAIL", " Owner@Gym.App ")

	cfg, err := Load(NewViper())
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, "owner@gym.app", cfg.Admin.OwnerEmail)

	loc, err := cfg.App.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", loc.String())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("jwt:\n  secret: file-secret\n  expiration: 2h\ns3:\n  bucket_name: exports\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	v := NewViper()
	require.NoError(t, ReadFile(v, path))
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Expiration)
	assert.True(t, cfg.S3.Enabled())
}

func TestReadFile_MissingExplicitPath(t *testing.T) {
	err := ReadFile(NewViper(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	cases := map[string]func(v *viper.Viper){
		"missing secret":  func(v *viper.Viper) { v.Set("jwt.secret", "") },
		"unknown driver":  func(v *viper.Viper) { v.Set("database.driver", "postgres") },
		"bad timezone":    func(v *viper.Viper) { v.Set("app.timezone", "Mars/Olympus") },
		"zero rate limit": func(v *viper.Viper) { v.Set("ratelimit.auth_per_minute", 0) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			v := NewViper()
			v.Set("jwt.secret", "s3cret")
			mutate(v)
			_, err := Load(v)
			assert.Error(t, err)
		})
	}
}
