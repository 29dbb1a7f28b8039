package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("env overrides defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("DSN", "user:pass@tcp(localhost:3306)/notes")
		t.Setenv("PORT", "8080")
		t.Setenv("TOKEN_TTL", "30m")
		t.Setenv("BCRYPT_COST", "4")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
		assert.Equal(t, 4, cfg.Auth.BcryptCost)
		assert.Equal(t, 5*time.Second, cfg.Database.QueryTimeout)
	})

	t.Run("yaml file then env", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.yaml")
		yamlDoc := `
server:
  addr: ":9000"
database:
  dsn: "file-user@tcp(db:3306)/notes"
  query_timeout: 2s
auth:
  jwt_secret: "from-file"
logging:
  level: debug
`
		require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o600))
		t.Setenv("JWT_SECRET", "from-env")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, ":9000", cfg.Server.Addr)
		assert.Equal(t, "file-user@tcp(db:3306)/notes", cfg.Database.DSN)
		assert.Equal(t, 2*time.Second, cfg.Database.QueryTimeout)
		assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("DSN", "user:pass@tcp(localhost:3306)/notes")

		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET is required")
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s")
		t.Setenv("DSN", "d")
		t.Setenv("DB_QUERY_TIMEOUT", "soon")

		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_QUERY_TIMEOUT")
	})
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Auth.JWTSecret = "s"
	cfg.Database.DSN = "d"
	require.NoError(t, cfg.Validate())

	cfg.Auth.BcryptCost = 99
	cfg.Auth.TokenTTL = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bcrypt cost")
	assert.Contains(t, err.Error(), "token ttl")
}

func TestReadSkipsValidation(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DSN", "user:pass@tcp(localhost:3306)/notes")

	cfg, err := Read("")
	require.NoError(t, err)
	assert.Equal(t, "user:pass@tcp(localhost:3306)/notes", cfg.Database.DSN)
}
