package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestReadAppliesDefaultsAndEnv(t *testing.T) {
	p := writeConfig(t, `
jwt:
  secret: from-file
auth:
  adminEmails: [root@library.test]
`)
	t.Setenv("APP_DB_DRIVER", "postgres")
	t.Setenv("APP_JWT_ISSUER", "env-issuer")

	c, err := Read(p)
	require.NoError(t, err)
	assert.Equal(t, "from-file", c.JWT.Secret)
	assert.Equal(t, "env-issuer", c.JWT.Issuer)
	assert.Equal(t, "postgres", c.DB.Driver)
	assert.Equal(t, 8080, c.App.HTTP.Port)
	assert.Equal(t, 60, c.JWT.AccessTokenTTLMin)
	assert.Equal(t, "log", c.Events.Driver)
	assert.Equal(t, []string{"root@library.test"}, c.Auth.AdminEmails)
	assert.Equal(t, 310000, c.Auth.PasswordIterations)
	assert.Equal(t, int64(300), c.Limits.MaxConcurrent)
}

func TestReadRejectsInvalid(t *testing.T) {
	_, err := Read(writeConfig(t, "app:\n  name: x\n"))
	assert.ErrorContains(t, err, "jwt.secret")

	_, err = Read(writeConfig(t, "jwt:\n  secret: s\nevents:\n  driver: redis\n"))
	assert.ErrorContains(t, err, "redis.enable")

	_, err = Read(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestShippedLocalConfigLoads(t *testing.T) {
	c, err := Read(filepath.Join("..", "..", "..", "configs", "config.local.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", c.DB.Driver)
	assert.Contains(t, c.Auth.AdminEmails, c.Auth.AdminEmail)
}
