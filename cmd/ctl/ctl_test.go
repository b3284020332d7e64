package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := fmt.Sprintf(`
log:
  level: error
jwt:
  secret: ctl-test
db:
  driver: sqlite
  dsn: file:%s
  autoMigrate: false
auth:
  adminEmail: ""
  adminEmails: [root@library.test]
  passwordIterations: 1000
`, filepath.Join(dir, "library.db"))
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	return path
}

func run(t *testing.T, cfg string, args ...string) (string, error) {
	t.Helper()
	cmd, e := newRootCmd()
	defer e.close()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCtlCommands(t *testing.T) {
	cfg := writeConfig(t)

	out, err := run(t, cfg, "migrate", "up")
	require.NoError(t, err, out)
	assert.Contains(t, out, "migrate up: OK")

	_, err = run(t, cfg, "migrate", "status")
	assert.ErrorContains(t, err, "only supported on postgres")

	_, err = run(t, cfg, "migrate", "sideways")
	assert.Error(t, err)

	seed := []string{"seed-admin", "--email", "root@library.test", "--password", "s3cret", "--name", "Root", "--phone", "555-0000"}
	out, err = run(t, cfg, seed...)
	require.NoError(t, err, out)
	assert.Contains(t, out, "member created=true, account created=true, role=admin")

	out, err = run(t, cfg, seed...)
	require.NoError(t, err, out)
	assert.Contains(t, out, "member created=false, account created=false")

	_, err = run(t, cfg, "create-account", "--email", "nobody@library.test", "--password", "pw")
	assert.ErrorContains(t, err, "Member with email nobody@library.test not found")

	_, err = run(t, cfg, "create-account", "--password", "pw")
	assert.Error(t, err, "email flag is required")
}
