package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")

	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.Server.Addr)
	assert.Equal(t, "memory", c.Storage.Driver)
	assert.Equal(t, 5*time.Second, c.Storage.OpTimeout)
	assert.Equal(t, "bcrypt", c.Security.PasswordHasher)
	assert.Equal(t, 24*time.Hour, c.AccessTTL())
	assert.Equal(t, 10, c.Rate.Login.Limit)
	assert.Equal(t, time.Minute, Window(c.Rate.Login.Window))
	assert.Equal(t, "log", c.Email.Driver)
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	p := writeYAML(t, `
server:
  addr: ":9000"
storage:
  driver: postgres
  dsn: postgres://u:p@localhost/cursomvc
jwt:
  access_ttl: 1h
security:
  password_hasher: argon2id
`)
	t.Setenv("SERVER_ADDR", ":7000")
	t.Setenv("JWT_ACCESS_TTL", "30m")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, ":7000", c.Server.Addr)
	assert.Equal(t, "postgres://u:p@localhost/cursomvc", c.Storage.DSN)
	assert.Equal(t, 30*time.Minute, c.AccessTTL())
	assert.Equal(t, "argon2id", c.Security.PasswordHasher)
}

func TestValidate(t *testing.T) {
	cases := map[string]map[string]string{
		"postgres sin dsn": {"STORAGE_DRIVER": "postgres"},
		"driver inválido":  {"STORAGE_DRIVER": "oracle"},
		"hasher inválido":  {"STORAGE_DRIVER": "memory", "PASSWORD_HASHER": "md5"},
		"redis sin addr":   {"STORAGE_DRIVER": "memory", "CACHE_KIND": "redis"},
		"smtp sin host":    {"STORAGE_DRIVER": "memory", "EMAIL_DRIVER": "smtp"},
		"secreto corto":    {"STORAGE_DRIVER": "memory", "APP_ENV": "prod", "JWT_SECRET": "corto"},
		"ttl inválido":     {"STORAGE_DRIVER": "memory", "RATE_LOGIN_WINDOW": "mucho"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_BadYAML(t *testing.T) {
	p := writeYAML(t, "server: [")
	_, err := Load(p)
	assert.Error(t, err)
}
