package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "deploy.yml")
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("RTR_LINK_SECRET=from-dotenv\n"), 0600))
	require.NoError(t, os.WriteFile(p, []byte(`server:
  addr: "127.0.0.1:8080"
  public_url: "https://rec.example.com"

database:
  driver: "sqlite"
  sqlite_path: ":memory:"

redis:
  ip: "127.0.0.1"
  port: 6379

blob:
  driver: "local"
  root: "/tmp/rtr"

auth:
  max_failed_attempts: 3

quota:
  tier_limits:
    premium: 36000

download:
  link_secret: "${RTR_LINK_SECRET}"

cors:
  allow_origins:
    - "*"
  max_age: 600

rate_limit:
  - path: "/login"
    window_seconds: 1
    limit: 10
`), 0600))

	conf, err := Load(p, envFile)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", conf.Server.Addr)
	assert.Equal(t, "from-dotenv", conf.Download.LinkSecret)
	assert.Equal(t, 3, conf.Auth.MaxFailedAttempts)
	assert.Equal(t, 24, conf.Auth.WindowHours)
	assert.Equal(t, 7, conf.Auth.RetentionDays)
	assert.Equal(t, 15, conf.Quota.ChunkSeconds)
	assert.Equal(t, 1200, conf.Quota.TierLimits["free"])
	assert.Equal(t, 36000, conf.Quota.TierLimits["premium"])
	assert.Equal(t, 720000, conf.Quota.TierLimits["pro"])
	assert.True(t, conf.Redis.Enabled())
	assert.Len(t, conf.RateLimit, 1)
}

func TestLoad_MissingEnvFileIgnored(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "deploy.yml")
	require.NoError(t, os.WriteFile(p, []byte("download:\n  link_secret: s\n"), 0600))

	conf, err := Load(p, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", conf.Database.Driver)
	assert.Equal(t, "local", conf.Blob.Driver)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"zero tier limit":   "download:\n  link_secret: s\nquota:\n  tier_limits:\n    free: -1\n",
		"unknown db driver": "download:\n  link_secret: s\ndatabase:\n  driver: oracle\n",
		"s3 without bucket": "blob:\n  driver: s3\n",
		"missing secret":    "blob:\n  driver: local\n",
		"bad yaml":          "server: [",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(content))
			assert.Error(t, err)
		})
	}
}

func TestDurations(t *testing.T) {
	conf, err := Parse([]byte("download:\n  link_secret: s\n"))
	require.NoError(t, err)
	assert.Equal(t, 24*60*60, int(conf.Auth.Window().Seconds()))
	assert.Equal(t, 7*24*60*60, int(conf.Auth.Retention().Seconds()))
	assert.Equal(t, 30, int(conf.Auth.LockTTL().Seconds()))
	assert.Equal(t, 3600, int(conf.Download.LinkTTL().Seconds()))
}
