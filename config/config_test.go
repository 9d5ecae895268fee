package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("DB_MAX_CONNS", "")
	cfg := Load()

	assert.Equal(t, "wordle-circles", cfg.AppName)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.Equal(t, time.Hour, cfg.AccessTTL)
	assert.Equal(t, "db/migrations", cfg.MigrationsDir)
}

func TestLoadOverridesAndBadValues(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("JWT_ACCESS_TTL", "15m")
	t.Setenv("SESSION_TTL", "forever")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 168*time.Hour, cfg.SessionTTL)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5432", DBName: "wc", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/wc?sslmode=disable", cfg.PostgresDSN())
}

func TestCSVLists(t *testing.T) {
	cfg := &Config{
		CORSAllowedOrigins: " http://a.test, ,http://b.test ",
		ElasticsearchAddrs: "",
	}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
	assert.Empty(t, cfg.ESAddrs())
}
