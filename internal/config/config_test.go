package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_NAME", "DB_DSN_READONLY", "HTTP_ADDR", "ADMIN_PASSWORD_HASH"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, 3306, cfg.DBPort)
	assert.Equal(t, "root", cfg.DBUser)
	assert.Equal(t, "sales_management", cfg.DBName)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Empty(t, cfg.DBReadOnlyDSN)
	assert.False(t, cfg.AuthEnabled())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abc")
	t.Setenv("DB_DSN_READONLY", "reporter:pw@tcp(db.internal:3306)/sales_management")

	cfg := FromEnv()

	assert.Equal(t, "reporter:pw@tcp(db.internal:3306)/sales_management", cfg.DBReadOnlyDSN)

	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, 3307, cfg.DBPort)
	assert.True(t, cfg.AuthEnabled())
}

func TestFromEnvBadPortFallsBack(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")

	assert.Equal(t, 3306, FromEnv().DBPort)
}
