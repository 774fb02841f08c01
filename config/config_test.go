package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("MAX_FILE_SIZE_MB", "")

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSize)
	assert.Equal(t, "Associate Professor", cfg.Letterhead.Designation)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("DEFAULT_EMPLOYEE_NAME", "R. K. Patel")
	t.Setenv("MAX_FILE_SIZE_MB", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, "R. K. Patel", cfg.Letterhead.EmployeeName)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSize)
}
