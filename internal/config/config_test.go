package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardlink/internal/models"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("VIEW_RETENTION_DAYS", "")
	t.Setenv("CONSOLE_SESSION_TTL", "")
	t.Setenv("CONSOLE_USERNAME", "")
	t.Setenv("MINIO_ENDPOINT", "")

	cfg := Load()
	assert.True(t, cfg.IsDev())
	assert.Equal(t, 365, cfg.ViewRetentionDays)
	assert.Equal(t, models.DefaultOperatorSessionTTL, cfg.ConsoleSessionTTL)
	assert.False(t, cfg.IsConsoleEnabled())
	assert.False(t, cfg.IsStorageEnabled())
	assert.Equal(t, DefaultThemes, cfg.ThemePresets())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("VIEW_RETENTION_DAYS", "0")
	t.Setenv("CONSOLE_SESSION_TTL", "2h")
	t.Setenv("CONSOLE_USERNAME", "ops")
	t.Setenv("CONSOLE_PASSWORD_HASH", "$2a$10$hash")
	t.Setenv("MINIO_ENDPOINT", "minio:9000")

	cfg := Load()
	assert.False(t, cfg.IsDev())
	assert.Equal(t, 0, cfg.ViewRetentionDays)
	assert.Equal(t, 2*time.Hour, cfg.ConsoleSessionTTL)
	assert.True(t, cfg.IsConsoleEnabled())
	assert.True(t, cfg.IsStorageEnabled())
	require.NotNil(t, cfg.FindOperator("ops"))
	assert.Nil(t, cfg.FindOperator("nobody"))
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("VIEW_RETENTION_DAYS", "forever")
	t.Setenv("CONSOLE_SESSION_TTL", "-1h")

	cfg := Load()
	assert.Equal(t, 365, cfg.ViewRetentionDays)
	assert.Equal(t, models.DefaultOperatorSessionTTL, cfg.ConsoleSessionTTL)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
console:
  session_ttl: 12h
  operators:
    - username: root
      password_hash: "$2a$10$roothash"
    - username: ops
      password_hash: "$2a$10$filehash"
themes:
  - name: Brand
    primary: "#112233"
    secondary: "#445566"
    background: "#FFFFFF"
    text: "#000000"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	y, err := loadYAMLFile(path)
	require.NoError(t, err)
	require.NotNil(t, y)
	assert.Equal(t, 12*time.Hour, y.Console.SessionTTL)
	require.Len(t, y.Themes, 1)
	assert.Equal(t, "#112233", y.Themes[0].Primary)

	t.Setenv("CONSOLE_SESSION_TTL", "")
	cfg := &Config{
		Operators:         []Operator{{Username: "ops", PasswordHash: "$2a$10$envhash"}},
		ConsoleSessionTTL: models.DefaultOperatorSessionTTL,
	}
	cfg.ApplyYAML(y)

	assert.Len(t, cfg.Operators, 2)
	assert.Equal(t, "$2a$10$envhash", cfg.FindOperator("ops").PasswordHash, "env operator wins")
	assert.Equal(t, 12*time.Hour, cfg.ConsoleSessionTTL)
	assert.Equal(t, "Brand", cfg.ThemePresets()[0].Name)
}

func TestLoadYAMLFile_Missing(t *testing.T) {
	y, err := loadYAMLFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.NoError(t, err)
	assert.Nil(t, y)

	var cfg Config
	cfg.ApplyYAML(nil)
	assert.Empty(t, cfg.Operators)
}

func TestDefaultThemes(t *testing.T) {
	require.Len(t, DefaultThemes, 6)
	assert.Equal(t, "Dark Mode", DefaultThemes[5].Name)
	assert.Equal(t, "#1F2937", DefaultThemes[5].Background)
}
