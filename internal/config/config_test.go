package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
server:
  host: "0.0.0.0"
  port: 8084
database:
  host: "localhost"
  port: 5432
  user: "checkout"
  database: "checkout_db"
jwt:
  secret: "file-secret"
`

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad_AppliesCheckoutDefaults(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, int64(1000), cfg.Checkout.TaxRateBasisPoints)
	assert.Equal(t, int64(1000), cfg.Checkout.ShippingFlatCents)
	assert.Equal(t, int64(10000), cfg.Checkout.FreeShippingThresholdCents)
	assert.Equal(t, int64(10), cfg.Checkout.BuyPriceMultiplier)
	assert.Equal(t, "USD", cfg.Checkout.Currency)
	assert.Equal(t, 30, cfg.Checkout.DraftTTLDays)
	assert.Equal(t, 15, cfg.Checkout.SubmissionTimeoutMinutes)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotEmpty(t, cfg.Scheduler.ExpireStaleDrafts)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load(writeConfigFile(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "Missing JWT secret",
			yaml: `
server:
  port: 8084
database:
  host: "localhost"
  user: "checkout"
  database: "checkout_db"
`,
		},
		{
			name: "Missing database host",
			yaml: `
server:
  port: 8084
database:
  user: "checkout"
  database: "checkout_db"
jwt:
  secret: "s"
`,
		},
		{
			name: "Bad server port",
			yaml: `
server:
  port: -1
database:
  host: "localhost"
  user: "checkout"
  database: "checkout_db"
jwt:
  secret: "s"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfigFile(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestGetDatabaseConnectionString(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "localhost", Port: 5432, User: "u", Password: "p", Database: "d",
	}}
	assert.Equal(t,
		"host=localhost port=5432 user=u password=p dbname=d sslmode=disable",
		cfg.GetDatabaseConnectionString())
}
