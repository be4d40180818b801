package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	require.NoError(t, os.WriteFile(filepath.Join(".", "config.yaml"), []byte(body), 0o600))
}

const baseConfig = `
db_username: postgres
db_password: postgres
db_host: localhost
db_port: "5432"
db_name: hrms
`

func TestNewConfigDefaultsPolicy(t *testing.T) {
	writeConfig(t, baseConfig)

	c, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, float64(8), c.Policy.WorkHoursPerDay)
	assert.Equal(t, float64(22), c.Policy.WorkDaysPerMonth)
	assert.Equal(t, 1.5, c.Policy.OvertimeMultiplier)
	assert.Equal(t, "08:00", c.Policy.StandardCheckIn)
}

func TestNewConfigPartialPolicyBlock(t *testing.T) {
	writeConfig(t, baseConfig+`
policy:
  standard_check_in: "09:00"
`)

	c, err := NewConfig()
	require.NoError(t, err)

	// Unset numeric fields fall back so hourly rates never divide by zero.
	assert.Equal(t, float64(8), c.Policy.WorkHoursPerDay)
	assert.Equal(t, float64(22), c.Policy.WorkDaysPerMonth)
	assert.Equal(t, 1.5, c.Policy.OvertimeMultiplier)
	assert.Equal(t, "09:00", c.Policy.StandardCheckIn)
	assert.Greater(t, c.Policy.HourlyRate(1760), float64(0))
}

func TestNewConfigMissingDatabase(t *testing.T) {
	writeConfig(t, "db_username: postgres\n")

	_, err := NewConfig()
	assert.Error(t, err)
}
