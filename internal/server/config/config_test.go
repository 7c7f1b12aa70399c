package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, c.EndpointAddr, ":3000")
	assert.Equal(t, c.DataDir, "./data")
	assert.Equal(t, c.DatabaseDSN, "")
	assert.Equal(t, c.HorizonURL, "https://horizon-testnet.stellar.org")
	assert.Equal(t, c.FriendbotURL, "https://friendbot.stellar.org")
	assert.Equal(t, c.NetworkPassphrase, "Test SDF Network ; September 2015")
	assert.Equal(t, c.AdminToken, "devtoken")
	assert.Equal(t, c.AdminUser, "admin")
	assert.Equal(t, c.AdminPass, "password")
	assert.Equal(t, c.SessionSigningKey, "secretKey")
	assert.Equal(t, c.SessionTTL, 24*time.Hour)
	assert.Equal(t, c.AdminSessionTTL, 1*time.Hour)
	assert.Equal(t, c.StatsCacheTTL, 60*time.Second)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")

	assert.Equal(t, c.EndpointAddr, ":3000")
	assert.Equal(t, c.AdminToken, "devtoken")
	assert.Equal(t, c.SessionTTL, 24*time.Hour)
	assert.Equal(t, c.StatsCacheTTL, 60*time.Second)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "prod-token")
	t.Setenv("HORIZON_URL", "http://horizon.local")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, c.AdminToken, "prod-token")
	assert.Equal(t, c.HorizonURL, "http://horizon.local")
	// untouched variables keep their defaults
	assert.Equal(t, c.AdminUser, "admin")
}
