// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment variables and
// command-line flags.
package config

import "time"

// Config holds runtime settings for the donation platform server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP endpoint.
//   - DataDir: directory for the JSON snapshot store.
//   - DatabaseDSN: PostgreSQL DSN (pgx); empty selects the JSON store.
//   - HorizonURL / FriendbotURL / NetworkPassphrase: ledger endpoints.
//   - AdminToken: shared secret for the automation admin path.
//   - AdminUser / AdminPass: credentials for the browser admin login.
//   - SessionSigningKey: HMAC secret for admin session tokens (HS256).
//     Do not use test defaults in prod.
//   - SessionTTL / AdminSessionTTL: session lifetimes.
//   - StatsCacheTTL: how long aggregated donation totals stay fresh.
type Config struct {
	EndpointAddr      string
	DataDir           string
	DatabaseDSN       string
	HorizonURL        string
	FriendbotURL      string
	NetworkPassphrase string
	AdminToken        string
	AdminUser         string
	AdminPass         string
	SessionSigningKey string
	SessionTTL        time.Duration
	AdminSessionTTL   time.Duration
	StatsCacheTTL     time.Duration
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":3000"
	c.DataDir = "./data"
	c.DatabaseDSN = ""
	c.HorizonURL = "https://horizon-testnet.stellar.org"
	c.FriendbotURL = "https://friendbot.stellar.org"
	c.NetworkPassphrase = "Test SDF Network ; September 2015"
	c.AdminToken = "devtoken"
	c.AdminUser = "admin"
	c.AdminPass = "password"
	c.SessionSigningKey = "secretKey"
	c.SessionTTL = 24 * time.Hour
	c.AdminSessionTTL = 1 * time.Hour
	c.StatsCacheTTL = 60 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
