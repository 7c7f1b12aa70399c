package config

import "os"

// parseEnv overlays values from environment variables. Only variables that
// are actually set override the current configuration.
func parseEnv(config *Config) {
	overlay := map[string]*string{
		"ADDRESS":             &config.EndpointAddr,
		"DATA_DIR":            &config.DataDir,
		"DATABASE_DSN":        &config.DatabaseDSN,
		"HORIZON_URL":         &config.HorizonURL,
		"FRIENDBOT_URL":       &config.FriendbotURL,
		"NETWORK_PASSPHRASE":  &config.NetworkPassphrase,
		"ADMIN_TOKEN":         &config.AdminToken,
		"ADMIN_USER":          &config.AdminUser,
		"ADMIN_PASS":          &config.AdminPass,
		"SESSION_SIGNING_KEY": &config.SessionSigningKey,
	}

	for name, field := range overlay {
		if v, ok := os.LookupEnv(name); ok {
			*field = v
		}
	}
}
