package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/Berkcanaskin/stellar/internal/flagx"
	"github.com/Berkcanaskin/stellar/internal/timex"
)

// JsonConfig is the intermediate DTO for reading JSON configuration files.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "60s" and integer nanoseconds. After unmarshalling,
// its fields are copied into the runtime Config struct.
type JsonConfig struct {
	EndpointAddr      string         `json:"endpoint_addr"`
	DataDir           string         `json:"data_dir"`
	DatabaseDSN       string         `json:"database_dsn"`
	HorizonURL        string         `json:"horizon_url"`
	FriendbotURL      string         `json:"friendbot_url"`
	NetworkPassphrase string         `json:"network_passphrase"`
	AdminToken        string         `json:"admin_token"`
	AdminUser         string         `json:"admin_user"`
	AdminPass         string         `json:"admin_pass"`
	SessionSigningKey string         `json:"session_signing_key"`
	SessionTTL        timex.Duration `json:"session_ttl"`
	AdminSessionTTL   timex.Duration `json:"admin_session_ttl"`
	StatsCacheTTL     timex.Duration `json:"stats_cache_ttl"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. If the file cannot be
// read or contains invalid JSON, the function panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DataDir = c.DataDir
	config.DatabaseDSN = c.DatabaseDSN
	config.HorizonURL = c.HorizonURL
	config.FriendbotURL = c.FriendbotURL
	config.NetworkPassphrase = c.NetworkPassphrase
	config.AdminToken = c.AdminToken
	config.AdminUser = c.AdminUser
	config.AdminPass = c.AdminPass
	config.SessionSigningKey = c.SessionSigningKey
	config.SessionTTL = time.Duration(c.SessionTTL.Duration)
	config.AdminSessionTTL = time.Duration(c.AdminSessionTTL.Duration)
	config.StatsCacheTTL = time.Duration(c.StatsCacheTTL.Duration)
}
