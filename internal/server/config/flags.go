package config

import (
	"flag"
	"os"
	"time"

	"github.com/Berkcanaskin/stellar/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3000")
//	-o string   data directory for the JSON snapshot store
//	-d string   PostgreSQL DSN (empty keeps the JSON store)
//	-z string   Horizon base URL
//	-f string   friendbot base URL
//	-n string   network passphrase
//	-t string   shared admin token
//	-u string   admin username
//	-p string   admin password
//	-s string   session signing key
//	-x int      user session validity, minutes
//	-y int      admin session validity, minutes
//	-w int      stats cache freshness, seconds
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers and converted to time.Duration.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-o", "-d", "-z", "-f", "-n", "-t", "-u", "-p", "-s", "-x", "-y", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DataDir, "o", config.DataDir, "data directory")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.HorizonURL, "z", config.HorizonURL, "horizon base URL")
	fs.StringVar(&config.FriendbotURL, "f", config.FriendbotURL, "friendbot base URL")
	fs.StringVar(&config.NetworkPassphrase, "n", config.NetworkPassphrase, "network passphrase")
	fs.StringVar(&config.AdminToken, "t", config.AdminToken, "admin token")
	fs.StringVar(&config.AdminUser, "u", config.AdminUser, "admin user")
	fs.StringVar(&config.AdminPass, "p", config.AdminPass, "admin password")
	fs.StringVar(&config.SessionSigningKey, "s", config.SessionSigningKey, "session signing key")

	sessionTTL := fs.Int("x", int(config.SessionTTL.Minutes()), "session_ttl (in minutes)")
	adminSessionTTL := fs.Int("y", int(config.AdminSessionTTL.Minutes()), "admin_session_ttl (in minutes)")
	statsCacheTTL := fs.Int("w", int(config.StatsCacheTTL.Seconds()), "stats_cache_ttl (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionTTL = time.Duration(*sessionTTL) * time.Minute
	config.AdminSessionTTL = time.Duration(*adminSessionTTL) * time.Minute
	config.StatsCacheTTL = time.Duration(*statsCacheTTL) * time.Second
}
