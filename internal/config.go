/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mikeb26/chessclub-swiss/swiss"
)

// Config holds the runtime settings shared by the CLI and the server.
type Config struct {
	DBDriver       string
	DBDSN          string
	CacheBucket    string
	ArchiveBucket  string
	DiscordWebhook string
	ListenAddr     string
	ByePoints      float64
}

// LoadConfig reads settings from the environment, after loading an optional
// .env file from the working directory.
func LoadConfig() (*Config, error) {
	// a missing .env is normal outside of development
	_ = godotenv.Load()

	cfg := &Config{
		DBDriver:       getenvDefault("SWISS_DB_DRIVER", DefaultDBDriver),
		DBDSN:          getenvDefault("SWISS_DB_DSN", DefaultDBDSN),
		CacheBucket:    os.Getenv("SWISS_CACHE_BUCKET"),
		ArchiveBucket:  os.Getenv("SWISS_ARCHIVE_BUCKET"),
		DiscordWebhook: os.Getenv("SWISS_DISCORD_WEBHOOK"),
		ListenAddr:     getenvDefault("SWISS_LISTEN_ADDR", DefaultListenAddr),
		ByePoints:      DefaultByePoints,
	}

	switch cfg.DBDriver {
	case "sqlite3", "postgres":
	default:
		return nil, fmt.Errorf("SWISS_DB_DRIVER must be sqlite3 or postgres, got %q",
			cfg.DBDriver)
	}

	if s := os.Getenv("SWISS_BYE_POINTS"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SWISS_BYE_POINTS: %w", err)
		}
		if v != 0 && v != 0.5 && v != 1 {
			return nil, fmt.Errorf("SWISS_BYE_POINTS must be 0, 0.5 or 1, got %v",
				v)
		}
		cfg.ByePoints = v
	}

	return cfg, nil
}

func getenvDefault(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// LoadPairingOptions reads pairing options from a YAML file such as
//
//	rematches: forbid
//	colors: best-effort
//
// An empty path yields the default options.
func LoadPairingOptions(path string) (swiss.Options, error) {
	var opts swiss.Options
	if path == "" {
		return opts, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("unable to read pairing options: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("unable to parse pairing options %v: %w", path,
			err)
	}

	return opts, nil
}
