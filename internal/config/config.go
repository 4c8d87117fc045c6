// Package config handles the parsing and validation of application configuration
// from command-line arguments and environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/mcraftr/craftd/internal/logger"
	"github.com/mcraftr/craftd/internal/vars"
)

// Config represents the complete application flags configuration.
type Config struct {
	Server    Server        `group:"Server Options" env-namespace:"CRAFTD"`
	Rcon      Rcon          `group:"RCON Options" namespace:"rcon" env-namespace:"CRAFTD_RCON"`
	Storage   Storage       `group:"Storage Options" namespace:"db" env-namespace:"CRAFTD_DB"`
	RateLimit RateLimit     `group:"Rate Limit Options" namespace:"rate-limit" env-namespace:"CRAFTD_RATE_LIMIT"`
	Logger    logger.Config `group:"Logger Options" namespace:"log" env-namespace:"CRAFTD_LOG"`

	Version bool `short:"v" long:"version" description:"Print version and build info"`
}

// Server holds web server configuration.
type Server struct {
	Address     string `short:"l" long:"address" env:"LISTEN_ADDRESS" description:"Server listen address" default:":8080"`
	AuthToken   string `short:"t" long:"auth-token" env:"AUTH_TOKEN" description:"Admin authentication token"`
	MaxBodySize int64  `long:"max-body-size" env:"MAX_BODY_SIZE" description:"Max body size for incoming requests in KiB" default:"64"`
	TrustProxy  bool   `long:"trust-proxy" env:"TRUST_PROXY" description:"Trust X-Forwarded-For headers"`
}

// Rcon holds the default game server target. Host may be left empty when
// every request supplies its own target.
type Rcon struct {
	Host           string        `short:"H" long:"host" env:"HOST" description:"Default game server host"`
	Password       string        `short:"p" long:"password" env:"PASSWORD" description:"Default RCON password"`
	Port           uint16        `short:"P" long:"port" env:"PORT" description:"Default RCON port" default:"25575"`
	ConnectTimeout time.Duration `long:"connect-timeout" env:"CONNECT_TIMEOUT" description:"TCP connect timeout" default:"6s"`
	CommandTimeout time.Duration `long:"command-timeout" env:"COMMAND_TIMEOUT" description:"Per-command I/O timeout" default:"10s"`
}

// Storage holds database configuration.
type Storage struct {
	Path string `short:"d" long:"path" env:"PATH" description:"Path to SQLite database" default:"craftd.db"`
}

// RateLimit holds API and gateway rate limiting configuration.
type RateLimit struct {
	HardLimitCount int           `long:"hard-count" env:"HARD_COUNT" description:"Hard IP limit: requests count" default:"60"`
	HardLimitWin   time.Duration `long:"hard-window" env:"HARD_WINDOW" description:"Hard IP limit: window duration" default:"1m"`
	RconCount      int           `long:"rcon-count" env:"RCON_COUNT" description:"Commands per caller per window" default:"30"`
	RconWin        time.Duration `long:"rcon-window" env:"RCON_WINDOW" description:"Command budget window" default:"1m"`
	InventoryCount int           `long:"inventory-count" env:"INVENTORY_COUNT" description:"Inventory reads per caller per window" default:"6"`
	InventoryWin   time.Duration `long:"inventory-window" env:"INVENTORY_WINDOW" description:"Inventory budget window" default:"1m"`
	BroadcastCount int           `long:"broadcast-count" env:"BROADCAST_COUNT" description:"Broadcasts per caller per window" default:"5"`
	BroadcastWin   time.Duration `long:"broadcast-window" env:"BROADCAST_WINDOW" description:"Broadcast budget window" default:"1m"`
}

// Parse reads the configuration from flags and environment variables.
// It terminates the application if the configuration is invalid or if the help flag is invoked.
func Parse() *Config {
	var cfg Config
	parser := flags.NewParser(&cfg, flags.Default)
	parser.NamespaceDelimiter = "-"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}

	if cfg.Version {
		vars.Print()
		os.Exit(0)
	}

	if cfg.Server.AuthToken == "" {
		fmt.Fprintln(os.Stderr,
			"Required flag `-t, --auth-token' or environment variable `CRAFTD_AUTH_TOKEN` was not specified!")
		os.Exit(1)
	}

	return &cfg
}
