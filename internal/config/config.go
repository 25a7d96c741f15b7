// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the cache controller's listening address (ip:port).
	Addr string

	// Upstream is the origin the live asset fetches go to.
	Upstream string

	// Hostname decides the application base path: empty for localhost,
	// the production subpath otherwise.
	Hostname string

	// DataDir is the directory holding persisted state for the file driver.
	DataDir string

	// Driver selects the persistence medium: "file", "sqlite", or "mem".
	Driver string

	// LogLevel sets the zap log level.
	LogLevel string

	// Config is the path to the config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port")
	flag.StringVar(&options.Upstream, "u", "http://localhost:5173", "upstream asset origin")
	flag.StringVar(&options.Hostname, "host", "localhost", "hostname for base path detection")
	flag.StringVar(&options.DataDir, "d", "data", "data directory")
	flag.StringVar(&options.Driver, "driver", "file", "persistence driver: file | sqlite | mem")
	flag.StringVar(&options.LogLevel, "l", "Info", "log level")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if addr := os.Getenv("SERVER_ADDRESS"); addr != "" {
		options.Addr = addr
	}
	if upstream := os.Getenv("UPSTREAM"); upstream != "" {
		options.Upstream = upstream
	}
	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		options.DataDir = dataDir
	}
	if driver := os.Getenv("DRIVER"); driver != "" {
		options.Driver = driver
	}

	return options
}
