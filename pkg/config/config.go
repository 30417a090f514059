// Package config loads console settings from .cejoana.yaml and CEJOANA_*
// environment variables.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Store selects and reaches the backing store.
type Store struct {
	// Driver is one of postgres, sqlite, diskv, rest or memory.
	Driver string
	// DSN is the database/sql connection string for postgres and sqlite.
	DSN string
	// Path is the diskv base directory.
	Path string
	// URL and Token reach a remote cejoana API for the rest driver.
	URL   string
	Token string
}

// Server configures `cejoana serve`.
type Server struct {
	Addr  string
	Token string
}

// Log configures where the standard logger writes while the UI owns stdout.
type Log struct {
	File string
}

// Config is the whole console configuration.
type Config struct {
	Store  Store
	Server Server
	Log    Log
}

// Defaults applied before reading files and environment.
const (
	DefaultDriver = "sqlite"
	DefaultDSN    = "~/.cejoana.db"
	DefaultPath   = "~/.cejoana"
	DefaultAddr   = ":8080"
)

// Load reads configuration with viper. A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("store.driver", DefaultDriver)
	v.SetDefault("store.dsn", DefaultDSN)
	v.SetDefault("store.path", DefaultPath)
	v.SetDefault("store.url", "")
	v.SetDefault("store.token", "")
	v.SetDefault("server.addr", DefaultAddr)
	v.SetDefault("server.token", "")
	v.SetDefault("log.file", "")

	v.SetConfigName(".cejoana") // .yaml is implicit
	v.SetEnvPrefix("CEJOANA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("CEJOANA_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{
		Store: Store{
			Driver: v.GetString("store.driver"),
			DSN:    v.GetString("store.dsn"),
			Path:   v.GetString("store.path"),
			URL:    v.GetString("store.url"),
			Token:  v.GetString("store.token"),
		},
		Server: Server{
			Addr:  v.GetString("server.addr"),
			Token: v.GetString("server.token"),
		},
		Log: Log{
			File: v.GetString("log.file"),
		},
	}
	return cfg, nil
}

// Expand resolves a leading ~ in p.
func Expand(p string) (string, error) {
	if p == "" {
		return p, nil
	}
	return homedir.Expand(p)
}
