package options

import (
	"github.com/spf13/pflag"

	"github.com/safesistemas/cejoana/pkg/config"
)

// StoreOptions override the store section of the configuration file.
type StoreOptions struct {
	Driver string
	DSN    string
	Path   string
	URL    string
	Token  string
}

func AddStoreArgs(flags *pflag.FlagSet, o *StoreOptions) {
	flags.StringVar(&o.Driver, "driver", "",
		"Store driver: postgres, sqlite, diskv, rest or memory.")
	flags.StringVar(&o.DSN, "dsn", "",
		"Connection string for the postgres and sqlite drivers.")
	flags.StringVar(&o.Path, "path", "",
		"Directory for the diskv driver.")
	flags.StringVar(&o.URL, "url", "",
		"Server URL for the rest driver.")
	flags.StringVar(&o.Token, "token", "",
		"Bearer token for the rest driver.")
}

// Apply copies every set option over cfg.
func (o *StoreOptions) Apply(cfg *config.Store) {
	if o.Driver != "" {
		cfg.Driver = o.Driver
	}
	if o.DSN != "" {
		cfg.DSN = o.DSN
	}
	if o.Path != "" {
		cfg.Path = o.Path
	}
	if o.URL != "" {
		cfg.URL = o.URL
	}
	if o.Token != "" {
		cfg.Token = o.Token
	}
}
