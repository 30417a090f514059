package options

import (
	"testing"

	"github.com/spf13/pflag"

	"github.com/safesistemas/cejoana/pkg/config"
)

func TestStoreOptionsOverrideOnlySetFlags(t *testing.T) {
	o := &StoreOptions{}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddStoreArgs(fs, o)
	if err := fs.Parse([]string{"--driver", "rest", "--url", "http://localhost:8080"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg := config.Store{Driver: "sqlite", DSN: "~/.cejoana.db", Token: "keep"}
	o.Apply(&cfg)
	want := config.Store{Driver: "rest", DSN: "~/.cejoana.db", URL: "http://localhost:8080", Token: "keep"}
	if cfg != want {
		t.Fatalf("got %+v, want %+v", cfg, want)
	}
}
