package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
)

func init() {
	homedir.DisableCache = true
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CEJOANA_CONFIG_PATH", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Driver != DefaultDriver {
		t.Fatalf("driver = %q", cfg.Store.Driver)
	}
	if cfg.Store.DSN != DefaultDSN {
		t.Fatalf("dsn = %q", cfg.Store.DSN)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CEJOANA_CONFIG_PATH", dir)
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	data := []byte("store:\n  driver: postgres\n  dsn: postgres://db/cejoana\nserver:\n  addr: \":9090\"\n")
	if err := os.WriteFile(filepath.Join(dir, ".cejoana.yaml"), data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CEJOANA_STORE_TOKEN", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Driver != "postgres" || cfg.Store.DSN != "postgres://db/cejoana" {
		t.Fatalf("unexpected store config %+v", cfg.Store)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Store.Token != "secret" {
		t.Fatalf("token from env = %q", cfg.Store.Token)
	}
}

func TestExpand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := Expand("~/.cejoana.db")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got != filepath.Join(home, ".cejoana.db") {
		t.Fatalf("Expand = %q", got)
	}
}
