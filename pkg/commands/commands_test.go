package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/safesistemas/cejoana/pkg/commands/options"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("CEJOANA_CONFIG_PATH", dir)
	t.Chdir(dir)
	*so = options.StoreOptions{}

	var out bytes.Buffer
	cmd := New()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommandTree(t *testing.T) {
	cmd := New()
	want := []string{"ui", "list", "delete", "serve", "migrate", "version", "completion"}
	for _, name := range want {
		found := false
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = true
			}
		}
		if !found {
			t.Fatalf("missing command %q", name)
		}
	}
	for _, flag := range []string{"driver", "dsn", "path", "url", "token"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Fatalf("missing persistent flag --%s", flag)
		}
	}
}

func TestMigrateMemory(t *testing.T) {
	out, err := run(t, "migrate", "--driver", "memory")
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !strings.Contains(out, "no migration") {
		t.Fatalf("output = %q", out)
	}
}

func TestMigrateSQLiteFromFlags(t *testing.T) {
	out, err := run(t, "migrate", "--driver", "sqlite", "--dsn", "cejoana.db")
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !strings.Contains(out, "ready: pessoas") {
		t.Fatalf("output = %q", out)
	}
}

func TestUnknownDriver(t *testing.T) {
	if _, err := run(t, "migrate", "--driver", "oracle"); err == nil || !strings.Contains(err.Error(), "oracle") {
		t.Fatalf("expected unknown driver error, got %v", err)
	}
}

func TestListRejectsUnknownEntity(t *testing.T) {
	_, err := run(t, "list", "planets", "--driver", "memory")
	if err == nil || !strings.Contains(err.Error(), "planets") {
		t.Fatalf("expected unknown entity error, got %v", err)
	}
}

func TestVersionShort(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "dev") {
		t.Fatalf("output = %q", out)
	}
}

func TestEntityCompletions(t *testing.T) {
	got, _ := entityCompletions(nil, nil, "cit")
	if len(got) != 2 || got[0] != "cities" || got[1] != "city" {
		t.Fatalf("got %v", got)
	}
}
