package migrate

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/safesistemas/cejoana/pkg/entities"
	"github.com/safesistemas/cejoana/pkg/record"
	"github.com/safesistemas/cejoana/pkg/store/memory"
	"github.com/safesistemas/cejoana/pkg/store/sqlstore"
)

func TestMigrateSQLite(t *testing.T) {
	ctx := context.Background()
	b, err := sqlstore.Open(ctx, sqlstore.SQLite, filepath.Join(t.TempDir(), "db", "cejoana.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer b.Close()

	var buf bytes.Buffer
	m := &Migrate{Backend: b, Schemas: entities.All(), Out: &buf}
	if err := m.Do(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if got := strings.Count(buf.String(), "ready: "); got != len(entities.All()) {
		t.Fatalf("expected a line per table, got:\n%s", buf.String())
	}

	a := b.Adapter(entities.Cities)
	if err := a.Insert(ctx, record.Fields{"nome": "Natal", "uf": "RN"}); err != nil {
		t.Fatalf("insert after migrate: %v", err)
	}
	// Running again is harmless.
	if err := m.Do(ctx); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestMigrateNotNeeded(t *testing.T) {
	var buf bytes.Buffer
	m := &Migrate{Backend: memory.New(), Schemas: entities.All(), Out: &buf}
	if err := m.Do(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !strings.Contains(buf.String(), "no migration") {
		t.Fatalf("output = %q", buf.String())
	}
}
