// Package drivers opens the store backend named by configuration.
package drivers

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/safesistemas/cejoana/pkg/config"
	"github.com/safesistemas/cejoana/pkg/record"
	"github.com/safesistemas/cejoana/pkg/store"
	"github.com/safesistemas/cejoana/pkg/store/diskstore"
	"github.com/safesistemas/cejoana/pkg/store/memory"
	"github.com/safesistemas/cejoana/pkg/store/rest"
	"github.com/safesistemas/cejoana/pkg/store/sqlstore"
)

// Driver names accepted in store.driver.
const (
	Postgres = "postgres"
	SQLite   = "sqlite"
	Diskv    = "diskv"
	REST     = "rest"
	Memory   = "memory"
)

// Names lists the supported drivers.
func Names() []string {
	names := []string{Postgres, SQLite, Diskv, REST, Memory}
	sort.Strings(names)
	return names
}

// Open connects to the configured backend.
func Open(ctx context.Context, cfg config.Store) (store.Backend, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case Postgres, SQLite:
		d, _ := sqlstore.DialectFor(cfg.Driver)
		dsn := cfg.DSN
		if d.Name == sqlstore.SQLite.Name {
			var err error
			if dsn, err = config.Expand(dsn); err != nil {
				return nil, err
			}
		}
		return sqlstore.Open(ctx, d, dsn)
	case Diskv:
		path, err := config.Expand(cfg.Path)
		if err != nil {
			return nil, err
		}
		return diskstore.Open(path)
	case REST:
		return rest.New(cfg.URL, cfg.Token)
	case Memory:
		return memory.New(), nil
	}
	return nil, fmt.Errorf("%w: %q (want one of %s)", store.ErrUnknownDriver, cfg.Driver, strings.Join(Names(), ", "))
}

// Migrator is implemented by backends that must create their tables first.
type Migrator interface {
	Migrate(ctx context.Context, schemas ...*record.Schema) error
}
