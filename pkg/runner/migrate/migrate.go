package migrate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/safesistemas/cejoana/pkg/record"
	"github.com/safesistemas/cejoana/pkg/store"
	"github.com/safesistemas/cejoana/pkg/store/drivers"
)

// Migrate creates the tables of every schema on backends that need them.
type Migrate struct {
	Backend store.Backend
	Schemas []*record.Schema
	Out     io.Writer
}

func (m *Migrate) Do(ctx context.Context) error {
	if m.Backend == nil {
		return errors.New("can not migrate, no backend")
	}
	out := m.Out
	if out == nil {
		out = os.Stdout
	}
	mig, ok := m.Backend.(drivers.Migrator)
	if !ok {
		_, _ = fmt.Fprintln(out, "backend needs no migration")
		return nil
	}
	if err := mig.Migrate(ctx, m.Schemas...); err != nil {
		return err
	}
	for _, s := range m.Schemas {
		_, _ = fmt.Fprintf(out, "ready: %s\n", s.Name)
	}
	return nil
}
