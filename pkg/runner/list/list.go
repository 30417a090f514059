package list

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/safesistemas/cejoana/pkg/api"
	"github.com/safesistemas/cejoana/pkg/controller"
	"github.com/safesistemas/cejoana/pkg/entities"
	"github.com/safesistemas/cejoana/pkg/printers"
	"github.com/safesistemas/cejoana/pkg/record"
	"github.com/safesistemas/cejoana/pkg/store"
)

// List prints the rows of one entity matching a filter.
type List struct {
	Backend store.Backend
	Schema  *record.Schema
	Filter  string
	JSON    bool
	Out     io.Writer
}

// Load builds a controller over s, waits for its rows and lookups, and
// returns it with the notices it raised.
func Load(ctx context.Context, b store.Backend, s *record.Schema) (*controller.Controller, *controller.Notices, error) {
	notices := &controller.Notices{}
	opts := []controller.Option{
		controller.WithContext(ctx),
		controller.WithNotifier(notices),
	}
	for _, ref := range entities.Referenced(s) {
		opts = append(opts, controller.WithLookup(ref, b.Adapter(ref)))
	}
	c := controller.New(s, b.Adapter(s), opts...)
	c.Await(c.Init())
	if !c.Populated() {
		for _, n := range notices.List {
			if n.Level == controller.LevelError {
				return nil, notices, n.Err
			}
		}
		return nil, notices, fmt.Errorf("%w: %s", controller.ErrFetch, s.Plural)
	}
	return c, notices, nil
}

func (l *List) Do(ctx context.Context) error {
	if l.Backend == nil || l.Schema == nil {
		return errors.New("can not list, no backend or entity")
	}
	out := l.Out
	if out == nil {
		out = os.Stdout
	}

	c, _, err := Load(ctx, l.Backend, l.Schema)
	if err != nil {
		return err
	}
	c.SetFilter(l.Filter)
	rows := c.Visible()

	if l.JSON {
		return printers.JSON(out, api.FromRecords(rows))
	}

	var fields []record.Field
	headers := []string{"ID"}
	for _, f := range l.Schema.Fields {
		if f.Multiline {
			continue
		}
		fields = append(fields, f)
		headers = append(headers, f.Title())
	}
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := []string{string(r.ID)}
		for _, f := range fields {
			row = append(row, c.Cell(r, f.Name))
		}
		cells = append(cells, row)
	}

	pp := printers.New(out)
	pp.TitleWithCount(l.Schema.Title, len(rows), l.Schema.Singular, l.Schema.Plural)
	pp.Table(headers, cells)
	return nil
}
