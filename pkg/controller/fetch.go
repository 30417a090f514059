package controller

import (
	"fmt"
	"log"
	"sort"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/safesistemas/cejoana/pkg/record"
)

// Fetch issues a list call. Each fetch gets the next sequence number; a
// result is applied only if no fetch with a higher number has resolved
// before it, so a slow older fetch never overwrites a newer one.
func (c *Controller) Fetch() tea.Cmd {
	c.started = true
	c.issued++
	seq, owner, ctx, a := c.issued, c.id, c.ctx, c.adapter
	return func() tea.Msg {
		records, err := a.List(ctx)
		return FetchedMsg{owner: owner, Seq: seq, Records: records, Err: err}
	}
}

// FetchLookups issues a list call for every registered lookup.
func (c *Controller) FetchLookups() tea.Cmd {
	names := make([]string, 0, len(c.lookups))
	for name := range c.lookups {
		names = append(names, name)
	}
	sort.Strings(names)

	cmds := make([]tea.Cmd, 0, len(names))
	for _, name := range names {
		l := c.lookups[name]
		l.issued++
		seq, owner, ctx, a := l.issued, c.id, c.ctx, l.adapter
		cmds = append(cmds, func() tea.Msg {
			records, err := a.List(ctx)
			return LookupFetchedMsg{owner: owner, Entity: name, Seq: seq, Records: records, Err: err}
		})
	}
	return tea.Batch(cmds...)
}

// Refresh fetches the rows and the lookups.
func (c *Controller) Refresh() tea.Cmd {
	return tea.Batch(c.Fetch(), c.FetchLookups())
}

func (c *Controller) fetched(msg FetchedMsg) {
	if msg.Seq <= c.resolved {
		log.Printf("%s: discarding fetch %d, %d already resolved", c.schema.Name, msg.Seq, c.resolved)
		return
	}
	c.resolved = msg.Seq
	if msg.Err != nil {
		err := fmt.Errorf("%w: %w", ErrFetch, msg.Err)
		c.notify(LevelError, fmt.Sprintf("could not load %s", c.schema.Plural), err)
		return
	}

	records := record.CloneAll(msg.Records)
	if records == nil {
		records = []record.Record{}
	}
	record.Sort(c.schema, records)
	c.records = records
	c.populated = true

	for id := range c.selection {
		if record.Index(c.records, id) < 0 {
			delete(c.selection, id)
		}
	}
	c.recompute(false)
}

func (c *Controller) lookupFetched(msg LookupFetchedMsg) {
	l, ok := c.lookups[msg.Entity]
	if !ok || msg.Seq <= l.resolved {
		return
	}
	l.resolved = msg.Seq
	if msg.Err != nil {
		err := fmt.Errorf("%w: %w", ErrFetch, msg.Err)
		c.notify(LevelWarning, fmt.Sprintf("could not load %s", l.schema.Plural), err)
		return
	}
	l.records = record.CloneAll(msg.Records)
	// labels feed the filter when the searched column is a reference
	if f, ok := c.schema.Field(c.schema.SearchField); ok && f.Kind == record.KindRef && f.Ref == msg.Entity {
		c.recompute(false)
	}
}

// LookupLoading reports whether any lookup fetch is unresolved.
func (c *Controller) LookupLoading() bool {
	for _, l := range c.lookups {
		if l.resolved < l.issued {
			return true
		}
	}
	return false
}
