// Package controller implements the list-form controller shared by every
// entity screen: a cached list of store rows, a multi-row selection, a single
// edit draft and a search filter, kept consistent while store calls resolve
// asynchronously.
//
// Store calls run as Bubble Tea commands. Their results come back as messages
// that must be passed to Update from the same event loop that calls every
// other method, so state is only ever touched from one goroutine.
package controller

import (
	"context"
	"sort"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/safesistemas/cejoana/pkg/record"
	"github.com/safesistemas/cejoana/pkg/search"
	"github.com/safesistemas/cejoana/pkg/store"
)

// Mode is the state of the form.
type Mode int

const (
	Browsing Mode = iota
	Creating
	Editing
)

func (m Mode) String() string {
	switch m {
	case Creating:
		return "Creating"
	case Editing:
		return "Editing"
	}
	return "Browsing"
}

var owners atomic.Uint64

type lookup struct {
	schema   *record.Schema
	adapter  store.Adapter
	records  []record.Record
	issued   uint64
	resolved uint64
}

// Controller is the state machine behind one entity screen. It is not safe
// for concurrent use.
type Controller struct {
	id       uint64
	ctx      context.Context
	schema   *record.Schema
	adapter  store.Adapter
	notifier Notifier
	lookups  map[string]*lookup

	mode      Mode
	records   []record.Record
	visible   []record.Record
	populated bool
	selection map[record.ID]struct{}
	draft     *Buffer
	formGen   uint64
	saving    uint64
	filter    string
	matcher   search.Matcher
	cursor    int
	pending   int

	started  bool
	issued   uint64
	resolved uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier routes notices to n.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithLookup registers the adapter of an entity referenced by one of the
// schema's foreign-key fields. Its rows label the references and populate
// the form's choices.
func WithLookup(s *record.Schema, a store.Adapter) Option {
	return func(c *Controller) {
		c.lookups[s.Name] = &lookup{schema: s, adapter: a}
	}
}

// WithContext sets the context passed to store calls.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) { c.ctx = ctx }
}

// New returns a controller in Browsing mode with nothing loaded. Call Init
// to issue the first fetch.
func New(s *record.Schema, a store.Adapter, opts ...Option) *Controller {
	c := &Controller{
		id:        owners.Add(1),
		ctx:       context.Background(),
		schema:    s,
		adapter:   a,
		notifier:  discard{},
		lookups:   make(map[string]*lookup),
		selection: make(map[record.ID]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init fetches the rows and every registered lookup.
func (c *Controller) Init() tea.Cmd {
	return c.Refresh()
}

// Schema returns the entity schema.
func (c *Controller) Schema() *record.Schema { return c.schema }

// Mode returns the current mode.
func (c *Controller) Mode() Mode { return c.mode }

// Loading reports whether the most recently issued fetch is unresolved. It
// is true from construction until the first fetch resolves.
func (c *Controller) Loading() bool {
	return !c.started || c.resolved < c.issued
}

// Populated reports whether a fetch has ever succeeded.
func (c *Controller) Populated() bool { return c.populated }

// Pending returns the number of unresolved inserts, updates and deletes.
func (c *Controller) Pending() int { return c.pending }

// Records returns the cached rows in schema order. The slice must not be
// modified.
func (c *Controller) Records() []record.Record { return c.records }

// Visible returns the rows matching the filter. The slice must not be
// modified.
func (c *Controller) Visible() []record.Record { return c.visible }

// Filter returns the filter text.
func (c *Controller) Filter() string { return c.filter }

// Selected reports whether id is selected.
func (c *Controller) Selected(id record.ID) bool {
	_, ok := c.selection[id]
	return ok
}

// SelectionCount returns the number of selected rows.
func (c *Controller) SelectionCount() int { return len(c.selection) }

// Selection returns the selected ids in list order.
func (c *Controller) Selection() []record.ID {
	ids := make([]record.ID, 0, len(c.selection))
	for _, r := range c.records {
		if _, ok := c.selection[r.ID]; ok {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// Update applies a store result. Messages issued by other controllers and
// unrelated messages are ignored. The returned command, if any, is the
// follow-up fetch.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case FetchedMsg:
		if msg.owner == c.id {
			c.fetched(msg)
		}
	case LookupFetchedMsg:
		if msg.owner == c.id {
			c.lookupFetched(msg)
		}
	case SubmittedMsg:
		if msg.owner == c.id {
			return c.submitted(msg)
		}
	case DeletedMsg:
		if msg.owner == c.id {
			return c.deleted(msg)
		}
	}
	return nil
}

// Find returns the cached row with the given id.
func (c *Controller) Find(id record.ID) (record.Record, bool) {
	if i := record.Index(c.records, id); i >= 0 {
		return c.records[i], true
	}
	return record.Record{}, false
}

// Cell renders a field of r for the list. References show the label of the
// referenced row, or nothing when it is unknown.
func (c *Controller) Cell(r record.Record, name string) string {
	f, ok := c.schema.Field(name)
	if !ok {
		return ""
	}
	v := r.Get(name)
	if f.Kind == record.KindRef {
		id, _ := v.(record.ID)
		return c.Label(f, id)
	}
	return record.Display(f, v)
}

// Label resolves a reference to the referenced row's label field.
func (c *Controller) Label(f record.Field, id record.ID) string {
	if id.Empty() {
		return ""
	}
	l, ok := c.lookups[f.Ref]
	if !ok {
		return ""
	}
	i := record.Index(l.records, id)
	if i < 0 {
		return ""
	}
	label := l.schema.LabelField
	lf, ok := l.schema.Field(label)
	if !ok {
		return string(id)
	}
	return record.Display(lf, l.records[i].Get(label))
}

// Choice is one selectable value of a reference field.
type Choice struct {
	ID    record.ID
	Label string
}

// Choices lists the rows a reference field can point to, ordered by label.
func (c *Controller) Choices(name string) []Choice {
	f, ok := c.schema.Field(name)
	if !ok || f.Kind != record.KindRef {
		return nil
	}
	l, ok := c.lookups[f.Ref]
	if !ok {
		return nil
	}
	out := make([]Choice, 0, len(l.records))
	for _, r := range l.records {
		out = append(out, Choice{ID: r.ID, Label: c.Label(f, r.ID)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return search.Normalize(out[i].Label) < search.Normalize(out[j].Label)
	})
	return out
}
