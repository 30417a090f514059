package controller

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/safesistemas/cejoana/pkg/record"
)

// Buffer is the draft behind the form.
type Buffer struct {
	// Target is the row being edited; empty while creating.
	Target record.ID
	Fields record.Fields
}

// Creating reports whether the draft is a new row.
func (b Buffer) Creating() bool { return b.Target.Empty() }

// Draft returns a copy of the open draft, or the zero Buffer in Browsing.
func (c *Controller) Draft() Buffer {
	if c.draft == nil {
		return Buffer{}
	}
	return Buffer{Target: c.draft.Target, Fields: c.draft.Fields.Clone()}
}

// Saving reports whether the open form has a submit in flight.
func (c *Controller) Saving() bool {
	return c.draft != nil && c.saving == c.formGen
}

// BeginCreate opens an empty form.
func (c *Controller) BeginCreate() error {
	if c.mode != Browsing {
		return c.refuse(ErrFormOpen)
	}
	if !c.schema.Ops.Create {
		return c.refuse(fmt.Errorf("%w: %s cannot be created here", ErrUnsupported, c.schema.Plural))
	}
	c.open(Creating, &Buffer{Fields: c.schema.Defaults()})
	return nil
}

// BeginEdit opens the form on the single selected row.
func (c *Controller) BeginEdit() error {
	if c.mode != Browsing {
		return c.refuse(ErrFormOpen)
	}
	if !c.schema.Ops.Edit {
		return c.refuse(fmt.Errorf("%w: %s cannot be edited here", ErrUnsupported, c.schema.Plural))
	}
	if len(c.selection) != 1 {
		return c.refuse(fmt.Errorf("%w (%d selected)", ErrSelectExactlyOne, len(c.selection)))
	}
	ids := c.Selection()
	if len(ids) != 1 {
		return c.refuse(ErrNotFound)
	}
	r, _ := c.Find(ids[0])
	c.open(Editing, &Buffer{Target: r.ID, Fields: c.schema.Project(r.Fields)})
	return nil
}

// BeginEditID opens the form on row id directly. The selection becomes {id},
// leaving the controller exactly as if id had been selected alone and
// BeginEdit called.
func (c *Controller) BeginEditID(id record.ID) error {
	if c.mode != Browsing {
		return c.refuse(ErrFormOpen)
	}
	if _, ok := c.Find(id); !ok {
		return c.refuse(fmt.Errorf("%w: %s", ErrNotFound, id))
	}
	if !c.schema.Ops.Edit {
		return c.refuse(fmt.Errorf("%w: %s cannot be edited here", ErrUnsupported, c.schema.Plural))
	}
	c.selection = map[record.ID]struct{}{id: {}}
	return c.BeginEdit()
}

func (c *Controller) open(mode Mode, draft *Buffer) {
	c.formGen++
	c.mode = mode
	c.draft = draft
}

func (c *Controller) close() {
	c.mode = Browsing
	c.draft = nil
}

// SetField parses raw as the named field's kind and stores it in the draft.
// Numbers become nil when blank; upper-case fields are folded on every edit.
func (c *Controller) SetField(name, raw string) error {
	f, err := c.formField(name)
	if err != nil {
		return c.refuse(err)
	}
	v, err := record.Parse(f, raw)
	if err != nil {
		return c.refuse(fmt.Errorf("%w: %w", ErrInvalidValue, err))
	}
	c.draft.Fields[name] = v
	return nil
}

// SetRef points a reference field at id; an empty id clears it.
func (c *Controller) SetRef(name string, id record.ID) error {
	f, err := c.formField(name)
	if err != nil {
		return c.refuse(err)
	}
	if f.Kind != record.KindRef {
		return c.refuse(fmt.Errorf("%w: %s is not a reference", ErrInvalidValue, f.Title()))
	}
	if id.Empty() {
		c.draft.Fields[name] = nil
		return nil
	}
	c.draft.Fields[name] = id
	return nil
}

func (c *Controller) formField(name string) (record.Field, error) {
	if c.draft == nil {
		return record.Field{}, ErrNoForm
	}
	f, ok := c.schema.Field(name)
	if !ok {
		return record.Field{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return f, nil
}

// Submit checks required fields and issues the insert or update. The form
// stays open until the store acknowledges.
func (c *Controller) Submit() (tea.Cmd, error) {
	if c.draft == nil {
		return nil, c.refuse(ErrNoForm)
	}
	if c.saving == c.formGen {
		return nil, c.refuse(ErrSaving)
	}
	if missing := c.schema.Missing(c.draft.Fields); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = f.Title()
		}
		return nil, c.refuse(fmt.Errorf("%w: %s", ErrRequiredField, strings.Join(names, ", ")))
	}

	c.saving = c.formGen
	c.pending++
	owner, gen, mode, ctx, a := c.id, c.formGen, c.mode, c.ctx, c.adapter
	target := c.draft.Target
	fields := c.draft.Fields.Clone()
	return func() tea.Msg {
		var err error
		if mode == Creating {
			err = a.Insert(ctx, fields)
		} else {
			err = a.Update(ctx, target, fields)
		}
		return SubmittedMsg{owner: owner, gen: gen, Mode: mode, Target: target, Err: err}
	}, nil
}

func (c *Controller) submitted(msg SubmittedMsg) tea.Cmd {
	c.pending--
	if c.saving == msg.gen {
		c.saving = 0
	}
	noun := c.schema.Singular
	if msg.Err != nil {
		verb := "save"
		if msg.Mode == Editing {
			verb = "update"
		}
		c.notify(LevelError, fmt.Sprintf("could not %s %s", verb, noun), fmt.Errorf("%w: %w", ErrMutation, msg.Err))
		return nil
	}
	if c.draft != nil && c.formGen == msg.gen {
		c.close()
	}
	clear(c.selection)
	text := capitalize(noun) + " created"
	if msg.Mode == Editing {
		text = capitalize(noun) + " updated"
	}
	c.notify(LevelSuccess, text, nil)
	return c.Fetch()
}

// Cancel discards the draft and returns to Browsing.
func (c *Controller) Cancel() error {
	if c.draft == nil {
		return c.refuse(ErrNoForm)
	}
	left := c.mode
	c.close()
	if left == Creating {
		c.notify(LevelInfo, "create cancelled", nil)
	} else {
		c.notify(LevelInfo, "edit cancelled", nil)
	}
	return nil
}

// refuse reports a precondition violation and returns it.
func (c *Controller) refuse(err error) error {
	if !errors.Is(err, ErrPrecondition) {
		err = fmt.Errorf("%w: %w", ErrPrecondition, err)
	}
	c.notify(LevelWarning, strings.TrimPrefix(err.Error(), ErrPrecondition.Error()+": "), err)
	return err
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
