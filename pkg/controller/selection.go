package controller

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/safesistemas/cejoana/pkg/record"
)

// Toggle adds id to the selection or removes it. It reports whether the
// selection changed: ids not in the list and calls outside Browsing are
// ignored.
func (c *Controller) Toggle(id record.ID) bool {
	if c.mode != Browsing {
		return false
	}
	if _, ok := c.selection[id]; ok {
		delete(c.selection, id)
		return true
	}
	if record.Index(c.records, id) < 0 {
		return false
	}
	c.selection[id] = struct{}{}
	return true
}

// ToggleCurrent toggles the highlighted row.
func (c *Controller) ToggleCurrent() bool {
	r, ok := c.Current()
	if !ok {
		return false
	}
	return c.Toggle(r.ID)
}

// ClearSelection empties the selection.
func (c *Controller) ClearSelection() {
	if c.mode == Browsing {
		clear(c.selection)
	}
}

// DeleteRequest is a prepared batch delete awaiting confirmation.
type DeleteRequest struct {
	owner uint64
	IDs   []record.ID
	// Prompt names the count to be deleted, e.g. "Delete 2 cities?".
	Prompt string
}

// Count returns the number of rows the request deletes.
func (r DeleteRequest) Count() int { return len(r.IDs) }

// PrepareDelete checks the delete preconditions and returns the request to
// confirm. Nothing is sent to the store.
func (c *Controller) PrepareDelete() (DeleteRequest, error) {
	if c.mode != Browsing {
		return DeleteRequest{}, c.refuse(ErrNotBrowsing)
	}
	if !c.schema.Ops.Delete {
		return DeleteRequest{}, c.refuse(fmt.Errorf("%w: %s cannot be deleted here", ErrUnsupported, c.schema.Plural))
	}
	ids := c.Selection()
	if len(ids) == 0 {
		return DeleteRequest{}, c.refuse(ErrSelectAtLeastOne)
	}
	return DeleteRequest{
		owner:  c.id,
		IDs:    ids,
		Prompt: fmt.Sprintf("Delete %d %s?", len(ids), c.schema.Noun(len(ids))),
	}, nil
}

// Delete issues the confirmed request as one batch delete.
func (c *Controller) Delete(req DeleteRequest) (tea.Cmd, error) {
	if req.owner != c.id {
		return nil, c.refuse(ErrStaleRequest)
	}
	if c.mode != Browsing {
		return nil, c.refuse(ErrNotBrowsing)
	}
	if len(req.IDs) == 0 {
		return nil, c.refuse(ErrSelectAtLeastOne)
	}
	c.pending++
	owner, ctx, a := c.id, c.ctx, c.adapter
	ids := append([]record.ID(nil), req.IDs...)
	return func() tea.Msg {
		return DeletedMsg{owner: owner, IDs: ids, Err: a.DeleteMany(ctx, ids)}
	}, nil
}

func (c *Controller) deleted(msg DeletedMsg) tea.Cmd {
	c.pending--
	n := len(msg.IDs)
	if msg.Err != nil {
		c.notify(LevelError, fmt.Sprintf("could not delete %d %s", n, c.schema.Noun(n)), fmt.Errorf("%w: %w", ErrMutation, msg.Err))
		return nil
	}
	clear(c.selection)
	c.notify(LevelSuccess, fmt.Sprintf("%d %s deleted", n, c.schema.Noun(n)), nil)
	return c.Fetch()
}
