package remove

import (
	"context"
	"errors"
	"fmt"

	"github.com/safesistemas/cejoana/pkg/controller"
	"github.com/safesistemas/cejoana/pkg/record"
	"github.com/safesistemas/cejoana/pkg/runner/list"
	"github.com/safesistemas/cejoana/pkg/store"
)

// ErrDeclined is returned when the confirmation is answered no.
var ErrDeclined = errors.New("delete declined")

// Remove deletes rows of one entity by id after confirmation.
type Remove struct {
	Backend store.Backend
	Schema  *record.Schema
	IDs     []string
	// Confirm is asked the delete prompt; nil confirms.
	Confirm func(prompt string) (bool, error)

	// Result is the notice of a successful delete, e.g. "2 cities deleted".
	Result string
}

func (r *Remove) Do(ctx context.Context) error {
	if r.Backend == nil || r.Schema == nil {
		return errors.New("can not delete, no backend or entity")
	}
	c, notices, err := list.Load(ctx, r.Backend, r.Schema)
	if err != nil {
		return err
	}
	for _, id := range r.IDs {
		if c.Selected(record.ID(id)) {
			continue
		}
		if !c.Toggle(record.ID(id)) {
			return fmt.Errorf("no %s with id %q", r.Schema.Singular, id)
		}
	}

	req, err := c.PrepareDelete()
	if err != nil {
		return err
	}
	if r.Confirm != nil {
		ok, err := r.Confirm(req.Prompt)
		if err != nil {
			return err
		}
		if !ok {
			return ErrDeclined
		}
	}

	cmd, err := c.Delete(req)
	if err != nil {
		return err
	}
	follow := c.Update(cmd())
	n, _ := notices.Last()
	if n.Level == controller.LevelError {
		return n.Err
	}
	r.Result = n.Text

	// The rows are gone whatever the refetch reports.
	c.Await(follow)
	return nil
}
