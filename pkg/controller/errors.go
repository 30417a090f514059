package controller

import (
	"errors"
	"fmt"
)

// The three failure classes reported by a Controller. Every error it returns
// or notifies wraps exactly one of them.
var (
	// ErrFetch wraps a failed list call. The previous rows stay displayed.
	ErrFetch = errors.New("controller: fetch failed")
	// ErrPrecondition is refused locally; the store is never called.
	ErrPrecondition = errors.New("controller: precondition violated")
	// ErrMutation wraps a rejected insert, update or delete. The draft and
	// selection are kept so the action can be retried.
	ErrMutation = errors.New("controller: mutation failed")
)

// Precondition violations.
var (
	ErrSelectExactlyOne = fmt.Errorf("%w: select exactly one row", ErrPrecondition)
	ErrSelectAtLeastOne = fmt.Errorf("%w: select at least one row", ErrPrecondition)
	ErrRequiredField    = fmt.Errorf("%w: required field is empty", ErrPrecondition)
	ErrFormOpen         = fmt.Errorf("%w: a form is already open", ErrPrecondition)
	ErrNoForm           = fmt.Errorf("%w: no form is open", ErrPrecondition)
	ErrNotBrowsing      = fmt.Errorf("%w: only available while browsing", ErrPrecondition)
	ErrUnknownField     = fmt.Errorf("%w: unknown field", ErrPrecondition)
	ErrInvalidValue     = fmt.Errorf("%w: invalid value", ErrPrecondition)
	ErrNotFound         = fmt.Errorf("%w: row not in list", ErrPrecondition)
	ErrUnsupported      = fmt.Errorf("%w: operation not offered", ErrPrecondition)
	ErrSaving           = fmt.Errorf("%w: already saving", ErrPrecondition)
	ErrStaleRequest     = fmt.Errorf("%w: request belongs to another screen", ErrPrecondition)
)
