package controller

import "github.com/safesistemas/cejoana/pkg/record"

// Messages carry store results back into Update. Each names the controller
// that issued it so a screen never applies another screen's result.

// FetchedMsg resolves a Fetch.
type FetchedMsg struct {
	owner   uint64
	Seq     uint64
	Records []record.Record
	Err     error
}

// LookupFetchedMsg resolves the fetch of one referenced entity.
type LookupFetchedMsg struct {
	owner   uint64
	Entity  string
	Seq     uint64
	Records []record.Record
	Err     error
}

// SubmittedMsg resolves a Submit.
type SubmittedMsg struct {
	owner  uint64
	gen    uint64
	Mode   Mode
	Target record.ID
	Err    error
}

// DeletedMsg resolves a Delete.
type DeletedMsg struct {
	owner uint64
	IDs   []record.ID
	Err   error
}
