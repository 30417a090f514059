package controller

import (
	"strings"

	"github.com/safesistemas/cejoana/pkg/record"
	"github.com/safesistemas/cejoana/pkg/search"
)

// SetFilter replaces the filter text and recomputes the visible rows. The
// cursor returns to the top; rows, selection and draft are untouched.
func (c *Controller) SetFilter(text string) {
	c.filter = text
	c.matcher = search.NewMatcher(strings.TrimSpace(text))
	c.recompute(true)
}

// searchText is the text the filter is matched against.
func (c *Controller) searchText(r record.Record) string {
	if c.schema.SearchField == "" {
		return ""
	}
	return c.Cell(r, c.schema.SearchField)
}

func (c *Controller) recompute(resetCursor bool) {
	if c.matcher.Empty() {
		c.visible = c.records
	} else {
		visible := make([]record.Record, 0, len(c.records))
		for _, r := range c.records {
			if c.matcher.Match(c.searchText(r)) {
				visible = append(visible, r)
			}
		}
		c.visible = visible
	}
	if resetCursor {
		c.cursor = 0
	}
	c.clampCursor()
}

// Cursor returns the highlighted position in Visible.
func (c *Controller) Cursor() int { return c.cursor }

// MoveCursor moves the highlight by delta rows, stopping at either end.
func (c *Controller) MoveCursor(delta int) {
	c.cursor += delta
	c.clampCursor()
}

// SetCursor moves the highlight to position i of Visible.
func (c *Controller) SetCursor(i int) {
	c.cursor = i
	c.clampCursor()
}

// Current returns the highlighted row.
func (c *Controller) Current() (record.Record, bool) {
	if c.cursor < 0 || c.cursor >= len(c.visible) {
		return record.Record{}, false
	}
	return c.visible[c.cursor], true
}

func (c *Controller) clampCursor() {
	if c.cursor >= len(c.visible) {
		c.cursor = len(c.visible) - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}
