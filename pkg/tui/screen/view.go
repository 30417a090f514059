package screen

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"

	"github.com/safesistemas/cejoana/pkg/controller"
	"github.com/safesistemas/cejoana/pkg/record"
)

const (
	maxColumnWidth = 28
	// Title, filter, blank, table header, blank, status and help lines.
	chromeHeight = 7
)

// View implements tea.Model.
func (m *Model) View() (string, *tea.Cursor) {
	var (
		body   string
		cursor *tea.Cursor
	)
	header := m.viewHeader()
	filterLine, filterCursor := m.viewFilter()

	switch {
	case m.form != nil:
		body, cursor = m.viewForm()
		if cursor != nil {
			cursor.Position.Y += 2
		}
	case m.confirm != nil:
		body = m.viewConfirm()
	default:
		body = m.viewTable()
		if filterCursor != nil {
			cursor = filterCursor
			cursor.Position.Y++
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		filterLine,
		body,
		"",
		m.viewStatus(),
		m.theme.Footer.Help.Render(m.help()),
	), cursor
}

func (m *Model) viewHeader() string {
	th := m.theme.Header
	s := m.ctl.Schema()
	title := s.Title
	if title == "" {
		title = s.Plural
	}
	parts := []string{th.Title.Render(title)}
	count := fmt.Sprintf("%d %s", len(m.ctl.Records()), s.Noun(len(m.ctl.Records())))
	if len(m.ctl.Visible()) != len(m.ctl.Records()) {
		count = fmt.Sprintf("%d of %s", len(m.ctl.Visible()), count)
	}
	if n := m.ctl.SelectionCount(); n > 0 {
		count += fmt.Sprintf(", %d selected", n)
	}
	parts = append(parts, th.Count.Render(count))
	if m.ctl.Loading() {
		parts = append(parts, th.Loading.Render("loading…"))
	}
	if p := m.ctl.Pending(); p > 0 {
		parts = append(parts, th.Loading.Render(fmt.Sprintf("saving %d…", p)))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) viewFilter() (string, *tea.Cursor) {
	prefix := "/ "
	if m.filtering {
		var cursor *tea.Cursor
		if c := m.filter.Cursor(); c != nil {
			clone := *c
			clone.Position.X += lipgloss.Width(prefix)
			cursor = &clone
		}
		return m.theme.Header.Filter.Render(prefix) + m.filter.View(), cursor
	}
	if f := m.ctl.Filter(); f != "" {
		return m.theme.Header.Filter.Render(prefix + f), nil
	}
	return "", nil
}

func (m *Model) columns() []record.Field {
	var cols []record.Field
	for _, f := range m.ctl.Schema().Fields {
		if f.Multiline {
			continue
		}
		cols = append(cols, f)
	}
	return cols
}

func (m *Model) viewTable() string {
	th := m.theme.Table
	s := m.ctl.Schema()
	rows := m.ctl.Visible()

	if len(rows) == 0 {
		switch {
		case !m.ctl.Populated():
			if m.ctl.Loading() {
				return th.Empty.Render(fmt.Sprintf("Loading %s…", s.Plural))
			}
			return th.Empty.Render(fmt.Sprintf("Could not load %s. Press r to retry.", s.Plural))
		case len(m.ctl.Records()) == 0:
			return th.Empty.Render(fmt.Sprintf("No %s yet. Press a to add one.", s.Plural))
		default:
			return th.Empty.Render(fmt.Sprintf("No %s match %q.", s.Plural, m.ctl.Filter()))
		}
	}

	cols := m.columns()
	widths := make([]int, len(cols))
	for i, f := range cols {
		widths[i] = lipgloss.Width(f.Title())
	}
	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(cols))
		for i, f := range cols {
			c := m.ctl.Cell(row, f.Name)
			cells[r][i] = c
			if w := lipgloss.Width(c); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		widths[i] = min(widths[i], maxColumnWidth)
	}

	titles := make([]string, len(cols))
	for i, f := range cols {
		titles[i] = f.Title()
	}
	lines := []string{"      " + th.Header.Render(m.fit(joinCells(titles, widths)))}

	first, last := m.window(len(rows))
	for r := first; r < last; r++ {
		row := rows[r]
		mark := "[ ]"
		if m.ctl.Selected(row.ID) {
			mark = "[x]"
		}
		pointer := "  "
		if r == m.ctl.Cursor() {
			pointer = "> "
		}
		line := pointer + mark + " " + m.fit(joinCells(cells[r], widths))
		switch {
		case r == m.ctl.Cursor():
			line = th.Cursor.Render(line)
		case m.ctl.Selected(row.ID):
			line = th.Selected.Render(line)
		default:
			line = th.Row.Render(line)
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// window returns the row range kept on screen so the cursor stays visible.
func (m *Model) window(total int) (int, int) {
	if m.height <= chromeHeight {
		return 0, total
	}
	size := m.height - chromeHeight
	if total <= size {
		return 0, total
	}
	first := m.ctl.Cursor() - size/2
	first = max(0, min(first, total-size))
	return first, first + size
}

func (m *Model) fit(s string) string {
	if m.width <= 6 {
		return s
	}
	return cut(s, m.width-6)
}

// cut shortens s to width cells with a trailing ellipsis. Strings that
// already fit are returned as is.
func cut(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}

func joinCells(cells []string, widths []int) string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = padding.String(cut(c, widths[i]), uint(widths[i]))
	}
	return strings.Join(out, "  ")
}

func (m *Model) viewConfirm() string {
	th := m.theme.Modal
	body := lipgloss.JoinVertical(lipgloss.Left,
		th.Title.Render(m.confirm.Prompt),
		"",
		th.Body.Render("y confirm · n cancel"),
	)
	return th.Frame.Render(body)
}

func (m *Model) viewStatus() string {
	if !m.hasStatus {
		return ""
	}
	text := m.status.Text
	if m.status.Level == controller.LevelError && m.status.Err != nil {
		text = fmt.Sprintf("%s: %v", text, m.status.Err)
	}
	return m.theme.StatusStyle(m.status.Level).Render(text)
}

func (m *Model) help() string {
	switch {
	case m.form != nil:
		return "tab next · shift+tab prev · ←/→ choose · enter save · esc cancel"
	case m.confirm != nil:
		return "y delete · n keep"
	case m.filtering:
		return "enter apply · esc clear"
	}
	ops := m.ctl.Schema().Ops
	parts := []string{"↑/↓ move", "space select"}
	if ops.Create {
		parts = append(parts, "a add")
	}
	if ops.Edit {
		parts = append(parts, "enter/e edit")
	}
	if ops.Delete {
		parts = append(parts, "d delete")
	}
	parts = append(parts, "/ filter", "r reload", "esc back")
	return strings.Join(parts, " · ")
}
