package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/safesistemas/cejoana/pkg/controller"
	"github.com/safesistemas/cejoana/pkg/record"
)

type option struct {
	label string
	raw   string
	id    record.ID
}

// input is one row of the form: a text box, or a selector cycling through
// options for booleans, enumerations and references.
type input struct {
	field   record.Field
	text    textinput.Model
	options []option
	index   int
}

func (in *input) selector() bool {
	return in.field.Kind == record.KindBool ||
		in.field.Kind == record.KindRef ||
		len(in.field.Options) > 0
}

// live inputs are written to the draft on every keystroke. The others are
// parsed when they lose focus, so a half-typed number is not rejected.
func (in *input) live() bool {
	return in.field.Kind == record.KindText && len(in.field.Options) == 0
}

type form struct {
	inputs []*input
	focus  int
}

func newForm(ctl *controller.Controller, width int) *form {
	draft := ctl.Draft()
	f := &form{}
	for _, field := range ctl.Schema().Fields {
		in := &input{field: field}
		if in.selector() {
			in.options = optionsFor(ctl, field)
			in.index = indexOf(in.options, field, draft.Fields[field.Name])
		} else {
			ti := textinput.New()
			ti.Prompt = ""
			ti.Placeholder = placeholder(field)
			if field.MaxLength > 0 {
				ti.CharLimit = field.MaxLength
			}
			ti.SetValue(record.Format(field, draft.Fields[field.Name]))
			in.text = ti
		}
		f.inputs = append(f.inputs, in)
	}
	f.setWidth(width)
	return f
}

func placeholder(f record.Field) string {
	switch f.Kind {
	case record.KindTimestamp:
		return record.InputLayout
	case record.KindNumber:
		return "0"
	}
	return ""
}

func optionsFor(ctl *controller.Controller, f record.Field) []option {
	switch {
	case f.Kind == record.KindBool:
		return []option{{label: "no", raw: "no"}, {label: "yes", raw: "yes"}}
	case f.Kind == record.KindRef:
		opts := []option{{label: "(none)"}}
		for _, c := range ctl.Choices(f.Name) {
			opts = append(opts, option{label: c.Label, id: c.ID})
		}
		return opts
	}
	opts := []option{{label: "(none)"}}
	for _, o := range f.Options {
		opts = append(opts, option{label: o, raw: o})
	}
	return opts
}

func indexOf(opts []option, f record.Field, v any) int {
	for i, o := range opts {
		switch t := v.(type) {
		case record.ID:
			if o.id == t {
				return i
			}
		case bool:
			if (o.raw == "yes") == t {
				return i
			}
		case string:
			if o.raw == t {
				return i
			}
		}
	}
	return 0
}

func (f *form) setWidth(width int) {
	w := width - 24
	if w < 16 {
		w = 16
	}
	for _, in := range f.inputs {
		if !in.selector() {
			in.text.SetWidth(w)
		}
	}
}

func (f *form) current() *input {
	if len(f.inputs) == 0 {
		return nil
	}
	return f.inputs[f.focus]
}

// focusOn blurs the current input and focuses input i.
func (f *form) focusOn(i int) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	if cur := f.current(); cur != nil && !cur.selector() {
		cur.text.Blur()
	}
	f.focus = (i + len(f.inputs)) % len(f.inputs)
	if cur := f.current(); !cur.selector() {
		return cur.text.Focus()
	}
	return nil
}

// refreshChoices rebuilds reference options after a lookup arrives.
func (f *form) refreshChoices(ctl *controller.Controller) {
	draft := ctl.Draft()
	for _, in := range f.inputs {
		if in.field.Kind != record.KindRef {
			continue
		}
		in.options = optionsFor(ctl, in.field)
		in.index = indexOf(in.options, in.field, draft.Fields[in.field.Name])
	}
}

// commit writes the input's text to the draft and re-syncs it with the
// canonical value.
func commit(ctl *controller.Controller, in *input) error {
	if in.selector() {
		return nil
	}
	if err := ctl.SetField(in.field.Name, in.text.Value()); err != nil {
		return err
	}
	v := record.Format(in.field, ctl.Draft().Fields[in.field.Name])
	if in.live() && v != in.text.Value() {
		in.text.SetValue(v)
	}
	return nil
}

// cycle moves a selector by delta and writes the choice to the draft.
func cycle(ctl *controller.Controller, in *input, delta int) error {
	if len(in.options) == 0 {
		return nil
	}
	in.index = (in.index + delta + len(in.options)) % len(in.options)
	o := in.options[in.index]
	if in.field.Kind == record.KindRef {
		return ctl.SetRef(in.field.Name, o.id)
	}
	return ctl.SetField(in.field.Name, o.raw)
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	f := m.form
	cur := f.current()
	switch msg.String() {
	case "esc":
		_ = m.ctl.Cancel()
		m.form = nil
		return nil
	case "tab", "down":
		if cur != nil && commit(m.ctl, cur) != nil {
			return nil
		}
		return f.focusOn(f.focus + 1)
	case "shift+tab", "up":
		if cur != nil && commit(m.ctl, cur) != nil {
			return nil
		}
		return f.focusOn(f.focus - 1)
	case "enter", "ctrl+s":
		if cur != nil && commit(m.ctl, cur) != nil {
			return nil
		}
		cmd, _ := m.ctl.Submit()
		return cmd
	}
	if cur == nil {
		return nil
	}
	if cur.selector() {
		switch msg.String() {
		case "left", "h":
			_ = cycle(m.ctl, cur, -1)
		case "right", "l", "space", " ":
			_ = cycle(m.ctl, cur, 1)
		}
		return nil
	}
	var cmd tea.Cmd
	cur.text, cmd = cur.text.Update(msg)
	if cur.live() {
		_ = commit(m.ctl, cur)
	}
	return cmd
}

func (m *Model) viewForm() (string, *tea.Cursor) {
	th := m.theme.Form
	draft := m.ctl.Draft()
	verb := "New"
	if !draft.Creating() {
		verb = "Edit"
	}
	title := th.Title.Render(fmt.Sprintf("%s %s", verb, m.ctl.Schema().Singular))
	if m.ctl.Saving() {
		title += " " + m.theme.Header.Loading.Render("saving…")
	}
	lines := []string{title, ""}

	labelWidth := 0
	for _, in := range m.form.inputs {
		if w := lipgloss.Width(in.field.Title()); w > labelWidth {
			labelWidth = w
		}
	}
	labelWidth += 2

	var cursor *tea.Cursor
	for i, in := range m.form.inputs {
		label := in.field.Title()
		if in.field.Required {
			label += th.Required.Render("*")
		}
		pad := labelWidth - lipgloss.Width(in.field.Title())
		if in.field.Required {
			pad--
		}
		style := th.Label
		if i == m.form.focus {
			style = th.Focused
		}
		prefix := style.Render(label) + strings.Repeat(" ", max(pad, 1))

		var value string
		if in.selector() {
			value = in.options[in.index].label
			if i == m.form.focus {
				value = th.Choice.Render("‹ " + value + " ›")
			}
		} else {
			value = in.text.View()
			if i == m.form.focus {
				if c := in.text.Cursor(); c != nil {
					clone := *c
					clone.Position.X += lipgloss.Width(prefix)
					clone.Position.Y += len(lines)
					cursor = &clone
				}
			}
		}
		lines = append(lines, prefix+value)
	}

	body := th.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	if cursor != nil {
		// Frame border plus padding.
		cursor.Position.X += 3
		cursor.Position.Y += 2
	}
	return body, cursor
}
