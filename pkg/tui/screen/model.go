// Package screen renders one entity as a browsable list with a create/edit
// form, driving a controller.Controller.
package screen

import (
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/safesistemas/cejoana/pkg/controller"
	"github.com/safesistemas/cejoana/pkg/record"
	"github.com/safesistemas/cejoana/pkg/store"
	"github.com/safesistemas/cejoana/pkg/tui/theme"
)

// BackMsg asks the parent to leave the screen.
type BackMsg struct{}

// Model is the Bubble Tea model of one entity screen.
type Model struct {
	ctl   *controller.Controller
	theme theme.Theme

	width  int
	height int

	status    controller.Notice
	hasStatus bool

	filter    textinput.Model
	filtering bool

	confirm *controller.DeleteRequest
	form    *form
}

// New builds the screen of entity s over adapter a. opts configure the
// underlying controller; the screen registers itself as its notifier.
func New(s *record.Schema, a store.Adapter, opts ...controller.Option) *Model {
	fi := textinput.New()
	fi.Prompt = ""
	fi.Placeholder = "type to filter…"

	m := &Model{theme: theme.Default(), filter: fi}
	m.ctl = controller.New(s, a, append(opts, controller.WithNotifier(m))...)
	return m
}

// Controller exposes the state machine behind the screen.
func (m *Model) Controller() *controller.Controller { return m.ctl }

// Status returns the last notice shown in the footer.
func (m *Model) Status() (controller.Notice, bool) { return m.status, m.hasStatus }

// Notify implements controller.Notifier.
func (m *Model) Notify(n controller.Notice) {
	m.status = n
	m.hasStatus = true
}

// Confirming reports whether a delete confirmation is showing.
func (m *Model) Confirming() bool { return m.confirm != nil }

// SetSize updates the layout dimensions.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.filter.SetWidth(max(width-4, 10))
	if m.form != nil {
		m.form.setWidth(width)
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.ctl.Init()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case controller.FetchedMsg, controller.SubmittedMsg, controller.DeletedMsg:
		cmd := m.ctl.Update(msg)
		m.syncForm()
		return m, cmd
	case controller.LookupFetchedMsg:
		cmd := m.ctl.Update(msg)
		if m.form != nil {
			m.form.refreshChoices(m.ctl)
		}
		return m, cmd
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	if m.filtering {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	if m.form != nil {
		if cur := m.form.current(); cur != nil && !cur.selector() {
			var cmd tea.Cmd
			cur.text, cmd = cur.text.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// syncForm drops the form once the controller has left the form modes.
func (m *Model) syncForm() {
	if m.form != nil && m.ctl.Mode() == controller.Browsing {
		m.form = nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case m.form != nil:
		return m.updateForm(msg)
	case m.confirm != nil:
		return m.updateConfirm(msg)
	case m.filtering:
		return m.updateFilter(msg)
	}
	return m.updateBrowse(msg)
}

func (m *Model) updateBrowse(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		m.ctl.MoveCursor(-1)
	case "down", "j":
		m.ctl.MoveCursor(1)
	case "home", "g":
		m.ctl.SetCursor(0)
	case "end", "G":
		m.ctl.SetCursor(len(m.ctl.Visible()) - 1)
	case "space", " ":
		m.ctl.ToggleCurrent()
	case "x":
		m.ctl.ClearSelection()
	case "a", "n":
		if m.ctl.BeginCreate() == nil {
			return m.openForm()
		}
	case "e":
		if m.ctl.BeginEdit() == nil {
			return m.openForm()
		}
	case "enter":
		r, ok := m.ctl.Current()
		if !ok {
			return nil
		}
		if m.ctl.BeginEditID(r.ID) == nil {
			return m.openForm()
		}
	case "d", "delete":
		req, err := m.ctl.PrepareDelete()
		if err == nil {
			m.confirm = &req
		}
	case "/":
		m.filtering = true
		m.filter.SetValue(m.ctl.Filter())
		m.filter.CursorEnd()
		return m.filter.Focus()
	case "r", "ctrl+r":
		return m.ctl.Refresh()
	case "esc":
		if m.ctl.Filter() != "" {
			m.ctl.SetFilter("")
			m.filter.SetValue("")
			return nil
		}
		return func() tea.Msg { return BackMsg{} }
	}
	return nil
}

func (m *Model) openForm() tea.Cmd {
	m.form = newForm(m.ctl, m.width)
	return m.form.focusOn(0)
}

func (m *Model) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y", "enter":
		req := *m.confirm
		m.confirm = nil
		cmd, _ := m.ctl.Delete(req)
		return cmd
	case "n", "N", "esc":
		m.confirm = nil
		m.Notify(controller.Notice{Level: controller.LevelInfo, Text: "delete cancelled"})
	}
	return nil
}

func (m *Model) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return nil
	case "esc":
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.ctl.SetFilter("")
		return nil
	}
	prev := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != prev {
		m.ctl.SetFilter(m.filter.Value())
	}
	return cmd
}
