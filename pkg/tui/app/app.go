// Package app is the root Bubble Tea model: a menu of entities that opens
// one screen at a time.
package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/safesistemas/cejoana/pkg/controller"
	"github.com/safesistemas/cejoana/pkg/entities"
	"github.com/safesistemas/cejoana/pkg/record"
	"github.com/safesistemas/cejoana/pkg/store"
	"github.com/safesistemas/cejoana/pkg/tui/screen"
	"github.com/safesistemas/cejoana/pkg/tui/theme"
)

// Model composes the menu and the open entity screen.
type Model struct {
	ctx     context.Context
	backend store.Backend
	schemas []*record.Schema
	theme   theme.Theme

	width  int
	height int

	menu   int
	screen *screen.Model
	start  *record.Schema
}

// Option configures the root model.
type Option func(*Model)

// WithStart opens the given entity instead of the menu.
func WithStart(s *record.Schema) Option {
	return func(m *Model) { m.start = s }
}

// WithContext sets the context handed to every store call.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// New constructs the root model over backend b.
func New(b store.Backend, opts ...Option) *Model {
	m := &Model{
		ctx:     context.Background(),
		backend: b,
		schemas: entities.All(),
		theme:   theme.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run launches the Bubble Tea program.
func Run(b store.Backend, opts ...Option) error {
	p := tea.NewProgram(New(b, opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Screen returns the open entity screen, if any.
func (m *Model) Screen() *screen.Model { return m.screen }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.start != nil {
		return m.Open(m.start)
	}
	return nil
}

// Open mounts the screen of entity s, wiring a lookup for each entity its
// references point to.
func (m *Model) Open(s *record.Schema) tea.Cmd {
	opts := []controller.Option{controller.WithContext(m.ctx)}
	for _, ref := range entities.Referenced(s) {
		opts = append(opts, controller.WithLookup(ref, m.backend.Adapter(ref)))
	}
	m.screen = screen.New(s, m.backend.Adapter(s), opts...)
	if m.width > 0 {
		m.screen.SetSize(m.width, m.height)
	}
	return m.screen.Init()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = v.Width, v.Height
		if m.screen != nil {
			m.screen.SetSize(v.Width, v.Height)
		}
		return m, nil
	case tea.KeyMsg:
		if v.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case screen.BackMsg:
		m.screen = nil
		return m, nil
	}

	if m.screen != nil {
		_, cmd := m.screen.Update(msg)
		return m, cmd
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		return m, m.updateMenu(k)
	}
	return m, nil
}

func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	switch s := msg.String(); s {
	case "up", "k":
		m.menu = (m.menu - 1 + len(m.schemas)) % len(m.schemas)
	case "down", "j", "tab":
		m.menu = (m.menu + 1) % len(m.schemas)
	case "enter", "right", "l":
		return m.Open(m.schemas[m.menu])
	case "q", "esc":
		return tea.Quit
	default:
		if len(s) == 1 && s[0] >= '1' && int(s[0]-'1') < len(m.schemas) {
			m.menu = int(s[0] - '1')
			return m.Open(m.schemas[m.menu])
		}
	}
	return nil
}

// View implements tea.Model.
func (m *Model) View() (string, *tea.Cursor) {
	if m.screen != nil {
		return m.screen.View()
	}
	th := m.theme.Menu
	lines := []string{th.Title.Render("cejoana"), ""}
	for i, s := range m.schemas {
		item := fmt.Sprintf(" %d  %s ", i+1, s.Title)
		if i == m.menu {
			lines = append(lines, th.Selected.Render(item))
		} else {
			lines = append(lines, th.Item.Render(item))
		}
	}
	menu := th.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	help := m.theme.Footer.Help.Render("↑/↓ move · enter open · q quit")
	return lipgloss.JoinVertical(lipgloss.Left, menu, help), nil
}
