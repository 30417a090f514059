package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/safesistemas/cejoana/pkg/controller"
)

// Accent colours. The cursor row is a blend of the accent and the
// background so it stays readable on dark terminals.
const (
	AccentHex     = "#ff5fd7"
	BackgroundHex = "#1c1c1c"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header HeaderTheme
	Table  TableTheme
	Form   FormTheme
	Footer FooterTheme
	Modal  ModalTheme
	Menu   MenuTheme
}

// HeaderTheme styles the screen title and filter line.
type HeaderTheme struct {
	Title   lipgloss.Style
	Count   lipgloss.Style
	Loading lipgloss.Style
	Filter  lipgloss.Style
}

// TableTheme styles the record list.
type TableTheme struct {
	Header   lipgloss.Style
	Row      lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Empty    lipgloss.Style
}

// FormTheme styles the create/edit form.
type FormTheme struct {
	Frame    lipgloss.Style
	Title    lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Required lipgloss.Style
	Choice   lipgloss.Style
}

// FooterTheme groups styles used by the bottom status/help bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status map[controller.Level]lipgloss.Style
}

// ModalTheme styles centered modal overlays (e.g., delete confirmation).
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// MenuTheme styles the home menu.
type MenuTheme struct {
	Frame    lipgloss.Style
	Title    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
}

// Blend mixes two hex colours in Lab space; t=0 is a, t=1 is b.
func Blend(a, b string, t float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return b
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	return ca.BlendLab(cb, t).Clamped().Hex()
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	accent := lipgloss.Color("212")
	muted := lipgloss.Color("244")
	cursorBg := lipgloss.Color(Blend(AccentHex, BackgroundHex, 0.7))

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2)

	return Theme{
		Header: HeaderTheme{
			Title:   lipgloss.NewStyle().Bold(true).Foreground(accent),
			Count:   lipgloss.NewStyle().Foreground(muted),
			Loading: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true),
			Filter:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		},
		Table: TableTheme{
			Header:   lipgloss.NewStyle().Bold(true).Underline(true),
			Row:      lipgloss.NewStyle(),
			Cursor:   lipgloss.NewStyle().Background(cursorBg).Bold(true),
			Selected: lipgloss.NewStyle().Foreground(accent),
			Empty:    lipgloss.NewStyle().Foreground(muted).Italic(true),
		},
		Form: FormTheme{
			Frame:    frame,
			Title:    lipgloss.NewStyle().Bold(true),
			Label:    lipgloss.NewStyle().Foreground(muted),
			Focused:  lipgloss.NewStyle().Foreground(accent).Bold(true),
			Required: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			Choice:   lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
		},
		Footer: FooterTheme{
			Help: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: map[controller.Level]lipgloss.Style{
				controller.LevelInfo:    lipgloss.NewStyle().Foreground(muted),
				controller.LevelSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
				controller.LevelWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
				controller.LevelError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			},
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("196")).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
		Menu: MenuTheme{
			Frame:    frame,
			Title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
			Item:     lipgloss.NewStyle(),
			Selected: lipgloss.NewStyle().Foreground(accent).Bold(true).Reverse(true),
		},
	}
}

// StatusStyle returns the footer style for a notice level.
func (t Theme) StatusStyle(l controller.Level) lipgloss.Style {
	if s, ok := t.Footer.Status[l]; ok {
		return s
	}
	return t.Footer.Status[controller.LevelInfo]
}
