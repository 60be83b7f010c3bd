package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"clinote/internal/ui/theme"
)

// Picker is a single-line choice list cycled with left/right.
type Picker struct {
	title   string
	options []string
	index   int
	focused bool
}

// NewPicker selects value when it is one of options, otherwise the first option.
func NewPicker(title string, options []string, value string) Picker {
	p := Picker{title: title, options: append([]string(nil), options...)}
	p.Select(value)
	return p
}

func (p Picker) Value() string {
	if len(p.options) == 0 {
		return ""
	}
	return p.options[p.index]
}

// Select moves to value and reports whether it was found.
func (p *Picker) Select(value string) bool {
	for i, o := range p.options {
		if o == value {
			p.index = i
			return true
		}
	}
	return false
}

func (p *Picker) Focus() { p.focused = true }
func (p *Picker) Blur() { p.focused = false }
func (p Picker) Focused() bool { return p.focused }

func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	if !p.focused || len(p.options) == 0 {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "left", "h":
			p.index = (p.index + len(p.options) - 1) % len(p.options)
		case "right", "l":
			p.index = (p.index + 1) % len(p.options)
		}
	}
	return p, nil
}

func (p Picker) View() string {
	parts := make([]string, len(p.options))
	for i, o := range p.options {
		if i == p.index {
			parts[i] = theme.Selected.Render(o)
		} else {
			parts[i] = theme.Option.Render(o)
		}
	}
	title := theme.Muted.Render(p.title)
	if p.focused {
		title = theme.Label.Render(p.title)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title+"  ", strings.Join(parts, " "))
}
