package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	notesdto "clinote/internal/modules/notes/dto"
	"clinote/internal/ui/theme"
)

const timeFormat = "15:04:05"

// Model lists the session history, newest at the bottom.
type Model struct {
	viewport viewport.Model
	entries  []notesdto.HistoryEntryOutput
}

func New() Model {
	return Model{viewport: viewport.New(0, 0)}
}

func (m *Model) SetEntries(entries []notesdto.HistoryEntryOutput) {
	m.entries = append([]notesdto.HistoryEntryOutput(nil), entries...)
	m.viewport.SetContent(m.render())
	m.viewport.GotoBottom()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.viewport.SetContent(m.render())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return theme.Title.Render("History") + "\n" + m.viewport.View()
}

func (m Model) render() string {
	if len(m.entries) == 0 {
		return theme.Muted.Render("no entries yet")
	}
	lines := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		lines = append(lines, FormatEntry(e))
	}
	return strings.Join(lines, "\n")
}

// FormatEntry renders one entry as "[15:04:05] kind: text".
func FormatEntry(e notesdto.HistoryEntryOutput) string {
	return fmt.Sprintf("[%s] %s: %s", e.At.Format(timeFormat), e.Kind, e.Text)
}
