package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"clinote/internal/modules/notes/domain"
	notesdto "clinote/internal/modules/notes/dto"
	"clinote/internal/ui/components"
	"clinote/internal/ui/theme"
	historyview "clinote/internal/ui/views/history"
)

const (
	labelDraft  = "Write your notes here"
	labelReview = "Here's your tidied up notes! Make any edits you'd like."
)

// ─── port ────────────────────────────────────────────────────────────────────

type notesPort interface {
	Submit(ctx context.Context, observation, duration, sessionType string) (notesdto.SubmitOutput, error)
	Save(ctx context.Context, finalNote string) (notesdto.SaveOutput, error)
	EditDraft(ctx context.Context, observation, duration, sessionType string) (notesdto.StateOutput, error)
	EditNote(ctx context.Context, text string) (notesdto.StateOutput, error)
	State(ctx context.Context) (notesdto.StateOutput, error)
	Catalog(ctx context.Context) (notesdto.CatalogOutput, error)
}

// ─── async messages ───────────────────────────────────────────────────────────

type loadedMsg struct {
	state   notesdto.StateOutput
	catalog notesdto.CatalogOutput
	err     error
}

type generatedMsg struct {
	out   notesdto.SubmitOutput
	state notesdto.StateOutput
	err   error
}

type savedMsg struct {
	out   notesdto.SaveOutput
	state notesdto.StateOutput
	err   error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Action  key.Binding
	Retry   key.Binding
	Focus   key.Binding
	Choose  key.Binding
	History key.Binding
	Scroll  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Action:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit / save")),
		Retry:   key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "regenerate")),
		Focus:   key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		Choose:  key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "choose")),
		History: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "history")),
		Scroll:  key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "scroll history")),
		Help:    key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Action, k.Focus, k.History, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Action, k.Retry, k.Focus, k.Choose},
		{k.History, k.Scroll, k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

type focusArea int

const (
	focusEditor focusArea = iota
	focusDuration
	focusType
	focusCount
)

// Model is the root Bubble Tea model: one note form bound to one controller.
// Remote calls run as commands; the controller rejects overlapping operations.
type Model struct {
	notes notesPort

	editor      textarea.Model
	duration    components.Picker
	sessionType components.Picker
	spinner     spinner.Model
	history     historyview.Model
	keys        keyMap
	help        help.Model

	state       notesdto.StateOutput
	loaded      bool
	pending     bool
	focus       focusArea
	showHelp    bool
	showHistory bool
	status      string
	failed      bool
	saved       bool
	width       int
	height      int
}

func NewModel(notes notesPort) Model {
	editor := textarea.New()
	editor.Placeholder = labelDraft
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.MaxHeight = 0
	editor.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		notes:   notes,
		editor:  editor,
		spinner: sp,
		history: historyview.New(),
		keys:    defaultKeys(),
		help:    help.New(),
		status:  "loading",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.loadCmd())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.setError("load session: " + msg.err.Error())
			return m, nil
		}
		labels := make([]string, 0, len(msg.catalog.Durations))
		for _, d := range msg.catalog.Durations {
			labels = append(labels, d.Label)
		}
		m.duration = components.NewPicker("Session duration", labels, msg.state.Duration)
		m.sessionType = components.NewPicker("Session type", msg.catalog.SessionTypes, msg.state.SessionType)
		m.loaded = true
		m.apply(msg.state)
		m.editor.SetValue(m.editorText())
		m.setStatus("ready")
		return m, nil

	case generatedMsg:
		m.pending = false
		m.apply(msg.state)
		if msg.err != nil {
			m.setError("generation failed: " + msg.err.Error())
			return m, nil
		}
		m.editor.SetValue(msg.out.GeneratedNote)
		m.setFocus(focusEditor)
		m.setStatus(fmt.Sprintf("note %s generated", msg.out.NoteID))
		return m, nil

	case savedMsg:
		m.pending = false
		m.apply(msg.state)
		switch {
		case msg.err != nil:
			m.setError("save failed: " + msg.err.Error())
		case msg.out.Skipped:
			m.setStatus("nothing to save")
		default:
			status := "saved note " + msg.out.NoteID
			if msg.out.Message != "" {
				status += ": " + msg.out.Message
			}
			m.setStatus(status)
			m.saved = true
		}
		return m, nil

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.showHelp {
			if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.History):
			m.showHistory = !m.showHistory
			m.resize()
			return m, nil
		case m.showHistory && key.Matches(msg, m.keys.Scroll):
			var cmd tea.Cmd
			m.history, cmd = m.history.Update(msg)
			return m, cmd
		case key.Matches(msg, m.keys.Action):
			return m.action()
		case key.Matches(msg, m.keys.Retry):
			return m.regenerate()
		case key.Matches(msg, m.keys.Focus):
			if m.awaitingInput() {
				step := focusArea(1)
				if msg.String() == "shift+tab" {
					step = focusCount - 1
				}
				m.setFocus((m.focus + step) % focusCount)
			}
			return m, nil
		}
		if m.pending || !m.loaded {
			return m, nil
		}
		return m.updateFocused(msg)
	}

	if _, ok := msg.(tea.MouseMsg); ok {
		if !m.showHistory {
			return m, nil
		}
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	cmds = append(cmds, cmd)
	m.history, cmd = m.history.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// updateFocused routes a key to the focused field and mirrors the edit into
// the controller.
func (m Model) updateFocused(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusDuration:
		before := m.duration.Value()
		m.duration, cmd = m.duration.Update(msg)
		if m.duration.Value() != before {
			m.syncDraft()
		}
	case focusType:
		before := m.sessionType.Value()
		m.sessionType, cmd = m.sessionType.Update(msg)
		if m.sessionType.Value() != before {
			m.syncDraft()
		}
	default:
		before := m.editor.Value()
		m.editor, cmd = m.editor.Update(msg)
		if m.editor.Value() != before {
			if m.state.HasNote {
				m.syncNote()
			} else {
				m.syncDraft()
			}
		}
	}
	return m, cmd
}

func (m Model) action() (tea.Model, tea.Cmd) {
	if !m.loaded {
		return m, nil
	}
	if m.pending {
		m.setStatus("please wait")
		return m, nil
	}
	switch domain.Phase(m.state.Phase) {
	case domain.PhaseAwaitingInput:
		if strings.TrimSpace(m.editor.Value()) == "" {
			m.setError("write some notes first")
			return m, nil
		}
		m.pending = true
		m.state.Phase = string(domain.PhaseGenerating)
		m.setFocus(focusEditor)
		m.editor.Blur()
		m.setStatus("Generating...")
		return m, tea.Batch(m.submitCmd(m.editor.Value(), m.duration.Value(), m.sessionType.Value()), m.spinner.Tick)
	case domain.PhaseReviewing:
		m.pending = true
		m.state.Phase = string(domain.PhaseSaving)
		m.editor.Blur()
		m.setStatus("Saving...")
		return m, tea.Batch(m.saveCmd(m.editor.Value()), m.spinner.Tick)
	}
	return m, nil
}

// regenerate resubmits the stored draft while a note is under review.
func (m Model) regenerate() (tea.Model, tea.Cmd) {
	if !m.loaded || m.pending || domain.Phase(m.state.Phase) != domain.PhaseReviewing {
		return m, nil
	}
	m.pending = true
	m.state.Phase = string(domain.PhaseGenerating)
	m.editor.Blur()
	m.setStatus("Generating...")
	return m, tea.Batch(m.submitCmd(m.state.Observation, m.state.Duration, m.state.SessionType), m.spinner.Tick)
}

func (m *Model) apply(state notesdto.StateOutput) {
	m.state = state
	m.history.SetEntries(state.History)
	m.editor.Placeholder = m.label()
	if !m.pending && !m.editor.Focused() && m.focus == focusEditor {
		m.editor.Focus()
	}
}

func (m *Model) syncDraft() {
	state, err := m.notes.EditDraft(context.Background(), m.editor.Value(), m.duration.Value(), m.sessionType.Value())
	if err != nil {
		m.setError(err.Error())
		return
	}
	m.state = state
}

func (m *Model) syncNote() {
	state, err := m.notes.EditNote(context.Background(), m.editor.Value())
	if err != nil {
		m.setError(err.Error())
		return
	}
	m.state = state
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	m.duration.Blur()
	m.sessionType.Blur()
	m.editor.Blur()
	switch f {
	case focusDuration:
		m.duration.Focus()
	case focusType:
		m.sessionType.Focus()
	default:
		m.editor.Focus()
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.failed = false
	m.saved = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.failed = true
	m.saved = false
}

func (m *Model) resize() {
	w := m.width - 6
	if w < 20 {
		w = 20
	}
	editorH := m.height - 14
	if m.showHistory {
		editorH -= m.height / 3
		m.history.SetSize(w, m.height/3)
	}
	if editorH < 3 {
		editorH = 3
	}
	m.editor.SetWidth(w)
	m.editor.SetHeight(editorH)
}

func (m Model) awaitingInput() bool {
	return domain.Phase(m.state.Phase) == domain.PhaseAwaitingInput
}

func (m Model) label() string {
	if m.state.HasNote {
		return labelReview
	}
	return labelDraft
}

func (m Model) editorText() string {
	if m.state.HasNote {
		return m.state.EditableNote
	}
	return m.state.Observation
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.showHelp {
		return theme.App.Render(theme.Title.Render("clinote help") + "\n\n" + m.help.View(m.keys))
	}

	sections := []string{m.renderHeader(), theme.Label.Render(m.label())}
	if m.loaded && m.awaitingInput() {
		sections = append(sections, m.duration.View(), m.sessionType.View())
	}
	pane := theme.Pane
	if m.focus == focusEditor && !m.pending {
		pane = theme.PaneActive
	}
	sections = append(sections, pane.Render(m.editor.View()), m.renderAction())
	if m.showHistory {
		sections = append(sections, theme.Pane.Render(m.history.View()))
	}
	sections = append(sections, m.renderStatus(), m.help.ShortHelpView(m.keys.ShortHelp()))
	return theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderHeader() string {
	header := theme.Title.Render("clinote")
	if m.state.SessionID != "" {
		header += "  " + theme.Muted.Render("session "+m.state.SessionID)
	}
	if m.state.NoteID != "" {
		header += "  " + theme.Hot.Render("note "+m.state.NoteID)
	}
	if m.state.DurationMinutes > 0 && m.state.SessionType != "" {
		header += "  " + theme.Muted.Render(fmt.Sprintf("%d min · %s", m.state.DurationMinutes, m.state.SessionType))
	}
	return header
}

func (m Model) renderAction() string {
	switch domain.Phase(m.state.Phase) {
	case domain.PhaseGenerating:
		return theme.ButtonBusy.Render(m.spinner.View() + " Generating...")
	case domain.PhaseSaving:
		return theme.ButtonBusy.Render(m.spinner.View() + " Saving...")
	case domain.PhaseReviewing:
		return theme.Button.Render("Save note")
	default:
		return theme.Button.Render("Tidy up notes")
	}
}

func (m Model) renderStatus() string {
	switch {
	case m.failed:
		return theme.Error.Render(m.status)
	case m.saved:
		return theme.Ok.Render(m.status)
	}
	return theme.Muted.Render(m.status)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		catalog, err := m.notes.Catalog(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		state, err := m.notes.State(ctx)
		return loadedMsg{state: state, catalog: catalog, err: err}
	}
}

func (m Model) submitCmd(observation, duration, sessionType string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		out, err := m.notes.Submit(ctx, observation, duration, sessionType)
		state, _ := m.notes.State(ctx)
		return generatedMsg{out: out, state: state, err: err}
	}
}

func (m Model) saveCmd(text string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		out, err := m.notes.Save(ctx, text)
		state, _ := m.notes.State(ctx)
		return savedMsg{out: out, state: state, err: err}
	}
}
