package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	notesinadapter "clinote/internal/modules/notes/adapter/in"
	"clinote/internal/modules/notes/domain"
	notesdto "clinote/internal/modules/notes/dto"
	notesout "clinote/internal/modules/notes/port/out"
	"clinote/internal/modules/notes/service"
	"clinote/internal/modules/notes/usecase"
	"clinote/internal/platform/clock"
	"clinote/internal/platform/id"
)

type stubNotes struct {
	note    string
	genErr  error
	saved   []string
	genReqs []notesout.GenerateRequest
}

func (s *stubNotes) Generate(_ context.Context, req notesout.GenerateRequest) (notesout.GenerateResult, error) {
	s.genReqs = append(s.genReqs, req)
	if s.genErr != nil {
		return notesout.GenerateResult{}, s.genErr
	}
	note := s.note
	if note == "" {
		note = "Patient reports improved sleep patterns."
	}
	return notesout.GenerateResult{GeneratedNote: note, NoteID: "42"}, nil
}

func (s *stubNotes) Save(_ context.Context, noteID domain.NoteID, text string) (domain.Acknowledgement, error) {
	s.saved = append(s.saved, text)
	return domain.Acknowledgement{NoteID: noteID, Message: "Final note updated"}, nil
}

func newTestModel(t *testing.T, notes *stubNotes) Model {
	t.Helper()
	clk := clock.Func(func() time.Time { return time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC) })
	ctrl, err := service.NewController(domain.DefaultCatalog(), notes, nil, clk, id.Static("sess-1"))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	m := NewModel(notesinadapter.NewCLIHandler(usecase.NewInteractor(ctrl)))
	m = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return run(t, m, m.loadCmd())
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// run executes cmd, feeding result messages back into the model. Spinner ticks
// and cursor blinks are skipped.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = run(t, m, c)
		}
	case loadedMsg, generatedMsg, savedMsg:
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	return step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func press(t *testing.T, m Model, k tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(Model), cmd
}

func TestModelShowsDraftFormAfterLoad(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, &stubNotes{})
	view := m.View()
	for _, want := range []string{labelDraft, "Session duration", "Session type", "30 mins", "Therapy"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, labelReview) {
		t.Fatalf("review label must not be shown before generation")
	}
}

func TestModelSubmitsAndReviews(t *testing.T) {
	t.Parallel()
	notes := &stubNotes{}
	m := newTestModel(t, notes)
	m = typeText(t, m, "pt reports better sleep")

	m, cmd := press(t, m, tea.KeyCtrlS)
	if m.state.Phase != string(domain.PhaseGenerating) || !strings.Contains(m.View(), "Generating...") {
		t.Fatalf("expected generating state, got %q", m.state.Phase)
	}
	if _, again := press(t, m, tea.KeyCtrlS); again != nil {
		t.Fatalf("second submit while pending must not dispatch")
	}
	m = run(t, m, cmd)

	if len(notes.genReqs) != 1 || notes.genReqs[0].Notes != "pt reports better sleep" || notes.genReqs[0].SessionDuration != 30 {
		t.Fatalf("unexpected generate requests: %+v", notes.genReqs)
	}
	view := m.View()
	if !strings.Contains(view, labelReview) || strings.Contains(view, "Session duration") {
		t.Fatalf("expected review form without pickers:\n%s", view)
	}
	if m.editor.Value() != "Patient reports improved sleep patterns." {
		t.Fatalf("editor should hold generated note, got %q", m.editor.Value())
	}

	m = typeText(t, m, " Follow-up.")
	m, cmd = press(t, m, tea.KeyCtrlS)
	if !strings.Contains(m.View(), "Saving...") {
		t.Fatalf("expected saving indicator")
	}
	m = run(t, m, cmd)
	if len(notes.saved) != 1 || !strings.HasSuffix(notes.saved[0], "Follow-up.") {
		t.Fatalf("unexpected saves: %v", notes.saved)
	}
	if !strings.Contains(m.status, "saved note 42") || !m.saved || m.failed {
		t.Fatalf("unexpected status %q", m.status)
	}
	if len(m.state.History) != 3 {
		t.Fatalf("expected draft, generated and edited history entries, got %+v", m.state.History)
	}
}

func TestModelGenerationFailureReturnsToDraft(t *testing.T) {
	t.Parallel()
	notes := &stubNotes{genErr: &domain.TransportError{Op: "generate", Err: errors.New("connection refused")}}
	m := newTestModel(t, notes)
	m = typeText(t, m, "pt calm")
	m, cmd := press(t, m, tea.KeyCtrlS)
	m = run(t, m, cmd)

	if m.state.Phase != string(domain.PhaseAwaitingInput) || m.state.HasNote {
		t.Fatalf("expected awaiting input after failure, got %+v", m.state)
	}
	if !m.failed || !strings.Contains(m.status, "generation failed") {
		t.Fatalf("expected error status, got %q", m.status)
	}
	if m.editor.Value() != "pt calm" {
		t.Fatalf("draft must survive a failure, got %q", m.editor.Value())
	}
}

func TestModelPickersUpdateDraft(t *testing.T) {
	t.Parallel()
	notes := &stubNotes{}
	m := newTestModel(t, notes)
	m, _ = press(t, m, tea.KeyTab)
	m, _ = press(t, m, tea.KeyRight)
	if m.state.Duration != "1 hour" || m.state.DurationMinutes != 60 {
		t.Fatalf("duration picker must update the draft, got %+v", m.state)
	}
	m, _ = press(t, m, tea.KeyTab)
	m, _ = press(t, m, tea.KeyLeft)
	if m.state.SessionType != "Other" {
		t.Fatalf("session type picker must wrap to last option, got %q", m.state.SessionType)
	}
	m, _ = press(t, m, tea.KeyTab)
	m = typeText(t, m, "x")
	m, cmd := press(t, m, tea.KeyCtrlS)
	_ = run(t, m, cmd)
	if len(notes.genReqs) != 1 || notes.genReqs[0].SessionDuration != 60 || notes.genReqs[0].SessionType != "Other" {
		t.Fatalf("unexpected request: %+v", notes.genReqs)
	}
}

func TestModelRejectsEmptyDraftLocally(t *testing.T) {
	t.Parallel()
	notes := &stubNotes{}
	m := newTestModel(t, notes)
	m, cmd := press(t, m, tea.KeyCtrlS)
	if cmd != nil || !m.failed {
		t.Fatalf("empty draft must not dispatch")
	}
	if len(notes.genReqs) != 0 {
		t.Fatalf("no generation expected")
	}
}

func TestModelRegenerateFromReview(t *testing.T) {
	t.Parallel()
	notes := &stubNotes{}
	m := newTestModel(t, notes)
	m = typeText(t, m, "pt calm")
	m, cmd := press(t, m, tea.KeyCtrlS)
	m = run(t, m, cmd)

	m, cmd = press(t, m, tea.KeyCtrlG)
	if cmd == nil || !strings.Contains(m.View(), "Generating...") {
		t.Fatalf("regenerate must dispatch from review")
	}
	m = run(t, m, cmd)
	if len(notes.genReqs) != 2 || notes.genReqs[1].Notes != "pt calm" {
		t.Fatalf("expected the stored draft to be resent, got %+v", notes.genReqs)
	}
	if len(m.state.History) != 4 {
		t.Fatalf("expected two draft/generated pairs, got %d entries", len(m.state.History))
	}
}

func TestModelKeepsLongNotesIntact(t *testing.T) {
	t.Parallel()
	lines := make([]string, 150)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	long := strings.Join(lines, "\n")
	notes := &stubNotes{note: long}
	m := newTestModel(t, notes)
	m = typeText(t, m, "pt talked at length")
	m, cmd := press(t, m, tea.KeyCtrlS)
	m = run(t, m, cmd)

	if m.editor.Value() != long || m.state.EditableNote != long {
		t.Fatalf("editor holds %d lines, controller %d, want 150",
			strings.Count(m.editor.Value(), "\n")+1, strings.Count(m.state.EditableNote, "\n")+1)
	}
	m, cmd = press(t, m, tea.KeyCtrlS)
	m = run(t, m, cmd)
	if len(notes.saved) != 1 || notes.saved[0] != long {
		t.Fatalf("saved note must match the generated note")
	}
	last := m.state.History[len(m.state.History)-1]
	if last.Kind != string(domain.HistoryEdited) || last.Text != long {
		t.Fatalf("unexpected last history entry kind=%s", last.Kind)
	}
}

func TestModelScrollsHistory(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, &stubNotes{})
	m, _ = press(t, m, tea.KeyCtrlR)
	entries := make([]notesdto.HistoryEntryOutput, 31)
	for i := range entries {
		entries[i] = notesdto.HistoryEntryOutput{Kind: "edited", Text: fmt.Sprintf("entry %d", i+1), At: time.Date(2026, 3, 4, 9, 30, i, 0, time.UTC)}
	}
	m.history.SetEntries(entries)
	bottom := m.history.View()
	if !strings.Contains(bottom, "entry 31") || strings.Contains(bottom, "entry 1\n") {
		t.Fatalf("history should open at the newest entries:\n%s", bottom)
	}

	m, _ = press(t, m, tea.KeyPgUp)
	if m.history.View() == bottom {
		t.Fatalf("pgup must scroll the history pane")
	}
	if m.editor.Value() != "" {
		t.Fatalf("scroll keys must not reach the editor, got %q", m.editor.Value())
	}
	m, _ = press(t, m, tea.KeyPgDown)
	if m.history.View() != bottom {
		t.Fatalf("pgdown must scroll back to the newest entries")
	}

	m = step(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if m.history.View() == bottom {
		t.Fatalf("mouse wheel must scroll the history pane")
	}
}
