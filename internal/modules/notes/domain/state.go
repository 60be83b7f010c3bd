package domain

import (
	"strings"
	"time"
)

// Phase is the lifecycle state of a note session. Exactly one phase holds at a time.
type Phase string

const (
	PhaseAwaitingInput Phase = "awaiting_input"
	PhaseGenerating    Phase = "generating"
	PhaseReviewing     Phase = "reviewing"
	PhaseSaving        Phase = "saving"
)

// Pending reports whether a remote call is outstanding.
func (p Phase) Pending() bool {
	return p == PhaseGenerating || p == PhaseSaving
}

// NoteID is assigned by the generation service. The empty value means absent.
type NoteID string

func (id NoteID) Known() bool { return id != "" }

type HistoryKind string

const (
	HistoryDraft     HistoryKind = "draft"
	HistoryGenerated HistoryKind = "generated"
	HistoryEdited    HistoryKind = "edited"
)

type HistoryEntry struct {
	Text string
	Kind HistoryKind
	At   time.Time
}

type Draft struct {
	Observation string
	Duration    DurationLabel
	Minutes     int
	SessionType string
}

type GeneratedNote struct {
	Text string
	ID   NoteID
}

type Acknowledgement struct {
	NoteID  NoteID
	Skipped bool
	Message string
	Raw     []byte
}

// Snapshot is the whole session state. Transitions return a new value and never
// mutate the receiver; History is reallocated on every append so snapshots never
// share a writable backing array.
type Snapshot struct {
	Phase    Phase
	Draft    Draft
	Note     GeneratedNote
	HasNote  bool
	Editable string
	History  []HistoryEntry
}

func NewSnapshot(draft Draft) Snapshot {
	return Snapshot{Phase: PhaseAwaitingInput, Draft: draft}
}

func (s Snapshot) Clone() Snapshot {
	s.History = append([]HistoryEntry(nil), s.History...)
	return s
}

func (s Snapshot) WithDraft(draft Draft) (Snapshot, error) {
	if s.Phase != PhaseAwaitingInput {
		return s, ErrDraftLocked
	}
	s.Draft = draft
	return s, nil
}

func (s Snapshot) WithEditable(text string) (Snapshot, error) {
	if s.Phase != PhaseReviewing && s.Phase != PhaseSaving {
		return s, ErrNotReviewing
	}
	s.Editable = text
	return s, nil
}

func (s Snapshot) BeginGenerate(draft Draft) (Snapshot, error) {
	if err := s.guardPending(); err != nil {
		return s, err
	}
	if strings.TrimSpace(draft.Observation) == "" {
		return s, ErrEmptyDraft
	}
	if strings.TrimSpace(draft.SessionType) == "" {
		return s, ErrEmptySessionType
	}
	s.Draft = draft
	s.Phase = PhaseGenerating
	return s, nil
}

// CompleteGenerate records the draft and the generated text as one pair.
func (s Snapshot) CompleteGenerate(note GeneratedNote, at time.Time) Snapshot {
	s.Note = note
	s.HasNote = true
	s.Editable = note.Text
	s.Phase = PhaseReviewing
	s.History = appendHistory(s.History,
		HistoryEntry{Text: s.Draft.Observation, Kind: HistoryDraft, At: at},
		HistoryEntry{Text: note.Text, Kind: HistoryGenerated, At: at},
	)
	return s
}

// FailGenerate restores the phase the session had before the request.
func (s Snapshot) FailGenerate() Snapshot {
	if s.HasNote {
		s.Phase = PhaseReviewing
	} else {
		s.Phase = PhaseAwaitingInput
	}
	return s
}

// BeginSave reports ok=false without changing anything when there is nothing to
// save: empty text or no identifier yet. That check wins over an in-flight
// request, so a save during the first generation is a no-op rather than an error.
func (s Snapshot) BeginSave(text string) (next Snapshot, ok bool, err error) {
	if strings.TrimSpace(text) == "" || !s.HasNote || !s.Note.ID.Known() {
		return s, false, nil
	}
	if err := s.guardPending(); err != nil {
		return s, false, err
	}
	s.Editable = text
	s.Phase = PhaseSaving
	return s, true, nil
}

// CompleteSave appends the text that was submitted, which can differ from the
// current editable text if the user kept typing while the save was in flight.
func (s Snapshot) CompleteSave(submitted string, at time.Time) Snapshot {
	s.Phase = PhaseReviewing
	s.History = appendHistory(s.History, HistoryEntry{Text: submitted, Kind: HistoryEdited, At: at})
	return s
}

func (s Snapshot) FailSave() Snapshot {
	s.Phase = PhaseReviewing
	return s
}

func (s Snapshot) guardPending() error {
	switch s.Phase {
	case PhaseGenerating:
		return ErrGenerationInFlight
	case PhaseSaving:
		return ErrSaveInFlight
	}
	return nil
}

func appendHistory(history []HistoryEntry, entries ...HistoryEntry) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(history)+len(entries))
	out = append(out, history...)
	return append(out, entries...)
}
