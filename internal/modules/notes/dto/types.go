package dto

import "time"

type SubmitInput struct {
	Observation string
	Duration    string
	SessionType string
}

type SubmitOutput struct {
	NoteID          string
	GeneratedNote   string
	DurationMinutes int
}

type SaveInput struct {
	FinalNote string
}

type SaveOutput struct {
	NoteID  string
	Skipped bool
	Message string
}

type DraftInput struct {
	Observation string
	Duration    string
	SessionType string
}

type HistoryEntryOutput struct {
	Kind string
	Text string
	At   time.Time
}

type StateOutput struct {
	SessionID       string
	Phase           string
	Observation     string
	Duration        string
	DurationMinutes int
	SessionType     string
	HasNote         bool
	NoteID          string
	GeneratedNote   string
	EditableNote    string
	History         []HistoryEntryOutput
}

type DurationOutput struct {
	Label   string
	Minutes int
}

type CatalogOutput struct {
	Durations    []DurationOutput
	SessionTypes []string
}
