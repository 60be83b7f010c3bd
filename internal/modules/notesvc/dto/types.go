package dto

import "time"

type CreateInput struct {
	SessionDuration int
	SessionType     string
	Notes           string
}

type CreateOutput struct {
	NoteID        int64
	GeneratedNote string
}

type FinalizeInput struct {
	NoteID    int64
	FinalNote string
}

type FinalizeOutput struct {
	NoteID    int64
	FinalNote string
	UpdatedAt time.Time
}

type NoteOutput struct {
	NoteID          int64
	SessionDuration int
	SessionType     string
	DraftNote       string
	GeneratedNote   string
	FinalNote       string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
