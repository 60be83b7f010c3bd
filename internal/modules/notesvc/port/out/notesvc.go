package out

import (
	"context"
	"time"

	"clinote/internal/modules/notesvc/domain"
)

type NoteStore interface {
	// Create inserts note and returns the assigned id.
	Create(ctx context.Context, note domain.SessionNote) (int64, error)
	Get(ctx context.Context, id int64) (domain.SessionNote, error)
	UpdateFinal(ctx context.Context, id int64, finalNote string, at time.Time) error
	Close() error
}

// Generator turns a raw draft into a clinical note.
type Generator interface {
	Generate(ctx context.Context, draft string) (string, error)
}
