package out

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"clinote/internal/modules/notes/domain"
	notesout "clinote/internal/modules/notes/port/out"
)

type ZerologReporter struct {
	log zerolog.Logger
}

func NewZerologReporter(log zerolog.Logger) notesout.Reporter {
	return &ZerologReporter{log: log.With().Str("component", "notes").Logger()}
}

func (r *ZerologReporter) Report(_ context.Context, event notesout.FailureEvent) {
	e := r.log.Error().
		Err(event.Err).
		Str("op", event.Op).
		Str("session_id", event.SessionID).
		Str("phase", string(event.Phase)).
		Str("kind", domain.ErrorKind(event.Err))
	if event.NoteID.Known() {
		e = e.Str("note_id", string(event.NoteID))
	}
	var se *domain.ServiceError
	if errors.As(event.Err, &se) {
		e = e.Int("status", se.Status).Str("detail", se.Detail)
	}
	e.Msg("note service call failed")
}
