package service

import (
	"context"
	"fmt"
	"strings"

	"clinote/internal/modules/notesvc/domain"
	notesvcout "clinote/internal/modules/notesvc/port/out"
	"clinote/internal/platform/clock"
	apperrors "clinote/internal/platform/errors"
)

type NoteService struct {
	clock     clock.Clock
	store     notesvcout.NoteStore
	generator notesvcout.Generator
}

func NewNoteService(clock clock.Clock, store notesvcout.NoteStore, generator notesvcout.Generator) *NoteService {
	return &NoteService{clock: clock, store: store, generator: generator}
}

// Create generates a clinical note for draft and stores both. Nothing is stored
// when generation fails.
func (s *NoteService) Create(ctx context.Context, duration int, sessionType, draft string) (domain.SessionNote, error) {
	sessionType = strings.TrimSpace(sessionType)
	if err := domain.ValidateDraft(duration, sessionType, draft); err != nil {
		return domain.SessionNote{}, err
	}
	generated, err := s.generator.Generate(ctx, draft)
	if err != nil {
		return domain.SessionNote{}, fmt.Errorf("%w: %w", apperrors.ErrGeneration, err)
	}
	note := domain.SessionNote{
		SessionDuration: duration,
		SessionType:     sessionType,
		DraftNote:       draft,
		GeneratedNote:   generated,
		CreatedAt:       s.clock.Now(),
	}
	id, err := s.store.Create(ctx, note)
	if err != nil {
		return domain.SessionNote{}, err
	}
	note.ID = id
	return note, nil
}

func (s *NoteService) Finalize(ctx context.Context, id int64, finalNote string) (domain.SessionNote, error) {
	if err := domain.ValidateFinal(finalNote); err != nil {
		return domain.SessionNote{}, err
	}
	now := s.clock.Now()
	if err := s.store.UpdateFinal(ctx, id, finalNote, now); err != nil {
		return domain.SessionNote{}, err
	}
	return s.store.Get(ctx, id)
}

func (s *NoteService) Get(ctx context.Context, id int64) (domain.SessionNote, error) {
	return s.store.Get(ctx, id)
}
