package usecase

import (
	"context"

	"clinote/internal/modules/notesvc/domain"
	notesvcdto "clinote/internal/modules/notesvc/dto"
	notesvcin "clinote/internal/modules/notesvc/port/in"
	"clinote/internal/modules/notesvc/service"
)

type Interactor struct {
	svc *service.NoteService
}

func NewInteractor(svc *service.NoteService) notesvcin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Create(ctx context.Context, input notesvcdto.CreateInput) (notesvcdto.CreateOutput, error) {
	note, err := i.svc.Create(ctx, input.SessionDuration, input.SessionType, input.Notes)
	if err != nil {
		return notesvcdto.CreateOutput{}, err
	}
	return notesvcdto.CreateOutput{NoteID: note.ID, GeneratedNote: note.GeneratedNote}, nil
}

func (i *Interactor) Finalize(ctx context.Context, input notesvcdto.FinalizeInput) (notesvcdto.FinalizeOutput, error) {
	note, err := i.svc.Finalize(ctx, input.NoteID, input.FinalNote)
	if err != nil {
		return notesvcdto.FinalizeOutput{}, err
	}
	return notesvcdto.FinalizeOutput{NoteID: note.ID, FinalNote: note.FinalNote, UpdatedAt: note.UpdatedAt}, nil
}

func (i *Interactor) Get(ctx context.Context, id int64) (notesvcdto.NoteOutput, error) {
	note, err := i.svc.Get(ctx, id)
	if err != nil {
		return notesvcdto.NoteOutput{}, err
	}
	return toNoteOutput(note), nil
}

func toNoteOutput(n domain.SessionNote) notesvcdto.NoteOutput {
	out := notesvcdto.NoteOutput{
		NoteID:          n.ID,
		SessionDuration: n.SessionDuration,
		SessionType:     n.SessionType,
		DraftNote:       n.DraftNote,
		GeneratedNote:   n.GeneratedNote,
		FinalNote:       n.FinalNote,
		CreatedAt:       n.CreatedAt,
	}
	if n.Finalized() {
		at := n.UpdatedAt
		out.UpdatedAt = &at
	}
	return out
}
