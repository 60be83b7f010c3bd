package usecase

import (
	"context"

	"clinote/internal/modules/notes/domain"
	notesdto "clinote/internal/modules/notes/dto"
	notesin "clinote/internal/modules/notes/port/in"
	"clinote/internal/modules/notes/service"
)

type Interactor struct {
	ctrl *service.Controller
}

func NewInteractor(ctrl *service.Controller) notesin.Usecase {
	return &Interactor{ctrl: ctrl}
}

func (i *Interactor) Submit(ctx context.Context, input notesdto.SubmitInput) (notesdto.SubmitOutput, error) {
	note, err := i.ctrl.SubmitDraft(ctx, input.Observation, domain.DurationLabel(input.Duration), input.SessionType)
	if err != nil {
		return notesdto.SubmitOutput{}, err
	}
	return notesdto.SubmitOutput{
		NoteID:          string(note.ID),
		GeneratedNote:   note.Text,
		DurationMinutes: i.ctrl.Snapshot().Draft.Minutes,
	}, nil
}

func (i *Interactor) Save(ctx context.Context, input notesdto.SaveInput) (notesdto.SaveOutput, error) {
	ack, err := i.ctrl.SaveFinalNote(ctx, input.FinalNote)
	if err != nil {
		return notesdto.SaveOutput{}, err
	}
	return notesdto.SaveOutput{NoteID: string(ack.NoteID), Skipped: ack.Skipped, Message: ack.Message}, nil
}

func (i *Interactor) EditDraft(_ context.Context, input notesdto.DraftInput) (notesdto.StateOutput, error) {
	snap, err := i.ctrl.EditDraft(input.Observation, domain.DurationLabel(input.Duration), input.SessionType)
	return i.toState(snap), err
}

func (i *Interactor) EditNote(_ context.Context, text string) (notesdto.StateOutput, error) {
	snap, err := i.ctrl.EditNote(text)
	return i.toState(snap), err
}

func (i *Interactor) State(_ context.Context) (notesdto.StateOutput, error) {
	return i.toState(i.ctrl.Snapshot()), nil
}

func (i *Interactor) Catalog(_ context.Context) (notesdto.CatalogOutput, error) {
	catalog := i.ctrl.Catalog()
	out := notesdto.CatalogOutput{SessionTypes: catalog.SessionTypes}
	for _, d := range catalog.Durations {
		out.Durations = append(out.Durations, notesdto.DurationOutput{Label: string(d.Label), Minutes: d.Minutes})
	}
	return out, nil
}

func (i *Interactor) toState(s domain.Snapshot) notesdto.StateOutput {
	out := notesdto.StateOutput{
		SessionID:       i.ctrl.SessionID(),
		Phase:           string(s.Phase),
		Observation:     s.Draft.Observation,
		Duration:        string(s.Draft.Duration),
		DurationMinutes: s.Draft.Minutes,
		SessionType:     s.Draft.SessionType,
		HasNote:         s.HasNote,
		NoteID:          string(s.Note.ID),
		GeneratedNote:   s.Note.Text,
		EditableNote:    s.Editable,
		History:         make([]notesdto.HistoryEntryOutput, 0, len(s.History)),
	}
	for _, h := range s.History {
		out.History = append(out.History, notesdto.HistoryEntryOutput{Kind: string(h.Kind), Text: h.Text, At: h.At})
	}
	return out
}
