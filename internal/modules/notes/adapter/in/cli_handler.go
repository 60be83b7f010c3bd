package in

import (
	"context"

	notesdto "clinote/internal/modules/notes/dto"
	notesin "clinote/internal/modules/notes/port/in"
)

type CLIHandler struct {
	usecase notesin.Usecase
}

func NewCLIHandler(usecase notesin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Submit(ctx context.Context, observation, duration, sessionType string) (notesdto.SubmitOutput, error) {
	return h.usecase.Submit(ctx, notesdto.SubmitInput{Observation: observation, Duration: duration, SessionType: sessionType})
}

func (h CLIHandler) Save(ctx context.Context, finalNote string) (notesdto.SaveOutput, error) {
	return h.usecase.Save(ctx, notesdto.SaveInput{FinalNote: finalNote})
}

func (h CLIHandler) EditDraft(ctx context.Context, observation, duration, sessionType string) (notesdto.StateOutput, error) {
	return h.usecase.EditDraft(ctx, notesdto.DraftInput{Observation: observation, Duration: duration, SessionType: sessionType})
}

func (h CLIHandler) EditNote(ctx context.Context, text string) (notesdto.StateOutput, error) {
	return h.usecase.EditNote(ctx, text)
}

func (h CLIHandler) State(ctx context.Context) (notesdto.StateOutput, error) {
	return h.usecase.State(ctx)
}

func (h CLIHandler) Catalog(ctx context.Context) (notesdto.CatalogOutput, error) {
	return h.usecase.Catalog(ctx)
}
