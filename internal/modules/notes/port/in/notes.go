package in

import (
	"context"

	"clinote/internal/modules/notes/dto"
)

type Usecase interface {
	Submit(ctx context.Context, input dto.SubmitInput) (dto.SubmitOutput, error)
	Save(ctx context.Context, input dto.SaveInput) (dto.SaveOutput, error)
	EditDraft(ctx context.Context, input dto.DraftInput) (dto.StateOutput, error)
	EditNote(ctx context.Context, text string) (dto.StateOutput, error)
	State(ctx context.Context) (dto.StateOutput, error)
	Catalog(ctx context.Context) (dto.CatalogOutput, error)
}
