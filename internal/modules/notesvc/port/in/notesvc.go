package in

import (
	"context"

	notesvcdto "clinote/internal/modules/notesvc/dto"
)

type Usecase interface {
	Create(ctx context.Context, input notesvcdto.CreateInput) (notesvcdto.CreateOutput, error)
	Finalize(ctx context.Context, input notesvcdto.FinalizeInput) (notesvcdto.FinalizeOutput, error)
	Get(ctx context.Context, id int64) (notesvcdto.NoteOutput, error)
}
