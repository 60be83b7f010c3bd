package out

import (
	"context"

	"clinote/internal/modules/notes/domain"
)

type GenerateRequest struct {
	SessionDuration int
	SessionType     string
	Notes           string
}

type GenerateResult struct {
	GeneratedNote string
	NoteID        domain.NoteID
}

// NoteService is the remote generation and persistence service. Implementations
// return *domain.TransportError or *domain.ServiceError on failure.
type NoteService interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error)
	Save(ctx context.Context, id domain.NoteID, finalNote string) (domain.Acknowledgement, error)
}

type FailureEvent struct {
	SessionID string
	Op        string
	Phase     domain.Phase
	NoteID    domain.NoteID
	Err       error
}

// Reporter receives failed remote calls. It must not block.
type Reporter interface {
	Report(ctx context.Context, event FailureEvent)
}

type CatalogStore interface {
	Load(ctx context.Context) (domain.Catalog, error)
}
