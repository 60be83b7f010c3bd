package out

import (
	"context"
	"time"

	notesvcout "clinote/internal/modules/notesvc/port/out"
)

type MockGenerator struct {
	delay time.Duration
}

// NewMockGenerator echoes drafts back after delay, standing in for a model.
func NewMockGenerator(delay time.Duration) notesvcout.Generator {
	return &MockGenerator{delay: delay}
}

func (g *MockGenerator) Generate(ctx context.Context, draft string) (string, error) {
	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return "Processed: " + draft, nil
}
