package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "clinote/internal/platform/errors"
)

// SessionNote is one stored row of the reference service. UpdatedAt stays zero
// until a final note is written.
type SessionNote struct {
	ID              int64
	SessionDuration int
	SessionType     string
	DraftNote       string
	GeneratedNote   string
	FinalNote       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (n SessionNote) Finalized() bool {
	return !n.UpdatedAt.IsZero()
}

// ValidateDraft checks the fields a creation request must carry.
func ValidateDraft(duration int, sessionType, draft string) error {
	if duration <= 0 {
		return fmt.Errorf("%w: session_duration must be positive", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(sessionType) == "" {
		return fmt.Errorf("%w: session_type is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(draft) == "" {
		return fmt.Errorf("%w: notes is required", apperrors.ErrInvalidInput)
	}
	return nil
}

func ValidateFinal(finalNote string) error {
	if strings.TrimSpace(finalNote) == "" {
		return fmt.Errorf("%w: final_note is required", apperrors.ErrInvalidInput)
	}
	return nil
}
