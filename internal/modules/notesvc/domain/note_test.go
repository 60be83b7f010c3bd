package domain_test

import (
	"errors"
	"testing"
	"time"

	"clinote/internal/modules/notesvc/domain"
	apperrors "clinote/internal/platform/errors"
)

func TestValidateDraft(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name     string
		duration int
		typ      string
		draft    string
		ok       bool
	}{
		{name: "valid", duration: 60, typ: "Therapy", draft: "pt calm", ok: true},
		{name: "zero duration", duration: 0, typ: "Therapy", draft: "pt calm"},
		{name: "blank type", duration: 30, typ: "  ", draft: "pt calm"},
		{name: "blank draft", duration: 30, typ: "Other", draft: "\n"},
	}
	for _, tc := range cases {
		err := domain.ValidateDraft(tc.duration, tc.typ, tc.draft)
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("%s: expected invalid input, got %v", tc.name, err)
		}
	}
}

func TestValidateFinalAndFinalized(t *testing.T) {
	t.Parallel()
	if err := domain.ValidateFinal(" "); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	n := domain.SessionNote{ID: 1}
	if n.Finalized() {
		t.Fatalf("fresh note must not be finalized")
	}
	n.UpdatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	if !n.Finalized() {
		t.Fatalf("note with updated_at must be finalized")
	}
}
