package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"clinote/internal/modules/notesvc/domain"
	"clinote/internal/modules/notesvc/service"
	"clinote/internal/platform/clock"
	apperrors "clinote/internal/platform/errors"
)

type fakeStore struct {
	notes map[int64]domain.SessionNote
	next  int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{notes: map[int64]domain.SessionNote{}}
}

func (f *fakeStore) Create(_ context.Context, note domain.SessionNote) (int64, error) {
	f.next++
	note.ID = f.next
	f.notes[note.ID] = note
	return note.ID, nil
}

func (f *fakeStore) Get(_ context.Context, id int64) (domain.SessionNote, error) {
	n, ok := f.notes[id]
	if !ok {
		return domain.SessionNote{}, fmt.Errorf("session note %d: %w", id, apperrors.ErrNotFound)
	}
	return n, nil
}

func (f *fakeStore) UpdateFinal(_ context.Context, id int64, finalNote string, at time.Time) error {
	n, ok := f.notes[id]
	if !ok {
		return fmt.Errorf("session note %d: %w", id, apperrors.ErrNotFound)
	}
	n.FinalNote = finalNote
	n.UpdatedAt = at
	f.notes[id] = n
	return nil
}

func (f *fakeStore) Close() error { return nil }

type fakeGenerator struct {
	err    error
	drafts []string
}

func (f *fakeGenerator) Generate(_ context.Context, draft string) (string, error) {
	f.drafts = append(f.drafts, draft)
	if f.err != nil {
		return "", f.err
	}
	return "Processed: " + draft, nil
}

var fixedNow = time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

func fixedClock() clock.Clock {
	return clock.Func(func() time.Time { return fixedNow })
}

func TestCreateGeneratesAndStores(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	gen := &fakeGenerator{}
	svc := service.NewNoteService(fixedClock(), store, gen)

	note, err := svc.Create(context.Background(), 60, " Therapy ", "pt reports better sleep")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if note.ID != 1 || note.GeneratedNote != "Processed: pt reports better sleep" {
		t.Fatalf("unexpected note: %+v", note)
	}
	if note.SessionType != "Therapy" || !note.CreatedAt.Equal(fixedNow) || note.Finalized() {
		t.Fatalf("unexpected stored fields: %+v", note)
	}
	if got := store.notes[1].DraftNote; got != "pt reports better sleep" {
		t.Fatalf("draft not stored: %q", got)
	}
}

func TestCreateRejectsInvalidDraftWithoutGenerating(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{}
	svc := service.NewNoteService(fixedClock(), newFakeStore(), gen)
	if _, err := svc.Create(context.Background(), 60, "Therapy", "   "); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if len(gen.drafts) != 0 {
		t.Fatalf("generator must not be called for invalid drafts")
	}
}

func TestCreateGenerationFailureStoresNothing(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	cause := errors.New("quota exceeded")
	svc := service.NewNoteService(fixedClock(), store, &fakeGenerator{err: cause})

	_, err := svc.Create(context.Background(), 30, "Other", "x")
	if !errors.Is(err, apperrors.ErrGeneration) || !errors.Is(err, cause) {
		t.Fatalf("expected generation error wrapping cause, got %v", err)
	}
	if len(store.notes) != 0 {
		t.Fatalf("nothing may be stored on failure")
	}
}

func TestFinalizeUpdatesFinalNote(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	svc := service.NewNoteService(fixedClock(), store, &fakeGenerator{})
	created, _ := svc.Create(context.Background(), 90, "Assessment", "draft")

	note, err := svc.Finalize(context.Background(), created.ID, "Follow-up in 2 weeks.")
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if note.FinalNote != "Follow-up in 2 weeks." || !note.UpdatedAt.Equal(fixedNow) {
		t.Fatalf("unexpected note: %+v", note)
	}
}

func TestFinalizeErrors(t *testing.T) {
	t.Parallel()
	svc := service.NewNoteService(fixedClock(), newFakeStore(), &fakeGenerator{})
	if _, err := svc.Finalize(context.Background(), 7, "text"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Finalize(context.Background(), 7, ""); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
