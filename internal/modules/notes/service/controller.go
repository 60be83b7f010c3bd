package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"clinote/internal/modules/notes/domain"
	notesout "clinote/internal/modules/notes/port/out"
	"clinote/internal/platform/clock"
	"clinote/internal/platform/id"
)

// Controller owns the lifecycle of one clinical note session. State is held as a
// single snapshot that is swapped under mu; mu is never held across a remote call.
type Controller struct {
	mu        sync.Mutex
	state     domain.Snapshot
	sessionID string
	catalog   domain.Catalog
	notes     notesout.NoteService
	reporter  notesout.Reporter
	clock     clock.Clock
}

func NewController(catalog domain.Catalog, notes notesout.NoteService, reporter notesout.Reporter, clk clock.Clock, ids id.Generator) (*Controller, error) {
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	if notes == nil {
		return nil, fmt.Errorf("note service is required")
	}
	catalog = catalog.Clone()
	initial := domain.Draft{
		Duration:    catalog.DefaultDuration(),
		SessionType: catalog.DefaultSessionType(),
	}
	initial.Minutes, _ = catalog.Minutes(initial.Duration)
	return &Controller{
		state:     domain.NewSnapshot(initial),
		sessionID: ids.New(),
		catalog:   catalog,
		notes:     notes,
		reporter:  reporter,
		clock:     clk,
	}, nil
}

func (c *Controller) SessionID() string { return c.sessionID }

func (c *Controller) Catalog() domain.Catalog { return c.catalog.Clone() }

func (c *Controller) Snapshot() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

func (c *Controller) History() []domain.HistoryEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.HistoryEntry(nil), c.state.History...)
}

// EditDraft replaces the draft while no note generation has started.
func (c *Controller) EditDraft(observation string, label domain.DurationLabel, sessionType string) (domain.Snapshot, error) {
	minutes, err := c.catalog.Minutes(label)
	if err != nil {
		return c.Snapshot(), err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := c.state.WithDraft(domain.Draft{
		Observation: observation,
		Duration:    label,
		Minutes:     minutes,
		SessionType: sessionType,
	})
	if err != nil {
		return c.state.Clone(), err
	}
	c.state = next
	return next.Clone(), nil
}

// EditNote updates the working copy of the generated note.
func (c *Controller) EditNote(text string) (domain.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := c.state.WithEditable(text)
	if err != nil {
		return c.state.Clone(), err
	}
	c.state = next
	return next.Clone(), nil
}

// SubmitDraft sends the observation to the generation service. The duration label
// is resolved before anything else so an unknown label never reaches the wire.
func (c *Controller) SubmitDraft(ctx context.Context, observation string, label domain.DurationLabel, sessionType string) (domain.GeneratedNote, error) {
	minutes, err := c.catalog.Minutes(label)
	if err != nil {
		return domain.GeneratedNote{}, err
	}
	draft := domain.Draft{
		Observation: observation,
		Duration:    label,
		Minutes:     minutes,
		SessionType: strings.TrimSpace(sessionType),
	}

	c.mu.Lock()
	next, err := c.state.BeginGenerate(draft)
	if err != nil {
		c.mu.Unlock()
		return domain.GeneratedNote{}, err
	}
	c.state = next
	c.mu.Unlock()

	res, err := c.notes.Generate(ctx, notesout.GenerateRequest{
		SessionDuration: minutes,
		SessionType:     draft.SessionType,
		Notes:           draft.Observation,
	})
	if err == nil && !res.NoteID.Known() {
		err = &domain.ServiceError{Op: "generate", Detail: domain.ErrMissingNoteID.Error()}
	}
	if err != nil {
		c.mu.Lock()
		c.state = c.state.FailGenerate()
		c.mu.Unlock()
		c.report(ctx, "generate", domain.PhaseGenerating, "", err)
		return domain.GeneratedNote{}, err
	}

	note := domain.GeneratedNote{Text: res.GeneratedNote, ID: res.NoteID}
	c.mu.Lock()
	c.state = c.state.CompleteGenerate(note, c.clock.Now())
	c.mu.Unlock()
	return note, nil
}

// SaveFinalNote persists text as the final note. With empty text or no identifier
// it returns a skipped acknowledgement without contacting the service.
func (c *Controller) SaveFinalNote(ctx context.Context, text string) (domain.Acknowledgement, error) {
	c.mu.Lock()
	next, ok, err := c.state.BeginSave(text)
	if err != nil || !ok {
		noteID := c.state.Note.ID
		c.mu.Unlock()
		return domain.Acknowledgement{NoteID: noteID, Skipped: err == nil}, err
	}
	c.state = next
	noteID := next.Note.ID
	c.mu.Unlock()

	ack, err := c.notes.Save(ctx, noteID, text)
	if err != nil {
		c.mu.Lock()
		c.state = c.state.FailSave()
		c.mu.Unlock()
		c.report(ctx, "save", domain.PhaseSaving, noteID, err)
		return domain.Acknowledgement{}, err
	}

	c.mu.Lock()
	c.state = c.state.CompleteSave(text, c.clock.Now())
	c.mu.Unlock()
	if !ack.NoteID.Known() {
		ack.NoteID = noteID
	}
	return ack, nil
}

func (c *Controller) report(ctx context.Context, op string, phase domain.Phase, noteID domain.NoteID, err error) {
	if c.reporter == nil {
		return
	}
	c.reporter.Report(ctx, notesout.FailureEvent{
		SessionID: c.sessionID,
		Op:        op,
		Phase:     phase,
		NoteID:    noteID,
		Err:       err,
	})
}
