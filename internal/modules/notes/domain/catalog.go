package domain

import (
	"fmt"
	"strings"
)

// DurationLabel is one of the fixed session length choices shown to the user.
type DurationLabel string

type Duration struct {
	Label   DurationLabel
	Minutes int
}

// Catalog is the static configuration injected into the controller: the closed
// duration table and the seeded session types.
type Catalog struct {
	Durations    []Duration
	SessionTypes []string
}

func DefaultCatalog() Catalog {
	return Catalog{
		Durations: []Duration{
			{Label: "30 mins", Minutes: 30},
			{Label: "1 hour", Minutes: 60},
			{Label: "1.5 hours", Minutes: 90},
			{Label: "2 hours", Minutes: 120},
			{Label: "2.5 hours", Minutes: 150},
			{Label: "3 hours", Minutes: 180},
			{Label: "3+ hours", Minutes: 200},
		},
		SessionTypes: []string{"Therapy", "Counseling", "Assessment", "Group Session", "Other"},
	}
}

func (c Catalog) Validate() error {
	if len(c.Durations) == 0 {
		return fmt.Errorf("%w: at least one duration is required", ErrInvalidCatalog)
	}
	seen := make(map[DurationLabel]struct{}, len(c.Durations))
	for _, d := range c.Durations {
		if strings.TrimSpace(string(d.Label)) == "" {
			return fmt.Errorf("%w: duration label is empty", ErrInvalidCatalog)
		}
		if d.Minutes <= 0 {
			return fmt.Errorf("%w: duration %q must have positive minutes", ErrInvalidCatalog, d.Label)
		}
		if _, dup := seen[d.Label]; dup {
			return fmt.Errorf("%w: duplicate duration %q", ErrInvalidCatalog, d.Label)
		}
		seen[d.Label] = struct{}{}
	}
	if len(c.SessionTypes) == 0 {
		return fmt.Errorf("%w: at least one session type is required", ErrInvalidCatalog)
	}
	types := make(map[string]struct{}, len(c.SessionTypes))
	for _, t := range c.SessionTypes {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("%w: session type is empty", ErrInvalidCatalog)
		}
		if _, dup := types[t]; dup {
			return fmt.Errorf("%w: duplicate session type %q", ErrInvalidCatalog, t)
		}
		types[t] = struct{}{}
	}
	return nil
}

// Minutes translates a label through the table. Unknown labels are programming
// errors on the caller side and are never sent to the service.
func (c Catalog) Minutes(label DurationLabel) (int, error) {
	for _, d := range c.Durations {
		if d.Label == label {
			return d.Minutes, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDuration, label)
}

func (c Catalog) Labels() []DurationLabel {
	out := make([]DurationLabel, 0, len(c.Durations))
	for _, d := range c.Durations {
		out = append(out, d.Label)
	}
	return out
}

func (c Catalog) DefaultDuration() DurationLabel {
	if len(c.Durations) == 0 {
		return ""
	}
	return c.Durations[0].Label
}

func (c Catalog) DefaultSessionType() string {
	if len(c.SessionTypes) == 0 {
		return ""
	}
	return c.SessionTypes[0]
}

// Clone returns a deep copy so callers cannot mutate the controller's tables.
func (c Catalog) Clone() Catalog {
	return Catalog{
		Durations:    append([]Duration(nil), c.Durations...),
		SessionTypes: append([]string(nil), c.SessionTypes...),
	}
}
