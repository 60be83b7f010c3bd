package domain

import (
	"errors"
	"testing"
)

func TestDefaultCatalogDurationTable(t *testing.T) {
	t.Parallel()
	want := map[DurationLabel]int{
		"30 mins":   30,
		"1 hour":    60,
		"1.5 hours": 90,
		"2 hours":   120,
		"2.5 hours": 150,
		"3 hours":   180,
		"3+ hours":  200,
	}
	catalog := DefaultCatalog()
	if err := catalog.Validate(); err != nil {
		t.Fatalf("default catalog must validate: %v", err)
	}
	if len(catalog.Durations) != len(want) {
		t.Fatalf("expected %d durations, got %d", len(want), len(catalog.Durations))
	}
	for label, minutes := range want {
		got, err := catalog.Minutes(label)
		if err != nil {
			t.Fatalf("minutes for %q: %v", label, err)
		}
		if got != minutes {
			t.Fatalf("expected %q -> %d, got %d", label, minutes, got)
		}
	}
	if catalog.DefaultDuration() != "30 mins" || catalog.DefaultSessionType() != "Therapy" {
		t.Fatalf("unexpected defaults: %q %q", catalog.DefaultDuration(), catalog.DefaultSessionType())
	}
}

func TestCatalogRejectsUnknownLabel(t *testing.T) {
	t.Parallel()
	if _, err := DefaultCatalog().Minutes("45 mins"); !errors.Is(err, ErrUnknownDuration) {
		t.Fatalf("expected unknown duration error, got %v", err)
	}
}

func TestCatalogValidate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		catalog Catalog
	}{
		{name: "empty", catalog: Catalog{}},
		{name: "no session types", catalog: Catalog{Durations: []Duration{{Label: "x", Minutes: 1}}, SessionTypes: []string{}}},
		{name: "blank label", catalog: Catalog{Durations: []Duration{{Label: " ", Minutes: 10}}, SessionTypes: []string{"Therapy"}}},
		{name: "zero minutes", catalog: Catalog{Durations: []Duration{{Label: "x", Minutes: 0}}, SessionTypes: []string{"Therapy"}}},
		{name: "duplicate label", catalog: Catalog{Durations: []Duration{{Label: "x", Minutes: 1}, {Label: "x", Minutes: 2}}, SessionTypes: []string{"Therapy"}}},
		{name: "blank type", catalog: Catalog{Durations: []Duration{{Label: "x", Minutes: 1}}, SessionTypes: []string{""}}},
		{name: "duplicate type", catalog: Catalog{Durations: []Duration{{Label: "x", Minutes: 1}}, SessionTypes: []string{"Other", "Other"}}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if err := tc.catalog.Validate(); !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("expected invalid catalog, got %v", err)
			}
		})
	}
}

func TestCatalogCloneIsIndependent(t *testing.T) {
	t.Parallel()
	original := DefaultCatalog()
	clone := original.Clone()
	clone.Durations[0].Minutes = 999
	clone.SessionTypes[0] = "Changed"
	if original.Durations[0].Minutes != 30 || original.SessionTypes[0] != "Therapy" {
		t.Fatalf("clone must not alias the original: %+v", original)
	}
}
