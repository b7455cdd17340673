package daterange

import (
	"strings"
	"testing"
	"time"
)

var refDate = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestResolve_Presets(t *testing.T) {
	cases := []struct {
		preset    string
		wantStart string
		wantEnd   string
	}{
		{"last7", "2024-06-08", "2024-06-15"},
		{"last30", "2024-05-16", "2024-06-15"},
		{"last90", "2024-03-17", "2024-06-15"},
		{"last365", "2023-06-16", "2024-06-15"},
		{"mtd", "2024-06-01", "2024-06-15"},
		{"ytd", "2024-01-01", "2024-06-15"},
	}

	for _, tc := range cases {
		t.Run(tc.preset, func(t *testing.T) {
			r, err := Resolve(Options{Preset: tc.preset}, refDate)
			if err != nil {
				t.Fatalf("Resolve(%s): %v", tc.preset, err)
			}
			if r.Start != tc.wantStart || r.End != tc.wantEnd {
				t.Fatalf("Resolve(%s) = %s..%s, want %s..%s", tc.preset, r.Start, r.End, tc.wantStart, tc.wantEnd)
			}
			if r.Mode != Mode(tc.preset) {
				t.Fatalf("mode = %q, want %q", r.Mode, tc.preset)
			}
		})
	}
}

func TestResolve_LifetimeOverridesEverything(t *testing.T) {
	r, err := Resolve(Options{
		Lifetime:  true,
		Preset:    "last7",
		StartDate: "2020-01-01",
		EndDate:   "2020-02-01",
	}, refDate)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Start != LifetimeStart {
		t.Fatalf("start = %s, want %s", r.Start, LifetimeStart)
	}
	if r.End != "2024-06-15" {
		t.Fatalf("end = %s, want 2024-06-15", r.End)
	}
	if r.Mode != ModeLifetime {
		t.Fatalf("mode = %q, want lifetime", r.Mode)
	}
}

func TestResolve_ExplicitDefaults(t *testing.T) {
	r, err := Resolve(Options{}, refDate)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Start != "2024-05-16" || r.End != "2024-06-15" {
		t.Fatalf("defaults = %s..%s, want 2024-05-16..2024-06-15", r.Start, r.End)
	}
	if r.Mode != ModeCustom {
		t.Fatalf("mode = %q, want custom", r.Mode)
	}

	r, err = Resolve(Options{StartDate: "2024-01-10"}, refDate)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Start != "2024-01-10" || r.End != "2024-06-15" {
		t.Fatalf("explicit start = %s..%s", r.Start, r.End)
	}
}

func TestResolve_InvalidPresetListsChoices(t *testing.T) {
	_, err := Resolve(Options{Preset: "foo"}, refDate)
	if err == nil {
		t.Fatal("expected error for invalid preset")
	}
	for _, p := range ValidPresets {
		if !strings.Contains(err.Error(), string(p)) {
			t.Fatalf("error %q does not list preset %q", err, p)
		}
	}
}

func TestResolve_MalformedExplicitDates(t *testing.T) {
	if _, err := Resolve(Options{StartDate: "2024-13-40"}, refDate); err == nil {
		t.Fatal("expected error for malformed start date")
	}
	if _, err := Resolve(Options{EndDate: "not-a-date"}, refDate); err == nil {
		t.Fatal("expected error for malformed end date")
	}
}
