// Package daterange resolves CLI date options into a concrete
// inclusive start/end pair for report queries.
package daterange

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateFormat is the calendar-date layout used everywhere: in flags, in the
// store's stat_date column, and in YouTube API query parameters.
const DateFormat = "2006-01-02"

// LifetimeStart is YouTube's public launch date. Lifetime collection always
// starts here regardless of the reference date.
const LifetimeStart = "2005-02-14"

// Preset is a named shorthand for a date range relative to today.
type Preset string

const (
	PresetLast7   Preset = "last7"
	PresetLast30  Preset = "last30"
	PresetLast90  Preset = "last90"
	PresetLast365 Preset = "last365"
	PresetMTD     Preset = "mtd"
	PresetYTD     Preset = "ytd"
)

var ValidPresets = []Preset{
	PresetLast7,
	PresetLast30,
	PresetLast90,
	PresetLast365,
	PresetMTD,
	PresetYTD,
}

// Mode labels the origin of a resolved range in the run summary.
type Mode string

const (
	ModeCustom   Mode = "custom"
	ModeLifetime Mode = "lifetime"
)

// Options describes the mutually exclusive range inputs from the CLI.
// Precedence: Lifetime > Preset > explicit StartDate/EndDate.
type Options struct {
	StartDate string
	EndDate   string
	Preset    string
	Lifetime  bool
}

// Range is a resolved inclusive calendar-date range.
type Range struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Mode  Mode   `json:"mode"`
}

func presetNames() string {
	names := make([]string, 0, len(ValidPresets))
	for _, p := range ValidPresets {
		names = append(names, string(p))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// Resolve turns Options into one concrete Range relative to today.
// Invalid presets and malformed explicit dates are configuration errors,
// reported before any network call is attempted.
func Resolve(opts Options, today time.Time) (Range, error) {
	end := today.Format(DateFormat)

	if opts.Lifetime {
		return Range{Start: LifetimeStart, End: end, Mode: ModeLifetime}, nil
	}

	if opts.Preset != "" {
		switch Preset(opts.Preset) {
		case PresetLast7:
			return Range{Start: today.AddDate(0, 0, -7).Format(DateFormat), End: end, Mode: Mode(PresetLast7)}, nil
		case PresetLast30:
			return Range{Start: today.AddDate(0, 0, -30).Format(DateFormat), End: end, Mode: Mode(PresetLast30)}, nil
		case PresetLast90:
			return Range{Start: today.AddDate(0, 0, -90).Format(DateFormat), End: end, Mode: Mode(PresetLast90)}, nil
		case PresetLast365:
			return Range{Start: today.AddDate(0, 0, -365).Format(DateFormat), End: end, Mode: Mode(PresetLast365)}, nil
		case PresetMTD:
			first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
			return Range{Start: first.Format(DateFormat), End: end, Mode: Mode(PresetMTD)}, nil
		case PresetYTD:
			first := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
			return Range{Start: first.Format(DateFormat), End: end, Mode: Mode(PresetYTD)}, nil
		default:
			return Range{}, fmt.Errorf("daterange: invalid range %q, use one of: %s", opts.Preset, presetNames())
		}
	}

	endDate := opts.EndDate
	if endDate == "" {
		endDate = end
	}
	startDate := opts.StartDate
	if startDate == "" {
		startDate = today.AddDate(0, 0, -30).Format(DateFormat)
	}

	// Validate format early, before anything talks to the network.
	if _, err := time.Parse(DateFormat, startDate); err != nil {
		return Range{}, fmt.Errorf("daterange: invalid start date %q: %w", startDate, err)
	}
	if _, err := time.Parse(DateFormat, endDate); err != nil {
		return Range{}, fmt.Errorf("daterange: invalid end date %q: %w", endDate, err)
	}

	return Range{Start: startDate, End: endDate, Mode: ModeCustom}, nil
}
