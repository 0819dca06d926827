package praytime

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sabros/sabr-backend/internal/domain"
)

// ErrBadTimeOfDay is wrapped by override parse failures.
var ErrBadTimeOfDay = errors.New("unrecognised time of day")

var timeOfDayLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3:04:05 PM",
}

// OverrideWarning reports a manual override that could not be applied.
type OverrideWarning struct {
	Prayer domain.PrayerName
	Value  string
	Err    error
}

func (w OverrideWarning) String() string {
	return fmt.Sprintf("override %s=%q ignored: %v", w.Prayer, w.Value, w.Err)
}

// ParseTimeOfDay accepts 24-hour ("13:30", "13:30:15") and 12-hour
// ("1:30 PM", "1:30pm") clock strings.
func ParseTimeOfDay(s string) (hour, minute, second int, err error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range timeOfDayLayouts {
		t, perr := time.Parse(layout, v)
		if perr == nil {
			return t.Hour(), t.Minute(), t.Second(), nil
		}
	}
	return 0, 0, 0, fmt.Errorf("%q: %w", s, ErrBadTimeOfDay)
}

// Overlay replaces computed instants with the user's manual overrides.
// A valid override wins even when the computed time had no solution.
// Blank values are ignored; everything else that does not parse is returned
// as a warning and the computed value is kept.
func Overlay(set *domain.PrayerTimeSet, overrides domain.ManualOverrides) []OverrideWarning {
	if len(overrides) == 0 {
		return nil
	}

	var warnings []OverrideWarning
	y, m, d := set.Date.Date()
	loc := set.Date.Location()

	for i, name := range domain.PrayerNames() {
		raw, ok := overrides[name]
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		hh, mm, ss, err := ParseTimeOfDay(raw)
		if err != nil {
			warnings = append(warnings, OverrideWarning{Prayer: name, Value: raw, Err: err})
			continue
		}
		set.Times[i].At = time.Date(y, m, d, hh, mm, ss, 0, loc)
		set.Times[i].Override = raw
		set.Times[i].Err = nil
	}

	var unknown []domain.PrayerName
	for name := range overrides {
		if !name.IsValid() {
			unknown = append(unknown, name)
		}
	}
	slices.Sort(unknown)
	for _, name := range unknown {
		warnings = append(warnings, OverrideWarning{
			Prayer: name,
			Value:  overrides[name],
			Err:    domain.NewValidationError("prayer", "unknown prayer name"),
		})
	}

	return warnings
}
