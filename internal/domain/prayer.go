package domain

import (
	"fmt"
	"math"
	"time"
)

// Location is a point on the earth in decimal degrees.
// Callers pass *Location; nil means "no coordinates".
type Location struct {
	Latitude  float64 `json:"latitude"  yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Validate checks the coordinate ranges. NaN and infinite values are rejected.
func (l Location) Validate() error {
	var errs []FieldError
	if !inRange(l.Latitude, 90) {
		errs = append(errs, FieldError{Field: "latitude", Message: "must be between -90 and 90"})
	}
	if !inRange(l.Longitude, 180) {
		errs = append(errs, FieldError{Field: "longitude", Message: "must be between -180 and 180"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

func inRange(v, limit float64) bool {
	return !math.IsNaN(v) && v >= -limit && v <= limit
}

func (l Location) String() string {
	return fmt.Sprintf("%.4f,%.4f", l.Latitude, l.Longitude)
}

// ManualOverrides maps a prayer to a user-entered time of day ("13:30", "1:30 PM").
type ManualOverrides map[PrayerName]string

// PrayerTime is a single computed (or overridden) prayer instant.
// When Err is set the prayer has no time on that date and At is zero.
type PrayerTime struct {
	Name     PrayerName `json:"name"`
	At       time.Time  `json:"at"`
	Override string     `json:"override,omitempty"`
	Err      error      `json:"-"`
}

// Available reports whether the prayer has a usable instant.
func (p PrayerTime) Available() bool { return p.Err == nil && !p.At.IsZero() }

// Overridden reports whether At comes from a manual override.
func (p PrayerTime) Overridden() bool { return p.Override != "" }

// PrayerTimeSet holds the five prayers of one civil date, in fixed daily order.
type PrayerTimeSet struct {
	Date     time.Time         `json:"date"`
	Location Location          `json:"location"`
	TimeZone string            `json:"time_zone"`
	Method   CalculationMethod `json:"method"`
	Madhab   Madhab            `json:"madhab"`
	Sunrise  *time.Time        `json:"sunrise,omitempty"`
	Sunset   *time.Time        `json:"sunset,omitempty"`
	Times    [5]PrayerTime     `json:"times"`
}

// Get returns the entry for the given prayer.
func (s PrayerTimeSet) Get(name PrayerName) (PrayerTime, bool) {
	i := name.Index()
	if i < 0 {
		return PrayerTime{}, false
	}
	return s.Times[i], true
}

// Unavailable lists the prayers that have no time on this date.
func (s PrayerTimeSet) Unavailable() []PrayerName {
	var out []PrayerName
	for _, t := range s.Times {
		if !t.Available() {
			out = append(out, t.Name)
		}
	}
	return out
}

// NextPrayer is the "next prayer + countdown" projection. It is derived at
// read time and never stored.
type NextPrayer struct {
	Name      PrayerName    `json:"name"`
	At        time.Time     `json:"at"`
	Remaining time.Duration `json:"remaining"`
	Current   *PrayerName   `json:"current,omitempty"`
	InWindow  bool          `json:"in_window"`
}

// DisplayName returns the display name of the upcoming prayer.
func (n NextPrayer) DisplayName() string { return n.Name.DisplayName() }

// Countdown formats Remaining as HH:MM:SS. Negative durations render as 00:00:00.
func (n NextPrayer) Countdown() string {
	return FormatCountdown(n.Remaining)
}

// FormatCountdown renders d as HH:MM:SS, truncated to whole seconds.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// PrayerSettings is the per-user configuration consumed by the prayer engine.
type PrayerSettings struct {
	Location         *Location         `yaml:"location,omitempty"`
	City             string            `yaml:"city,omitempty"`
	Country          string            `yaml:"country,omitempty"`
	TimeZone         string            `yaml:"time_zone"`
	Method           CalculationMethod `yaml:"method"`
	Madhab           Madhab            `yaml:"madhab"`
	HighLatitudeRule HighLatitudeRule  `yaml:"high_latitude_rule,omitempty"`
	Overrides        ManualOverrides   `yaml:"overrides,omitempty"`
}

// PrayerEntry records how one prayer was performed on one day.
type PrayerEntry struct {
	Date         time.Time    `yaml:"date"`
	Prayer       PrayerName   `yaml:"prayer"`
	Status       PrayerStatus `yaml:"status"`
	Jamaah       bool         `yaml:"jamaah,omitempty"`
	SunnahBefore bool         `yaml:"sunnah_before,omitempty"`
	SunnahAfter  bool         `yaml:"sunnah_after,omitempty"`
	Notes        string       `yaml:"notes,omitempty"`
	RecordedAt   time.Time    `yaml:"recorded_at"`
}

// Validate checks the enum fields.
func (e PrayerEntry) Validate() error {
	var errs []FieldError
	if !e.Prayer.IsValid() {
		errs = append(errs, FieldError{Field: "prayer", Message: "must be one of FAJR, DHUHR, ASR, MAGHRIB, ISHA"})
	}
	if !e.Status.IsValid() {
		errs = append(errs, FieldError{Field: "status", Message: "must be one of pending, on_time, late, missed, qada"})
	}
	if e.Date.IsZero() {
		errs = append(errs, FieldError{Field: "date", Message: "required"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
