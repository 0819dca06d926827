// Package praytime computes the five daily prayer times for a location and
// date, and derives the next-prayer countdown from a computed set.
//
// Everything here is pure: no I/O, no clock reads, safe for concurrent use.
package praytime

import (
	"math"
	"time"

	"github.com/sabros/sabr-backend/internal/domain"
)

const (
	// sunriseAngle combines atmospheric refraction and the solar radius.
	sunriseAngle = 0.833

	refinePasses = 2
)

// Input describes one calculation.
type Input struct {
	// Date is read as a civil date (year, month, day); its clock and zone are ignored.
	Date             time.Time
	Location         *domain.Location
	TimeZone         *time.Location // nil means UTC
	Method           domain.CalculationMethod
	Madhab           domain.Madhab           // empty means Standard
	HighLatitudeRule domain.HighLatitudeRule // empty means MiddleOfTheNight
	Overrides        domain.ManualOverrides
}

// hours holds the raw event times in hours after local mean midnight.
// NaN marks an event that does not occur.
type hours struct {
	fajr, sunrise, dhuhr, asr, sunset, maghrib, isha float64
}

// Compute returns the prayer times for in.Date with manual overrides applied.
// Prayers whose solar event does not occur carry a *domain.NoSolutionError;
// malformed overrides are reported as warnings and leave the computed value.
func Compute(in Input) (domain.PrayerTimeSet, []OverrideWarning, error) {
	set, err := Calculate(in)
	if err != nil {
		return domain.PrayerTimeSet{}, nil, err
	}
	warnings := Overlay(&set, in.Overrides)
	return set, warnings, nil
}

// Calculate returns the astronomically computed times without overrides.
func Calculate(in Input) (domain.PrayerTimeSet, error) {
	if in.Location == nil {
		return domain.PrayerTimeSet{}, domain.ErrMissingLocation
	}
	if err := in.Location.Validate(); err != nil {
		return domain.PrayerTimeSet{}, err
	}
	params, err := Method(in.Method)
	if err != nil {
		return domain.PrayerTimeSet{}, err
	}

	madhab := in.Madhab
	if madhab == "" {
		madhab = domain.MadhabStandard
	}
	if !madhab.IsValid() {
		return domain.PrayerTimeSet{}, domain.NewValidationError("madhab", "must be Standard or Hanafi")
	}
	rule := in.HighLatitudeRule
	if rule == "" {
		rule = domain.HighLatitudeMiddleOfTheNight
	}
	if !rule.IsValid() {
		return domain.PrayerTimeSet{}, domain.NewValidationError("high_latitude_rule", "unknown rule")
	}

	tz := in.TimeZone
	if tz == nil {
		tz = time.UTC
	}

	y, m, d := in.Date.Date()
	lat, lon := in.Location.Latitude, in.Location.Longitude
	date := time.Date(y, m, d, 0, 0, 0, 0, tz)

	// The solar day starts at local mean midnight; pick the one that covers
	// the civil date in tz.
	base := time.Date(y, m, d+solarDayShift(date, lon), 0, 0, 0, 0, time.UTC)
	sy, sm, sd := base.Date()
	day := newSolarDay(sy, sm, sd, lat, lon)

	h := computeHours(day, params, madhab.ShadowFactor())
	adjustHighLatitude(&h, params, rule)

	instant := func(t float64) (time.Time, bool) {
		if math.IsNaN(t) {
			return time.Time{}, false
		}
		utc := t - lon/15
		return base.Add(time.Duration(utc * float64(time.Hour))).Round(time.Second).In(tz), true
	}

	set := domain.PrayerTimeSet{
		Date:     date,
		Location: *in.Location,
		TimeZone: tz.String(),
		Method:   in.Method,
		Madhab:   madhab,
	}
	if at, ok := instant(h.sunrise); ok {
		set.Sunrise = &at
	}
	if at, ok := instant(h.sunset); ok {
		set.Sunset = &at
	}

	raw := [5]float64{h.fajr, h.dhuhr, h.asr, h.maghrib, h.isha}
	for i, name := range domain.PrayerNames() {
		pt := domain.PrayerTime{Name: name}
		if at, ok := instant(raw[i]); ok {
			pt.At = at
		} else {
			pt.Err = &domain.NoSolutionError{Prayer: name, Date: date}
		}
		set.Times[i] = pt
	}

	return set, nil
}

// solarDayShift returns how many days the local mean day for lon must move
// to line up with the civil day of date. It is 0 unless the zone offset
// differs from lon/15 by about a day, as around the date line.
func solarDayShift(date time.Time, lon float64) int {
	noon := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, date.Location())
	_, offset := noon.Zone()
	return -int(math.Round((float64(offset)/3600 - lon/15) / 24))
}

// computeHours evaluates every event from rough initial guesses, then
// re-evaluates once using the first results as the new estimates.
func computeHours(day solarDay, p MethodParams, shadow float64) hours {
	est := hours{fajr: 5, sunrise: 6, dhuhr: 12, asr: 13, sunset: 18, maghrib: 18, isha: 18}

	var h hours
	for pass := 0; pass < refinePasses; pass++ {
		h.fajr = day.sunAngleTime(p.FajrAngle, est.fajr, true)
		h.sunrise = day.sunAngleTime(sunriseAngle, est.sunrise, true)
		h.dhuhr = day.midDay(est.dhuhr) + p.DhuhrMinutes/60
		h.asr = day.asrTime(shadow, est.asr)
		h.sunset = day.sunAngleTime(sunriseAngle, est.sunset, false)

		if p.MaghribAngle > 0 {
			h.maghrib = day.sunAngleTime(p.MaghribAngle, est.maghrib, false)
		} else {
			h.maghrib = h.sunset
		}
		if p.IshaMinutes > 0 {
			h.isha = h.maghrib + p.IshaMinutes/60
		} else {
			h.isha = day.sunAngleTime(p.IshaAngle, est.isha, false)
		}

		est = refine(est, h)
	}
	return h
}

func refine(est, h hours) hours {
	pick := func(old, v float64) float64 {
		if math.IsNaN(v) {
			return old
		}
		return v
	}
	return hours{
		fajr:    pick(est.fajr, h.fajr),
		sunrise: pick(est.sunrise, h.sunrise),
		dhuhr:   pick(est.dhuhr, h.dhuhr),
		asr:     pick(est.asr, h.asr),
		sunset:  pick(est.sunset, h.sunset),
		maghrib: pick(est.maghrib, h.maghrib),
		isha:    pick(est.isha, h.isha),
	}
}

// adjustHighLatitude bounds the twilight prayers to a portion of the night.
// Without both sunrise and sunset there is no night to divide, so missing
// prayers stay missing.
func adjustHighLatitude(h *hours, p MethodParams, rule domain.HighLatitudeRule) {
	if rule == domain.HighLatitudeNone || math.IsNaN(h.sunrise) || math.IsNaN(h.sunset) {
		return
	}
	night := fixHour(h.sunrise - h.sunset)

	if limit := nightPortion(rule, p.FajrAngle) * night; math.IsNaN(h.fajr) || h.sunrise-h.fajr > limit {
		h.fajr = h.sunrise - limit
	}
	if p.MaghribAngle > 0 {
		if limit := nightPortion(rule, p.MaghribAngle) * night; math.IsNaN(h.maghrib) || h.maghrib-h.sunset > limit {
			h.maghrib = h.sunset + limit
		}
	}
	if p.IshaMinutes > 0 {
		if !math.IsNaN(h.maghrib) {
			h.isha = h.maghrib + p.IshaMinutes/60
		}
		return
	}
	if limit := nightPortion(rule, p.IshaAngle) * night; math.IsNaN(h.isha) || h.isha-h.sunset > limit {
		h.isha = h.sunset + limit
	}
}

func nightPortion(rule domain.HighLatitudeRule, angle float64) float64 {
	switch rule {
	case domain.HighLatitudeSeventhOfTheNight:
		return 1.0 / 7
	case domain.HighLatitudeTwilightAngle:
		return angle / 60
	default:
		return 0.5
	}
}
