package prayer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/sabros/sabr-backend/internal/domain"
	"github.com/sabros/sabr-backend/internal/service/prayer/praytime"
)

// Times returns the prayer times for the civil date of in.Date, read in the
// user's time zone, with manual overrides applied.
func (s *Service) Times(ctx context.Context, in TimesInput) (domain.PrayerTimeSet, error) {
	if err := in.Validate(); err != nil {
		return domain.PrayerTimeSet{}, err
	}

	settings, err := s.settings.PrayerSettings(ctx)
	if err != nil {
		return domain.PrayerTimeSet{}, fmt.Errorf("prayer.Times: load settings: %w", err)
	}

	calc, err := s.resolve(settings, in)
	if err != nil {
		return domain.PrayerTimeSet{}, fmt.Errorf("prayer.Times: %w", err)
	}

	set, err := s.calculate(ctx, calc)
	if errors.Is(err, domain.ErrUnknownMethod) {
		s.log.WarnContext(ctx, "unknown calculation method, falling back",
			slog.String("method", calc.Method.String()),
			slog.String("fallback", s.cfg.DefaultMethod.String()),
		)
		calc.Method = s.cfg.DefaultMethod
		set, err = s.calculate(ctx, calc)
	}
	if err != nil {
		return domain.PrayerTimeSet{}, fmt.Errorf("prayer.Times: %w", err)
	}

	for _, w := range praytime.Overlay(&set, settings.Overrides) {
		s.log.WarnContext(ctx, "invalid override ignored",
			slog.String("prayer", w.Prayer.String()),
			slog.String("value", w.Value),
			slog.String("error", w.Err.Error()),
		)
	}

	if missing := set.Unavailable(); len(missing) > 0 {
		s.log.InfoContext(ctx, "prayers without solution",
			slog.String("date", set.Date.Format(time.DateOnly)),
			slog.Any("prayers", missing),
		)
	}

	return set, nil
}

// resolve turns stored settings plus per-call input into engine input.
func (s *Service) resolve(settings domain.PrayerSettings, in TimesInput) (praytime.Input, error) {
	loc := settings.Location
	if in.Latitude != nil && in.Longitude != nil {
		loc = &domain.Location{Latitude: *in.Latitude, Longitude: *in.Longitude}
	}
	if loc == nil {
		return praytime.Input{}, domain.ErrMissingLocation
	}

	tz := s.cfg.DefaultTimeZone
	if settings.TimeZone != "" {
		l, err := time.LoadLocation(settings.TimeZone)
		if err != nil {
			return praytime.Input{}, domain.NewValidationError("time_zone", "unknown time zone "+settings.TimeZone)
		}
		tz = l
	}

	method := settings.Method
	if method == "" {
		method = s.cfg.DefaultMethod
	}
	madhab := settings.Madhab
	if madhab == "" {
		madhab = s.cfg.DefaultMadhab
	}
	rule := settings.HighLatitudeRule
	if rule == "" {
		rule = s.cfg.HighLatitudeRule
	}

	local := in.Date.In(tz)
	return praytime.Input{
		Date:             time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, tz),
		Location:         loc,
		TimeZone:         tz,
		Method:           method,
		Madhab:           madhab,
		HighLatitudeRule: rule,
	}, nil
}

// calculate returns the set without overrides, going through the cache when
// one is configured. Cache failures are logged and never fail the call.
func (s *Service) calculate(ctx context.Context, in praytime.Input) (domain.PrayerTimeSet, error) {
	if s.cache == nil {
		return praytime.Calculate(in)
	}

	key := cacheKey(in)
	if set, ok, err := s.cache.GetTimes(ctx, key); err != nil {
		s.log.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	} else if ok {
		return relocate(set, in.TimeZone), nil
	}

	set, err := praytime.Calculate(in)
	if err != nil {
		return domain.PrayerTimeSet{}, err
	}
	if err := s.cache.SetTimes(ctx, key, set); err != nil {
		s.log.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return set, nil
}

// cacheKey identifies a computed set: <date>:<lat>:<lon>:<tz>:<method>:<madhab>:<rule>.
func cacheKey(in praytime.Input) string {
	parts := []string{
		in.Date.Format(time.DateOnly),
		strconv.FormatFloat(in.Location.Latitude, 'f', 4, 64),
		strconv.FormatFloat(in.Location.Longitude, 'f', 4, 64),
		in.TimeZone.String(),
		string(in.Method),
		string(in.Madhab),
		string(in.HighLatitudeRule),
	}
	return strings.Join(parts, ":")
}

// relocate expresses every instant of a cached set in tz again; serialised
// times only keep their offset.
func relocate(set domain.PrayerTimeSet, tz *time.Location) domain.PrayerTimeSet {
	y, m, d := set.Date.Date()
	set.Date = time.Date(y, m, d, 0, 0, 0, 0, tz)
	set.TimeZone = tz.String()
	for i := range set.Times {
		var nse *domain.NoSolutionError
		if errors.As(set.Times[i].Err, &nse) {
			set.Times[i].Err = &domain.NoSolutionError{Prayer: nse.Prayer, Date: set.Date}
		}
		if !set.Times[i].At.IsZero() {
			set.Times[i].At = set.Times[i].At.In(tz)
		}
	}
	if set.Sunrise != nil {
		v := set.Sunrise.In(tz)
		set.Sunrise = &v
	}
	if set.Sunset != nil {
		v := set.Sunset.In(tz)
		set.Sunset = &v
	}
	return set
}
