package prayer

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	"github.com/sabros/sabr-backend/internal/domain"
)

// Settings returns the stored prayer settings.
func (s *Service) Settings(ctx context.Context) (domain.PrayerSettings, error) {
	settings, err := s.settings.PrayerSettings(ctx)
	if err != nil {
		return domain.PrayerSettings{}, fmt.Errorf("prayer.Settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings applies the non-nil fields of in and stores the result.
func (s *Service) UpdateSettings(ctx context.Context, in UpdateSettingsInput) (domain.PrayerSettings, error) {
	if err := in.Validate(); err != nil {
		return domain.PrayerSettings{}, err
	}

	settings, err := s.settings.PrayerSettings(ctx)
	if err != nil {
		return domain.PrayerSettings{}, fmt.Errorf("prayer.UpdateSettings: load: %w", err)
	}

	if in.Latitude != nil && in.Longitude != nil {
		settings.Location = &domain.Location{Latitude: *in.Latitude, Longitude: *in.Longitude}
	}
	if in.City != nil {
		settings.City = *in.City
	}
	if in.Country != nil {
		settings.Country = *in.Country
	}
	if in.TimeZone != nil {
		settings.TimeZone = *in.TimeZone
	}
	if in.Method != nil {
		settings.Method = domain.CalculationMethod(*in.Method)
	}
	if in.Madhab != nil {
		settings.Madhab = domain.Madhab(*in.Madhab)
	}
	if in.HighLatitudeRule != nil {
		settings.HighLatitudeRule = domain.HighLatitudeRule(*in.HighLatitudeRule)
	}
	if len(in.Overrides) > 0 {
		merged := maps.Clone(settings.Overrides)
		if merged == nil {
			merged = domain.ManualOverrides{}
		}
		for name, v := range in.Overrides {
			if v == "" {
				delete(merged, name)
			} else {
				merged[name] = v
			}
		}
		settings.Overrides = merged
	}

	if err := s.settings.SavePrayerSettings(ctx, settings); err != nil {
		return domain.PrayerSettings{}, fmt.Errorf("prayer.UpdateSettings: save: %w", err)
	}

	s.log.InfoContext(ctx, "prayer settings updated",
		slog.String("method", settings.Method.String()),
		slog.String("time_zone", settings.TimeZone),
	)
	return settings, nil
}
