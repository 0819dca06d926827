package prayer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sabros/sabr-backend/internal/domain"
)

// LogPrayer records how one prayer was performed. A second record for the
// same date and prayer replaces the first.
func (s *Service) LogPrayer(ctx context.Context, in LogPrayerInput) (domain.PrayerEntry, error) {
	if err := in.Validate(); err != nil {
		return domain.PrayerEntry{}, err
	}

	y, m, d := in.Date.Date()
	entry := domain.PrayerEntry{
		Date:         time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Prayer:       domain.PrayerName(in.Prayer),
		Status:       domain.PrayerStatus(in.Status),
		Jamaah:       in.Jamaah,
		SunnahBefore: in.SunnahBefore,
		SunnahAfter:  in.SunnahAfter,
		Notes:        in.Notes,
		RecordedAt:   time.Now().UTC(),
	}
	if err := entry.Validate(); err != nil {
		return domain.PrayerEntry{}, err
	}

	if err := s.entries.SavePrayerEntry(ctx, entry); err != nil {
		return domain.PrayerEntry{}, fmt.Errorf("prayer.LogPrayer: %w", err)
	}

	s.log.InfoContext(ctx, "prayer logged",
		slog.String("date", entry.Date.Format(time.DateOnly)),
		slog.String("prayer", entry.Prayer.String()),
		slog.String("status", entry.Status.String()),
	)
	return entry, nil
}
