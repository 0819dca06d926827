package quran

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sabros/sabr-backend/internal/domain"
	"github.com/sabros/sabr-backend/internal/service/quran/sm2"
)

// AddRange records a newly memorized range, due for revision on the day it
// was learned.
func (s *Service) AddRange(ctx context.Context, in AddRangeInput) (domain.MemorizedRange, error) {
	if err := in.Validate(); err != nil {
		return domain.MemorizedRange{}, err
	}

	// A given date is a calendar day; keep it rather than shifting it into tz.
	learned := s.now().In(s.tz)
	if !in.MemorizedOn.IsZero() {
		y, m, d := in.MemorizedOn.Date()
		learned = time.Date(y, m, d, 0, 0, 0, 0, s.tz)
	}

	r := sm2.NewRange(uuid.New(), in.Surah, in.AyahFrom, in.AyahTo, learned)
	if err := s.ranges.SaveRange(ctx, r); err != nil {
		return domain.MemorizedRange{}, fmt.Errorf("quran.AddRange: %w", err)
	}

	s.log.InfoContext(ctx, "range added",
		slog.String("range_id", r.ID.String()),
		slog.String("range", r.Label()),
	)
	return r, nil
}

// Review applies one revision and stores the new schedule. Nothing is
// stored when the rating is rejected.
func (s *Service) Review(ctx context.Context, in ReviewInput) (domain.MemorizedRange, error) {
	if err := in.Validate(); err != nil {
		return domain.MemorizedRange{}, err
	}

	r, err := s.ranges.GetRange(ctx, in.RangeID)
	if err != nil {
		return domain.MemorizedRange{}, fmt.Errorf("quran.Review: get range: %w", err)
	}

	occurred := in.OccurredAt
	if occurred.IsZero() {
		occurred = s.now()
	}

	next, err := sm2.ScheduleNext(s.params, r, in.Rating, occurred.In(s.tz))
	if err != nil {
		return domain.MemorizedRange{}, fmt.Errorf("quran.Review: %w", err)
	}

	if err := s.ranges.SaveRange(ctx, next); err != nil {
		return domain.MemorizedRange{}, fmt.Errorf("quran.Review: save range: %w", err)
	}

	s.log.InfoContext(ctx, "range revised",
		slog.String("range_id", next.ID.String()),
		slog.String("range", next.Label()),
		slog.Int("rating", int(in.Rating)),
		slog.Int("old_interval", r.CurrentIntervalDays),
		slog.Int("new_interval", next.CurrentIntervalDays),
		slog.Float64("ease", next.EaseFactor),
		slog.String("next_revision", next.NextRevisionDate.Format(time.DateOnly)),
	)
	return next, nil
}

// Due returns the ranges to revise on asOf's calendar day in the service
// time zone, oldest first.
func (s *Service) Due(ctx context.Context, asOf time.Time) ([]domain.MemorizedRange, error) {
	ranges, err := s.ranges.ListRanges(ctx)
	if err != nil {
		return nil, fmt.Errorf("quran.Due: %w", err)
	}
	return sm2.DueForRevision(ranges, asOf.In(s.tz)), nil
}

// Ranges returns every stored range.
func (s *Service) Ranges(ctx context.Context) ([]domain.MemorizedRange, error) {
	ranges, err := s.ranges.ListRanges(ctx)
	if err != nil {
		return nil, fmt.Errorf("quran.Ranges: %w", err)
	}
	return ranges, nil
}
