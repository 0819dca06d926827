package quran

import (
	"context"
	"fmt"
	"time"
)

// Summary counts ranges for the daily digest.
type Summary struct {
	Total        int
	Due          int
	Overdue      int
	RevisedToday int
}

// Summary reports how many ranges are due on now's calendar day, how many of
// those were due on an earlier day, and how many were revised today.
func (s *Service) Summary(ctx context.Context, now time.Time) (Summary, error) {
	ranges, err := s.ranges.ListRanges(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("quran.Summary: %w", err)
	}

	dayStart := DayStart(now, s.tz)
	nextDay := NextDayStart(now, s.tz)

	sum := Summary{Total: len(ranges)}
	for _, r := range ranges {
		if r.NextRevisionDate.Before(nextDay) {
			sum.Due++
			if r.NextRevisionDate.Before(dayStart) {
				sum.Overdue++
			}
		}
		if r.LastRevisedDate != nil && !r.LastRevisedDate.Before(dayStart) && r.LastRevisedDate.Before(nextDay) {
			sum.RevisedToday++
		}
	}
	return sum, nil
}
