package prayer

import (
	"context"
	"fmt"
	"time"

	"github.com/sabros/sabr-backend/internal/domain"
	"github.com/sabros/sabr-backend/internal/service/prayer/praytime"
)

// Next returns the upcoming prayer relative to now. After Isha it looks at
// the following civil date, and Isha stays current until then.
func (s *Service) Next(ctx context.Context, now time.Time) (domain.NextPrayer, error) {
	today, err := s.Times(ctx, TimesInput{Date: now})
	if err != nil {
		return domain.NextPrayer{}, fmt.Errorf("prayer.Next: %w", err)
	}
	if next, ok := praytime.NextPrayer(today, now); ok {
		return next, nil
	}

	tomorrow, err := s.Times(ctx, TimesInput{Date: today.Date.AddDate(0, 0, 1)})
	if err != nil {
		return domain.NextPrayer{}, fmt.Errorf("prayer.Next: %w", err)
	}
	next, ok := praytime.NextPrayer(tomorrow, now)
	if !ok {
		return domain.NextPrayer{}, fmt.Errorf("prayer.Next: no upcoming prayer on %s or %s: %w",
			today.Date.Format(time.DateOnly), tomorrow.Date.Format(time.DateOnly), domain.ErrNoSolution)
	}

	if last, ok := lastStarted(today, now); ok {
		next.Current = &last
		next.InWindow = true
	}
	return next, nil
}

// lastStarted returns the latest available prayer of set that began before now.
func lastStarted(set domain.PrayerTimeSet, now time.Time) (domain.PrayerName, bool) {
	var (
		name  domain.PrayerName
		at    time.Time
		found bool
	)
	for _, t := range set.Times {
		if t.Available() && t.At.Before(now) && (!found || !t.At.Before(at)) {
			name, at, found = t.Name, t.At, true
		}
	}
	return name, found
}
