package praytime

import (
	"time"

	"github.com/sabros/sabr-backend/internal/domain"
)

// NextPrayer returns the first available prayer, in daily order, whose
// instant is at or after now. It returns false once Isha has begun; moving
// to the next day is up to the caller.
func NextPrayer(set domain.PrayerTimeSet, now time.Time) (domain.NextPrayer, bool) {
	var (
		next    *domain.PrayerTime
		current *domain.PrayerTime
	)

	for i := range set.Times {
		t := &set.Times[i]
		if !t.Available() {
			continue
		}
		if next == nil && !t.At.Before(now) {
			next = t
		}
		if t.At.Before(now) && (current == nil || !t.At.Before(current.At)) {
			current = t
		}
	}

	if next == nil {
		return domain.NextPrayer{}, false
	}

	out := domain.NextPrayer{
		Name:      next.Name,
		At:        next.At,
		Remaining: next.At.Sub(now),
	}
	if current != nil {
		name := current.Name
		out.Current = &name
		out.InWindow = windowOpen(set, name, now)
	}
	return out, true
}

// windowOpen reports whether the prayer that most recently began can still
// be performed at now. Fajr ends at sunrise; the others run until the next
// prayer begins, which NextPrayer has already established.
func windowOpen(set domain.PrayerTimeSet, current domain.PrayerName, now time.Time) bool {
	if current == domain.PrayerFajr && set.Sunrise != nil {
		return now.Before(*set.Sunrise)
	}
	return true
}
