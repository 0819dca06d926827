package sm2

import (
	"cmp"
	"slices"
	"time"

	"github.com/sabros/sabr-backend/internal/domain"
)

// DueForRevision returns the ranges whose next revision date falls on or
// before asOf's calendar day, oldest first, then by surah and first ayah.
// The input slice is not modified.
func DueForRevision(ranges []domain.MemorizedRange, asOf time.Time) []domain.MemorizedRange {
	cutoff := dayKey(asOf)

	due := make([]domain.MemorizedRange, 0, len(ranges))
	for _, r := range ranges {
		if dayKey(r.NextRevisionDate) <= cutoff {
			due = append(due, r)
		}
	}

	slices.SortStableFunc(due, func(a, b domain.MemorizedRange) int {
		if c := cmp.Compare(dayKey(a.NextRevisionDate), dayKey(b.NextRevisionDate)); c != 0 {
			return c
		}
		if c := cmp.Compare(a.SurahNumber, b.SurahNumber); c != 0 {
			return c
		}
		return cmp.Compare(a.AyahFrom, b.AyahFrom)
	})

	return due
}

// dayKey orders calendar days as yyyymmdd, read in each value's own zone.
func dayKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
