package profile

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/sabros/sabr-backend/internal/domain"
)

// UserID returns the profile's user ID, assigning one on first use.
func (s *Store) UserID(ctx context.Context) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.View(ctx, func(doc Document) error {
		id = doc.UserID
		return nil
	})
	if err != nil || id != uuid.Nil {
		return id, err
	}

	err = s.Update(ctx, func(doc *Document) error {
		if doc.UserID == uuid.Nil {
			doc.UserID = uuid.New()
		}
		id = doc.UserID
		return nil
	})
	return id, err
}

// ---------------------------------------------------------------------------
// Prayer settings
// ---------------------------------------------------------------------------

// PrayerSettings returns the stored settings; zero value when none are saved.
func (s *Store) PrayerSettings(ctx context.Context) (domain.PrayerSettings, error) {
	var out domain.PrayerSettings
	err := s.View(ctx, func(doc Document) error {
		out = doc.Settings
		return nil
	})
	return out, err
}

// SavePrayerSettings replaces the stored settings.
func (s *Store) SavePrayerSettings(ctx context.Context, settings domain.PrayerSettings) error {
	return s.Update(ctx, func(doc *Document) error {
		doc.Settings = settings
		return nil
	})
}

// ---------------------------------------------------------------------------
// Memorized ranges
// ---------------------------------------------------------------------------

// ListRanges returns all ranges in stored order.
func (s *Store) ListRanges(ctx context.Context) ([]domain.MemorizedRange, error) {
	var out []domain.MemorizedRange
	err := s.View(ctx, func(doc Document) error {
		out = doc.Ranges
		return nil
	})
	return out, err
}

// GetRange returns the range with the given ID or domain.ErrNotFound.
func (s *Store) GetRange(ctx context.Context, id uuid.UUID) (domain.MemorizedRange, error) {
	var out domain.MemorizedRange
	err := s.View(ctx, func(doc Document) error {
		i := slices.IndexFunc(doc.Ranges, func(r domain.MemorizedRange) bool { return r.ID == id })
		if i < 0 {
			return fmt.Errorf("range %s: %w", id, domain.ErrNotFound)
		}
		out = doc.Ranges[i]
		return nil
	})
	return out, err
}

// SaveRange inserts r or replaces the range with the same ID.
func (s *Store) SaveRange(ctx context.Context, r domain.MemorizedRange) error {
	return s.Update(ctx, func(doc *Document) error {
		i := slices.IndexFunc(doc.Ranges, func(x domain.MemorizedRange) bool { return x.ID == r.ID })
		if i < 0 {
			doc.Ranges = append(doc.Ranges, r)
		} else {
			doc.Ranges[i] = r
		}
		return nil
	})
}

// ---------------------------------------------------------------------------
// Prayer log
// ---------------------------------------------------------------------------

// SavePrayerEntry stores e, replacing an earlier entry for the same date and prayer.
func (s *Store) SavePrayerEntry(ctx context.Context, e domain.PrayerEntry) error {
	return s.Update(ctx, func(doc *Document) error {
		i := slices.IndexFunc(doc.PrayerLog, func(x domain.PrayerEntry) bool {
			return x.Prayer == e.Prayer && sameDay(x.Date, e.Date)
		})
		if i < 0 {
			doc.PrayerLog = append(doc.PrayerLog, e)
		} else {
			doc.PrayerLog[i] = e
		}
		return nil
	})
}

// PrayerLog returns the entries recorded for the calendar day of date, in
// daily prayer order.
func (s *Store) PrayerLog(ctx context.Context, date time.Time) ([]domain.PrayerEntry, error) {
	var out []domain.PrayerEntry
	err := s.View(ctx, func(doc Document) error {
		for _, e := range doc.PrayerLog {
			if sameDay(e.Date, date) {
				out = append(out, e)
			}
		}
		slices.SortFunc(out, func(a, b domain.PrayerEntry) int {
			return a.Prayer.Index() - b.Prayer.Index()
		})
		return nil
	})
	return out, err
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
