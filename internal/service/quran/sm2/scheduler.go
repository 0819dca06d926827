// Package sm2 schedules Qur'an revision with the SuperMemo-2 algorithm.
//
// All functions are pure: they take the current state and an instant and
// return a new state. Persistence is the caller's concern.
package sm2

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/sabros/sabr-backend/internal/domain"
)

// Parameters tunes the scheduler.
type Parameters struct {
	InitialEase    float64
	MinEase        float64
	FirstInterval  int
	SecondInterval int
	// PassThreshold is the lowest rating that counts as a successful recall.
	PassThreshold domain.QualityRating
}

// DefaultParameters returns the classic SM-2 constants.
func DefaultParameters() Parameters {
	return Parameters{
		InitialEase:    2.5,
		MinEase:        1.3,
		FirstInterval:  1,
		SecondInterval: 6,
		PassThreshold:  3,
	}
}

// NewRange returns a freshly memorized range, due for its first revision on
// the day it was learned.
func NewRange(id uuid.UUID, surah, from, to int, learnedAt time.Time) domain.MemorizedRange {
	return domain.MemorizedRange{
		ID:               id,
		SurahNumber:      surah,
		AyahFrom:         from,
		AyahTo:           to,
		NextRevisionDate: civilDate(learnedAt),
		CreatedAt:        learnedAt,
	}
}

// ScheduleNext applies one revision to r and returns the updated range.
// An out-of-range rating returns r unchanged with an *domain.InvalidRatingError.
func ScheduleNext(p Parameters, r domain.MemorizedRange, rating domain.QualityRating, occurredAt time.Time) (domain.MemorizedRange, error) {
	if !rating.IsValid() {
		return r, &domain.InvalidRatingError{Rating: rating}
	}

	ease := r.EaseFactor
	if ease == 0 {
		ease = p.InitialEase
	}

	next := r
	if rating < p.PassThreshold {
		next.RepetitionCount = 0
		next.CurrentIntervalDays = p.FirstInterval
	} else {
		ease = updateEase(ease, rating, p.MinEase)
		next.RepetitionCount = r.RepetitionCount + 1

		switch next.RepetitionCount {
		case 1:
			next.CurrentIntervalDays = p.FirstInterval
		case 2:
			next.CurrentIntervalDays = p.SecondInterval
		default:
			next.CurrentIntervalDays = growInterval(r.CurrentIntervalDays, ease)
		}
	}

	revised := occurredAt
	next.EaseFactor = ease
	next.QualityRating = rating
	next.LastRevisedDate = &revised
	next.NextRevisionDate = civilDate(occurredAt).AddDate(0, 0, next.CurrentIntervalDays)

	return next, nil
}

// updateEase applies EF' = EF + (0.1 - (5-q)(0.08 + (5-q)0.02)), floored at
// minEase and rounded to two decimals.
func updateEase(ease float64, q domain.QualityRating, minEase float64) float64 {
	d := float64(5 - q)
	ease += 0.1 - d*(0.08+d*0.02)
	ease = math.Round(ease*100) / 100
	if ease < minEase {
		return minEase
	}
	return ease
}

// growInterval multiplies the previous interval by the ease factor and
// rounds up. The epsilon keeps exact products such as 6*2.5 from rounding
// up because of float error.
func growInterval(prev int, ease float64) int {
	if prev < 1 {
		prev = 1
	}
	days := int(math.Ceil(float64(prev)*ease - 1e-9))
	if days < 1 {
		return 1
	}
	return days
}

// civilDate truncates t to midnight of its calendar day, in t's own zone.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
