package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SurahCount is the number of surahs in the mushaf.
const SurahCount = 114

// ayahCounts holds the verse count of each surah (Hafs numbering), index 0 = surah 1.
var ayahCounts = [SurahCount]int{
	7, 286, 200, 176, 120, 165, 206, 75, 129, 109, 123, 111, 43, 52, 99, 128, 111, 110, 98, 135,
	112, 78, 118, 64, 77, 227, 93, 88, 69, 60, 34, 30, 73, 54, 45, 83, 182, 88, 75, 85,
	54, 53, 89, 59, 37, 35, 38, 29, 18, 45, 60, 49, 62, 55, 78, 96, 29, 22, 24, 13,
	14, 11, 11, 18, 12, 12, 30, 52, 52, 44, 28, 28, 20, 56, 40, 31, 50, 40, 46, 42,
	29, 19, 36, 25, 22, 17, 19, 26, 30, 20, 15, 21, 11, 8, 8, 19, 5, 8, 8, 11,
	11, 8, 3, 9, 5, 4, 7, 3, 6, 3, 5, 4, 5, 6,
}

// AyahCount returns the number of verses in the given surah, or 0 if out of range.
func AyahCount(surah int) int {
	if surah < 1 || surah > SurahCount {
		return 0
	}
	return ayahCounts[surah-1]
}

// MemorizedRange is a contiguous span of verses the user has memorized,
// together with its spaced-repetition state.
type MemorizedRange struct {
	ID                  uuid.UUID     `yaml:"id"`
	SurahNumber         int           `yaml:"surah"`
	AyahFrom            int           `yaml:"ayah_from"`
	AyahTo              int           `yaml:"ayah_to"`
	LastRevisedDate     *time.Time    `yaml:"last_revised,omitempty"`
	NextRevisionDate    time.Time     `yaml:"next_revision"`
	QualityRating       QualityRating `yaml:"quality,omitempty"`
	RepetitionCount     int           `yaml:"repetitions"`
	CurrentIntervalDays int           `yaml:"interval_days"`
	EaseFactor          float64       `yaml:"ease_factor,omitempty"`
	CreatedAt           time.Time     `yaml:"created_at"`
}

// Label renders the range as "2:255" or "67:1-30".
func (r MemorizedRange) Label() string {
	if r.AyahFrom == r.AyahTo {
		return fmt.Sprintf("%d:%d", r.SurahNumber, r.AyahFrom)
	}
	return fmt.Sprintf("%d:%d-%d", r.SurahNumber, r.AyahFrom, r.AyahTo)
}

// Validate checks the verse span against the surah table.
func (r MemorizedRange) Validate() error {
	var errs []FieldError

	count := AyahCount(r.SurahNumber)
	if count == 0 {
		errs = append(errs, FieldError{Field: "surah", Message: fmt.Sprintf("must be between 1 and %d", SurahCount)})
	}
	if r.AyahFrom < 1 {
		errs = append(errs, FieldError{Field: "ayah_from", Message: "must be >= 1"})
	}
	if r.AyahTo < r.AyahFrom {
		errs = append(errs, FieldError{Field: "ayah_to", Message: "must be >= ayah_from"})
	}
	if count > 0 && r.AyahTo > count {
		errs = append(errs, FieldError{Field: "ayah_to", Message: fmt.Sprintf("surah %d has %d ayat", r.SurahNumber, count)})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// RevisionEvent is a single review of a memorized range. It is consumed
// immediately to update the range and is not stored on its own.
type RevisionEvent struct {
	RangeID    uuid.UUID
	Rating     QualityRating
	OccurredAt time.Time
}
