package quran

import (
	"time"

	"github.com/google/uuid"

	"github.com/sabros/sabr-backend/internal/domain"
	"github.com/sabros/sabr-backend/internal/service/validate"
)

// AddRangeInput holds the parameters for recording a newly memorized range.
type AddRangeInput struct {
	Surah    int `json:"surah"     validate:"required,min=1,max=114"`
	AyahFrom int `json:"ayah_from" validate:"required,min=1"`
	AyahTo   int `json:"ayah_to"   validate:"required,gtefield=AyahFrom"`
	// MemorizedOn defaults to today.
	MemorizedOn time.Time `json:"memorized_on"`
}

// Validate checks the tags first, then the verse count of the surah.
func (i AddRangeInput) Validate() error {
	if err := validate.Struct(i); err != nil {
		return err
	}
	return domain.MemorizedRange{SurahNumber: i.Surah, AyahFrom: i.AyahFrom, AyahTo: i.AyahTo}.Validate()
}

// ReviewInput holds the parameters for revising a range.
// The rating is range-checked by the scheduler, not here.
type ReviewInput struct {
	RangeID    uuid.UUID
	Rating     domain.QualityRating
	OccurredAt time.Time // zero means now
}

// Validate checks all fields and collects all errors.
func (i ReviewInput) Validate() error {
	var errs []domain.FieldError

	if i.RangeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "range_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
