package prayer

import (
	"time"

	"github.com/sabros/sabr-backend/internal/domain"
	"github.com/sabros/sabr-backend/internal/service/validate"
)

// TimesInput selects the civil date to compute. Latitude and Longitude,
// when both set, replace the stored location for this call only.
type TimesInput struct {
	Date      time.Time `json:"date"      validate:"required"`
	Latitude  *float64  `json:"latitude"  validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64  `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

// Validate validates the times input.
func (i TimesInput) Validate() error {
	if (i.Latitude == nil) != (i.Longitude == nil) {
		return domain.NewValidationError("location", "latitude and longitude must be given together")
	}
	return validate.Struct(i)
}

// UpdateSettingsInput holds parameters for the settings update operation.
// Nil fields are left unchanged.
type UpdateSettingsInput struct {
	Latitude         *float64 `json:"latitude"           validate:"omitempty,gte=-90,lte=90"`
	Longitude        *float64 `json:"longitude"          validate:"omitempty,gte=-180,lte=180"`
	City             *string  `json:"city"               validate:"omitempty,max=120"`
	Country          *string  `json:"country"            validate:"omitempty,max=120"`
	TimeZone         *string  `json:"time_zone"          validate:"omitempty,timezone"`
	Method           *string  `json:"method"             validate:"omitempty,oneof=MuslimWorldLeague ISNA Egyptian UmmAlQura Karachi Tehran Jafari Dubai Kuwait Qatar Singapore Turkey"`
	Madhab           *string  `json:"madhab"             validate:"omitempty,oneof=Standard Hanafi"`
	HighLatitudeRule *string  `json:"high_latitude_rule" validate:"omitempty,oneof=None MiddleOfTheNight SeventhOfTheNight TwilightAngle"`
	// Overrides entries with an empty value are removed.
	Overrides map[domain.PrayerName]string `json:"overrides"`
}

// Validate validates the update settings input.
func (i UpdateSettingsInput) Validate() error {
	if (i.Latitude == nil) != (i.Longitude == nil) {
		return domain.NewValidationError("location", "latitude and longitude must be given together")
	}
	for name := range i.Overrides {
		if !name.IsValid() {
			return domain.NewValidationError("overrides", "unknown prayer "+string(name))
		}
	}
	return validate.Struct(i)
}

// LogPrayerInput holds parameters for recording a performed prayer.
type LogPrayerInput struct {
	Date         time.Time `json:"date"   validate:"required"`
	Prayer       string    `json:"prayer" validate:"required,oneof=FAJR DHUHR ASR MAGHRIB ISHA"`
	Status       string    `json:"status" validate:"required,oneof=pending on_time late missed qada"`
	Jamaah       bool      `json:"jamaah"`
	SunnahBefore bool      `json:"sunnah_before"`
	SunnahAfter  bool      `json:"sunnah_after"`
	Notes        string    `json:"notes"  validate:"max=500"`
}

// Validate validates the log prayer input.
func (i LogPrayerInput) Validate() error {
	return validate.Struct(i)
}
