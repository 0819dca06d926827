package prayer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabros/sabr-backend/internal/domain"
)

func TestTimesInput_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		in        TimesInput
		wantField string
	}{
		{"date only", TimesInput{Date: time.Now()}, ""},
		{"with coordinates", TimesInput{Date: time.Now(), Latitude: ptr(51.5), Longitude: ptr(-0.12)}, ""},
		{"no date", TimesInput{}, "date"},
		{"longitude only", TimesInput{Date: time.Now(), Longitude: ptr(3.0)}, "location"},
		{"latitude out of range", TimesInput{Date: time.Now(), Latitude: ptr(91.0), Longitude: ptr(0.0)}, "latitude"},
		{"longitude out of range", TimesInput{Date: time.Now(), Latitude: ptr(0.0), Longitude: ptr(-181.0)}, "longitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.in.Validate()
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve), "err = %v", err)
			assert.Equal(t, tt.wantField, ve.Errors[0].Field)
		})
	}
}

func TestUpdateSettingsInput_Validate(t *testing.T) {
	t.Parallel()

	valid := UpdateSettingsInput{
		Latitude:         ptr(21.4225),
		Longitude:        ptr(39.8262),
		TimeZone:         ptr("Asia/Riyadh"),
		Method:           ptr("UmmAlQura"),
		Madhab:           ptr("Standard"),
		HighLatitudeRule: ptr("SeventhOfTheNight"),
		Overrides:        map[domain.PrayerName]string{domain.PrayerIsha: "21:00"},
	}
	require.NoError(t, valid.Validate())
	require.NoError(t, UpdateSettingsInput{}.Validate())

	err := UpdateSettingsInput{HighLatitudeRule: ptr("AngleBased")}.Validate()
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestLogPrayerInput_Validate(t *testing.T) {
	t.Parallel()

	ok := LogPrayerInput{Date: time.Now(), Prayer: "FAJR", Status: "qada"}
	require.NoError(t, ok.Validate())

	err := LogPrayerInput{Prayer: "fajr", Status: "on_time"}.Validate()
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Errors, 2)
}
