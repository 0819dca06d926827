package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabros/sabr-backend/internal/adapter/cache/testhelper"
	"github.com/sabros/sabr-backend/internal/domain"
)

func polarSet() domain.PrayerTimeSet {
	tz := time.FixedZone("CEST", 2*3600)
	date := time.Date(2024, 6, 21, 0, 0, 0, 0, tz)
	noon := time.Date(2024, 6, 21, 12, 57, 3, 0, tz)
	set := domain.PrayerTimeSet{
		Date:     date,
		Location: domain.Location{Latitude: 78.22, Longitude: 15.65},
		TimeZone: "Arctic/Longyearbyen",
		Method:   domain.MethodMuslimWorldLeague,
		Madhab:   domain.MadhabStandard,
	}
	for i, name := range domain.PrayerNames() {
		set.Times[i].Name = name
		set.Times[i].Err = &domain.NoSolutionError{Prayer: name, Date: date}
	}
	set.Times[1] = domain.PrayerTime{Name: domain.PrayerDhuhr, At: noon}
	set.Times[2] = domain.PrayerTime{Name: domain.PrayerAsr, At: noon.Add(5*time.Hour + 40*time.Minute)}
	return set
}

func TestWireSet_KeepsNoSolution(t *testing.T) {
	t.Parallel()

	in := polarSet()
	sunrise := time.Date(2024, 6, 21, 3, 0, 0, 0, time.UTC)
	in.Sunrise = &sunrise

	out, err := fromDomain(in).toDomain()
	require.NoError(t, err)

	assert.Equal(t, "2024-06-21", out.Date.Format(time.DateOnly))
	assert.Equal(t, in.Location, out.Location)
	assert.Equal(t, in.Method, out.Method)
	assert.Equal(t, []domain.PrayerName{domain.PrayerFajr, domain.PrayerMaghrib, domain.PrayerIsha}, out.Unavailable())
	assert.ErrorIs(t, out.Times[0].Err, domain.ErrNoSolution)
	assert.True(t, out.Times[1].At.Equal(in.Times[1].At))
	assert.True(t, out.Sunrise.Equal(sunrise))
	assert.Nil(t, out.Sunset)
}

func TestWireSet_BadDate(t *testing.T) {
	t.Parallel()

	_, err := wireSet{Date: "21/06/2024"}.toDomain()
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// Redis integration (skipped with -short)
// ---------------------------------------------------------------------------

func TestTimesCache_Redis(t *testing.T) {
	rdb := testhelper.SetupTestRedis(t)
	ctx := context.Background()
	c := NewTimesCache(rdb, time.Hour)

	const key = "2024-06-21:78.2200:15.6500:Arctic/Longyearbyen:MuslimWorldLeague:Standard:MiddleOfTheNight"

	_, ok, err := c.GetTimes(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok, "empty cache must miss")

	want := polarSet()
	require.NoError(t, c.SetTimes(ctx, key, want))

	got, ok, err := c.GetTimes(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want.Unavailable(), got.Unavailable())
	assert.True(t, got.Times[2].At.Equal(want.Times[2].At))

	ttl, err := rdb.TTL(ctx, timesPrefix+key).Result()
	require.NoError(t, err)
	assert.True(t, ttl > 0 && ttl <= time.Hour, "ttl = %s", ttl)

	require.NoError(t, rdb.Set(ctx, timesPrefix+"broken", "{not json", 0).Err())
	_, _, err = c.GetTimes(ctx, "broken")
	assert.Error(t, err)
}
