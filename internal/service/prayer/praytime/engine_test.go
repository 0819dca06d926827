package praytime

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/sabros/sabr-backend/internal/domain"
)

var (
	london   = &domain.Location{Latitude: 51.5074, Longitude: -0.1278}
	makkah   = &domain.Location{Latitude: 21.4225, Longitude: 39.8262}
	svalbard = &domain.Location{Latitude: 78.22, Longitude: 15.65}
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("tzdata %s unavailable: %v", name, err)
	}
	return loc
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func assertNear(t *testing.T, label string, got time.Time, wantHH, wantMM int, tol time.Duration) {
	t.Helper()
	want := time.Date(got.Year(), got.Month(), got.Day(), wantHH, wantMM, 0, 0, got.Location())
	if diff := got.Sub(want); diff < -tol || diff > tol {
		t.Errorf("%s = %s, want %02d:%02d ±%s", label, got.Format("15:04:05 MST"), wantHH, wantMM, tol)
	}
}

func TestCompute_London_MWL(t *testing.T) {
	t.Parallel()
	tz := mustLoad(t, "Europe/London")

	set, warnings, err := Compute(Input{
		Date:     date(2024, 6, 1),
		Location: london,
		TimeZone: tz,
		Method:   domain.MethodMuslimWorldLeague,
		Madhab:   domain.MadhabStandard,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	dhuhr, _ := set.Get(domain.PrayerDhuhr)
	maghrib, _ := set.Get(domain.PrayerMaghrib)
	assertNear(t, "dhuhr", dhuhr.At, 12, 58, 2*time.Minute)
	assertNear(t, "maghrib", maghrib.At, 21, 8, 3*time.Minute)

	if name, _ := dhuhr.At.Zone(); name != "BST" {
		t.Errorf("dhuhr zone = %s, want BST", name)
	}

	// 18° is never reached in London in June; the default rule still yields a time.
	for i, p := range set.Times {
		if !p.Available() {
			t.Fatalf("%s unavailable: %v", p.Name, p.Err)
		}
		if i > 0 && !set.Times[i-1].At.Before(p.At) {
			t.Errorf("%s not after %s", p.Name, set.Times[i-1].Name)
		}
	}
}

func TestCompute_London_NoRule_TwilightMissing(t *testing.T) {
	t.Parallel()

	set, _, err := Compute(Input{
		Date:             date(2024, 6, 1),
		Location:         london,
		Method:           domain.MethodMuslimWorldLeague,
		HighLatitudeRule: domain.HighLatitudeNone,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := set.Unavailable()
	if len(got) != 2 || got[0] != domain.PrayerFajr || got[1] != domain.PrayerIsha {
		t.Errorf("unavailable = %v, want [FAJR ISHA]", got)
	}
}

func TestCompute_Makkah_UmmAlQura(t *testing.T) {
	t.Parallel()
	tz := mustLoad(t, "Asia/Riyadh")

	set, _, err := Compute(Input{
		Date:     date(2024, 6, 1),
		Location: makkah,
		TimeZone: tz,
		Method:   domain.MethodUmmAlQura,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dhuhr, _ := set.Get(domain.PrayerDhuhr)
	maghrib, _ := set.Get(domain.PrayerMaghrib)
	isha, _ := set.Get(domain.PrayerIsha)
	assertNear(t, "dhuhr", dhuhr.At, 12, 18, 2*time.Minute)
	assertNear(t, "maghrib", maghrib.At, 18, 59, 3*time.Minute)

	if gap := isha.At.Sub(maghrib.At); gap != 90*time.Minute {
		t.Errorf("isha - maghrib = %s, want 1h30m", gap)
	}
}

func TestCompute_Svalbard_PolarDay(t *testing.T) {
	t.Parallel()

	set, _, err := Compute(Input{
		Date:     date(2024, 6, 21),
		Location: svalbard,
		Method:   domain.MethodMuslimWorldLeague,
	})
	if err != nil {
		t.Fatalf("Compute must not fail on polar day: %v", err)
	}

	for _, name := range []domain.PrayerName{domain.PrayerFajr, domain.PrayerMaghrib, domain.PrayerIsha} {
		p, _ := set.Get(name)
		if p.Available() {
			t.Errorf("%s = %s, want no solution", name, p.At)
		}
		var nse *domain.NoSolutionError
		if !errors.As(p.Err, &nse) || nse.Prayer != name {
			t.Errorf("%s err = %v, want *NoSolutionError", name, p.Err)
		}
		if !errors.Is(p.Err, domain.ErrNoSolution) {
			t.Errorf("%s err does not wrap ErrNoSolution", name)
		}
	}
	for _, name := range []domain.PrayerName{domain.PrayerDhuhr, domain.PrayerAsr} {
		if p, _ := set.Get(name); !p.Available() {
			t.Errorf("%s unavailable: %v", name, p.Err)
		}
	}
	if set.Sunrise != nil || set.Sunset != nil {
		t.Error("sunrise/sunset must be nil during polar day")
	}
}

func TestCompute_Monotonic(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		loc  *domain.Location
		m    domain.CalculationMethod
	}{
		{"makkah", makkah, domain.MethodUmmAlQura},
		{"cairo", &domain.Location{Latitude: 30.0444, Longitude: 31.2357}, domain.MethodEgyptian},
		{"karachi", &domain.Location{Latitude: 24.8607, Longitude: 67.0011}, domain.MethodKarachi},
		{"jakarta", &domain.Location{Latitude: -6.2088, Longitude: 106.8456}, domain.MethodSingapore},
		{"new york", &domain.Location{Latitude: 40.7128, Longitude: -74.0060}, domain.MethodISNA},
		{"tehran", &domain.Location{Latitude: 35.6892, Longitude: 51.3890}, domain.MethodTehran},
	}

	for _, tc := range cases {
		for _, d := range []time.Time{date(2024, 1, 15), date(2024, 3, 20), date(2024, 6, 21), date(2024, 10, 1)} {
			set, _, err := Compute(Input{Date: d, Location: tc.loc, Method: tc.m})
			if err != nil {
				t.Fatalf("%s %s: %v", tc.name, d.Format(time.DateOnly), err)
			}
			for i := 1; i < len(set.Times); i++ {
				prev, cur := set.Times[i-1], set.Times[i]
				if !prev.Available() || !cur.Available() {
					t.Fatalf("%s %s: missing prayer", tc.name, d.Format(time.DateOnly))
				}
				if !prev.At.Before(cur.At) {
					t.Errorf("%s %s: %s (%s) not before %s (%s)", tc.name, d.Format(time.DateOnly),
						prev.Name, prev.At.Format(time.TimeOnly), cur.Name, cur.At.Format(time.TimeOnly))
				}
			}
			if set.Sunrise == nil || !set.Times[0].At.Before(*set.Sunrise) || !set.Sunrise.Before(set.Times[1].At) {
				t.Errorf("%s %s: sunrise not between fajr and dhuhr", tc.name, d.Format(time.DateOnly))
			}
		}
	}
}

func TestCompute_HanafiAsrLater(t *testing.T) {
	t.Parallel()

	in := Input{Date: date(2024, 1, 15), Location: london, Method: domain.MethodMuslimWorldLeague}
	std, _, err := Compute(in)
	if err != nil {
		t.Fatal(err)
	}
	in.Madhab = domain.MadhabHanafi
	hanafi, _, err := Compute(in)
	if err != nil {
		t.Fatal(err)
	}

	if !hanafi.Times[2].At.After(std.Times[2].At) {
		t.Errorf("hanafi asr %s should be after standard %s", hanafi.Times[2].At, std.Times[2].At)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if !hanafi.Times[i].At.Equal(std.Times[i].At) {
			t.Errorf("%s differs between madhabs", std.Times[i].Name)
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	t.Parallel()

	in := Input{Date: date(2024, 6, 1), Location: makkah, Method: domain.MethodUmmAlQura}
	a, _, _ := Compute(in)
	b, _, _ := Compute(in)
	for i := range a.Times {
		if !a.Times[i].At.Equal(b.Times[i].At) {
			t.Errorf("%s not deterministic", a.Times[i].Name)
		}
	}
}

func TestCompute_DateClockIgnored(t *testing.T) {
	t.Parallel()
	tz := mustLoad(t, "Asia/Riyadh")

	in := Input{Date: date(2024, 6, 1), Location: makkah, TimeZone: tz, Method: domain.MethodUmmAlQura}
	a, _, _ := Compute(in)
	in.Date = time.Date(2024, 6, 1, 23, 59, 0, 0, tz)
	b, _, _ := Compute(in)

	if !a.Times[1].At.Equal(b.Times[1].At) {
		t.Errorf("dhuhr depends on the clock part of Date: %s vs %s", a.Times[1].At, b.Times[1].At)
	}
	if !b.Date.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, tz)) {
		t.Errorf("set date = %s", b.Date)
	}
}

func TestCompute_TimesFallOnRequestedLocalDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		zone string
		loc  *domain.Location
	}{
		{"tonga", "Pacific/Tongatapu", &domain.Location{Latitude: -21.14, Longitude: -175.2}},
		{"samoa", "Pacific/Apia", &domain.Location{Latitude: -13.8333, Longitude: -171.7667}},
		{"kiritimati", "Pacific/Kiritimati", &domain.Location{Latitude: 1.87, Longitude: -157.4}},
		{"riyadh", "Asia/Riyadh", makkah},
		{"new york", "America/New_York", &domain.Location{Latitude: 40.7128, Longitude: -74.0060}},
	}

	for _, tc := range cases {
		tz := mustLoad(t, tc.zone)
		for _, d := range []time.Time{date(2024, 1, 15), date(2024, 6, 1)} {
			set, err := Calculate(Input{Date: d, Location: tc.loc, TimeZone: tz, Method: domain.MethodMuslimWorldLeague})
			if err != nil {
				t.Fatalf("%s: %v", tc.name, err)
			}
			want := d.Format(time.DateOnly)
			for _, p := range set.Times {
				if !p.Available() {
					t.Fatalf("%s %s: %s unavailable", tc.name, want, p.Name)
				}
				if got := p.At.In(tz).Format(time.DateOnly); got != want {
					t.Errorf("%s: %s falls on %s, want %s", tc.name, p.Name, got, want)
				}
			}
			for label, at := range map[string]*time.Time{"sunrise": set.Sunrise, "sunset": set.Sunset} {
				if at != nil && at.In(tz).Format(time.DateOnly) != want {
					t.Errorf("%s: %s falls on %s, want %s", tc.name, label, at.In(tz).Format(time.DateOnly), want)
				}
			}
		}
	}
}

func TestNextPrayer_DateLineZoneKeepsTheDay(t *testing.T) {
	t.Parallel()
	tz := mustLoad(t, "Pacific/Tongatapu")

	set, err := Calculate(Input{
		Date:     date(2024, 6, 1),
		Location: &domain.Location{Latitude: -21.14, Longitude: -175.2},
		TimeZone: tz,
		Method:   domain.MethodMuslimWorldLeague,
	})
	if err != nil {
		t.Fatal(err)
	}

	got, ok := NextPrayer(set, time.Date(2024, 6, 1, 10, 0, 0, 0, tz))
	if !ok {
		t.Fatal("expected a next prayer")
	}
	if got.Name != domain.PrayerDhuhr {
		t.Errorf("next = %s at %s, want DHUHR", got.Name, got.At)
	}
	if got.Remaining > 4*time.Hour {
		t.Errorf("remaining = %s, want under 4h", got.Remaining)
	}
}

func TestSolarDayShift(t *testing.T) {
	t.Parallel()

	tests := []struct {
		zone string
		lon  float64
		want int
	}{
		{"UTC", 0, 0},
		{"Asia/Riyadh", 39.8, 0},
		{"Europe/Madrid", -3.7, 0},
		{"America/New_York", -74, 0},
		{"Pacific/Tongatapu", -175.2, -1},
		{"Pacific/Kiritimati", -157.4, -1},
	}
	for _, tt := range tests {
		tz := mustLoad(t, tt.zone)
		if got := solarDayShift(time.Date(2024, 6, 1, 0, 0, 0, 0, tz), tt.lon); got != tt.want {
			t.Errorf("solarDayShift(%s, %.1f) = %d, want %d", tt.zone, tt.lon, got, tt.want)
		}
	}
}

func TestCompute_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      Input
		wantErr error
	}{
		{
			name:    "missing location",
			in:      Input{Date: date(2024, 6, 1), Method: domain.MethodMuslimWorldLeague},
			wantErr: domain.ErrMissingLocation,
		},
		{
			name:    "unknown method",
			in:      Input{Date: date(2024, 6, 1), Location: london, Method: "Moonsighting"},
			wantErr: domain.ErrUnknownMethod,
		},
		{
			name:    "empty method",
			in:      Input{Date: date(2024, 6, 1), Location: london},
			wantErr: domain.ErrUnknownMethod,
		},
		{
			name:    "latitude out of range",
			in:      Input{Date: date(2024, 6, 1), Location: &domain.Location{Latitude: 91}, Method: domain.MethodISNA},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "NaN latitude",
			in:      Input{Date: date(2024, 6, 1), Location: &domain.Location{Latitude: math.NaN(), Longitude: 10}, Method: domain.MethodMuslimWorldLeague},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "bad madhab",
			in:      Input{Date: date(2024, 6, 1), Location: london, Method: domain.MethodISNA, Madhab: "Maliki"},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := Compute(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMethod_Table(t *testing.T) {
	t.Parallel()

	got := Methods()
	if len(got) != 12 {
		t.Fatalf("methods = %d, want 12", len(got))
	}
	for _, m := range got {
		if !m.IsValid() {
			t.Errorf("%s not a valid domain method", m)
		}
		p, err := Method(m)
		if err != nil {
			t.Errorf("Method(%s): %v", m, err)
		}
		if p.FajrAngle <= 0 || (p.IshaAngle <= 0 && p.IshaMinutes <= 0) {
			t.Errorf("%s: incomplete params %+v", m, p)
		}
	}

	var ume *domain.UnknownMethodError
	if _, err := Method("Nope"); !errors.As(err, &ume) || ume.Method != "Nope" {
		t.Errorf("unknown method err = %v", err)
	}
}

func TestJulianDate(t *testing.T) {
	t.Parallel()

	if got := julianDate(2000, time.January, 1); got != 2451544.5 {
		t.Errorf("julianDate(2000-01-01) = %f, want 2451544.5", got)
	}
	if got := julianDate(2024, time.June, 1); got != 2460462.5 {
		t.Errorf("julianDate(2024-06-01) = %f, want 2460462.5", got)
	}
}

func TestSunAngleTime_Unreachable(t *testing.T) {
	t.Parallel()

	day := newSolarDay(2024, time.June, 21, 78.22, 15.65)
	if v := day.sunAngleTime(sunriseAngle, 18, false); !math.IsNaN(v) {
		t.Errorf("sunset at 78°N on the solstice = %f, want NaN", v)
	}
}
