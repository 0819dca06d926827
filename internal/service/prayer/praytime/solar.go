package praytime

import (
	"math"
	"time"
)

// Solar position follows the approximate USNO equations (also used by
// PrayTimes.org): accurate to about a minute of time between 1950 and 2050.

func dtr(d float64) float64 { return d * math.Pi / 180 }
func rtd(r float64) float64 { return r * 180 / math.Pi }

func dsin(d float64) float64 { return math.Sin(dtr(d)) }
func dcos(d float64) float64 { return math.Cos(dtr(d)) }
func dtan(d float64) float64 { return math.Tan(dtr(d)) }

func darcsin(x float64) float64     { return rtd(math.Asin(x)) }
func darccos(x float64) float64     { return rtd(math.Acos(x)) }
func darctan2(y, x float64) float64 { return rtd(math.Atan2(y, x)) }
func darccot(x float64) float64     { return rtd(math.Atan(1 / x)) }

func fixAngle(a float64) float64 { return fix(a, 360) }
func fixHour(h float64) float64  { return fix(h, 24) }

func fix(a, b float64) float64 {
	a = a - b*math.Floor(a/b)
	if a < 0 {
		return a + b
	}
	return a
}

// julianDate returns the Julian date at 0h UT of the given Gregorian date.
func julianDate(year int, month time.Month, day int) float64 {
	y, m := year, int(month)
	if m <= 2 {
		y--
		m += 12
	}
	a := math.Floor(float64(y) / 100)
	b := 2 - a + math.Floor(a/4)
	return math.Floor(365.25*float64(y+4716)) + math.Floor(30.6001*float64(m+1)) + float64(day) + b - 1524.5
}

// sunPosition returns the sun's declination (degrees) and the equation of
// time (hours) at Julian date jd.
func sunPosition(jd float64) (decl, eqt float64) {
	d := jd - 2451545.0
	g := fixAngle(357.529 + 0.98560028*d)
	q := fixAngle(280.459 + 0.98564736*d)
	l := fixAngle(q + 1.915*dsin(g) + 0.020*dsin(2*g))

	e := 23.439 - 0.00000036*d

	ra := darctan2(dcos(e)*dsin(l), dcos(l)) / 15
	eqt = q/15 - fixHour(ra)
	decl = darcsin(dsin(e) * dsin(l))

	return decl, eqt
}

// solarDay evaluates sun events for one civil date at one latitude.
// Times are hours after local mean midnight.
type solarDay struct {
	jd0 float64 // Julian date at local mean midnight
	lat float64
}

func newSolarDay(year int, month time.Month, day int, lat, lon float64) solarDay {
	return solarDay{
		jd0: julianDate(year, month, day) - lon/(15*24),
		lat: lat,
	}
}

// midDay returns the time of solar transit near hour t.
func (s solarDay) midDay(t float64) float64 {
	_, eqt := sunPosition(s.jd0 + t/24)
	return fixHour(12 - eqt)
}

// sunAngleTime returns the time near hour t at which the sun is angle degrees
// below the horizon, before transit when ccw is true. NaN means the sun never
// reaches that altitude on this date.
func (s solarDay) sunAngleTime(angle, t float64, ccw bool) float64 {
	decl, _ := sunPosition(s.jd0 + t/24)
	noon := s.midDay(t)

	cosT := (-dsin(angle) - dsin(decl)*dsin(s.lat)) / (dcos(decl) * dcos(s.lat))
	if math.IsNaN(cosT) || cosT < -1 || cosT > 1 {
		return math.NaN()
	}

	h := darccos(cosT) / 15
	if ccw {
		return noon - h
	}
	return noon + h
}

// asrTime returns the time near hour t at which an object's shadow equals
// factor times its height plus its noon shadow.
func (s solarDay) asrTime(factor, t float64) float64 {
	decl, _ := sunPosition(s.jd0 + t/24)
	zenith := math.Abs(s.lat - decl)
	if zenith >= 90 {
		return math.NaN()
	}
	angle := -darccot(factor + dtan(zenith))
	return s.sunAngleTime(angle, t, false)
}
