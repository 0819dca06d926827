package domain

// PrayerName identifies one of the five obligatory daily prayers.
type PrayerName string

const (
	PrayerFajr    PrayerName = "FAJR"
	PrayerDhuhr   PrayerName = "DHUHR"
	PrayerAsr     PrayerName = "ASR"
	PrayerMaghrib PrayerName = "MAGHRIB"
	PrayerIsha    PrayerName = "ISHA"
)

// prayerOrder is the fixed daily order.
var prayerOrder = [5]PrayerName{PrayerFajr, PrayerDhuhr, PrayerAsr, PrayerMaghrib, PrayerIsha}

// PrayerNames returns the five prayers in their fixed daily order.
func PrayerNames() [5]PrayerName { return prayerOrder }

func (p PrayerName) String() string { return string(p) }

func (p PrayerName) IsValid() bool {
	return p.Index() >= 0
}

// Index returns the position of p in the daily order, or -1.
func (p PrayerName) Index() int {
	for i, n := range prayerOrder {
		if n == p {
			return i
		}
	}
	return -1
}

// DisplayName returns the human-readable name ("Fajr", "Dhuhr", ...).
func (p PrayerName) DisplayName() string {
	switch p {
	case PrayerFajr:
		return "Fajr"
	case PrayerDhuhr:
		return "Dhuhr"
	case PrayerAsr:
		return "Asr"
	case PrayerMaghrib:
		return "Maghrib"
	case PrayerIsha:
		return "Isha"
	}
	return string(p)
}

// ParsePrayerName accepts both the canonical tag and the display name.
func ParsePrayerName(s string) (PrayerName, bool) {
	for _, n := range prayerOrder {
		if s == string(n) || s == n.DisplayName() {
			return n, true
		}
	}
	return "", false
}

// CalculationMethod selects a published convention for the Fajr/Isha twilight angles.
type CalculationMethod string

const (
	MethodMuslimWorldLeague CalculationMethod = "MuslimWorldLeague"
	MethodISNA              CalculationMethod = "ISNA"
	MethodEgyptian          CalculationMethod = "Egyptian"
	MethodUmmAlQura         CalculationMethod = "UmmAlQura"
	MethodKarachi           CalculationMethod = "Karachi"
	MethodTehran            CalculationMethod = "Tehran"
	MethodJafari            CalculationMethod = "Jafari"
	MethodDubai             CalculationMethod = "Dubai"
	MethodKuwait            CalculationMethod = "Kuwait"
	MethodQatar             CalculationMethod = "Qatar"
	MethodSingapore         CalculationMethod = "Singapore"
	MethodTurkey            CalculationMethod = "Turkey"
)

// DefaultMethod is applied by callers when a stored method tag is unknown.
const DefaultMethod = MethodMuslimWorldLeague

func (m CalculationMethod) String() string { return string(m) }

func (m CalculationMethod) IsValid() bool {
	switch m {
	case MethodMuslimWorldLeague, MethodISNA, MethodEgyptian, MethodUmmAlQura,
		MethodKarachi, MethodTehran, MethodJafari, MethodDubai, MethodKuwait,
		MethodQatar, MethodSingapore, MethodTurkey:
		return true
	}
	return false
}

// Madhab affects only the Asr shadow-length multiplier.
type Madhab string

const (
	MadhabStandard Madhab = "Standard"
	MadhabHanafi   Madhab = "Hanafi"
)

func (m Madhab) String() string { return string(m) }

func (m Madhab) IsValid() bool {
	switch m {
	case MadhabStandard, MadhabHanafi:
		return true
	}
	return false
}

// ShadowFactor returns the Asr shadow multiplier: 2 for Hanafi, 1 otherwise.
func (m Madhab) ShadowFactor() float64 {
	if m == MadhabHanafi {
		return 2
	}
	return 1
}

// HighLatitudeRule decides how Fajr and Isha are bounded when the twilight
// angle is never reached or lies unreasonably far from sunrise/sunset.
type HighLatitudeRule string

const (
	HighLatitudeNone              HighLatitudeRule = "None"
	HighLatitudeMiddleOfTheNight  HighLatitudeRule = "MiddleOfTheNight"
	HighLatitudeSeventhOfTheNight HighLatitudeRule = "SeventhOfTheNight"
	HighLatitudeTwilightAngle     HighLatitudeRule = "TwilightAngle"
)

func (r HighLatitudeRule) String() string { return string(r) }

func (r HighLatitudeRule) IsValid() bool {
	switch r {
	case HighLatitudeNone, HighLatitudeMiddleOfTheNight, HighLatitudeSeventhOfTheNight, HighLatitudeTwilightAngle:
		return true
	}
	return false
}

// PrayerStatus records how a prayer was performed on a given day.
type PrayerStatus string

const (
	PrayerStatusPending PrayerStatus = "pending"
	PrayerStatusOnTime  PrayerStatus = "on_time"
	PrayerStatusLate    PrayerStatus = "late"
	PrayerStatusMissed  PrayerStatus = "missed"
	PrayerStatusQada    PrayerStatus = "qada"
)

func (s PrayerStatus) String() string { return string(s) }

func (s PrayerStatus) IsValid() bool {
	switch s {
	case PrayerStatusPending, PrayerStatusOnTime, PrayerStatusLate, PrayerStatusMissed, PrayerStatusQada:
		return true
	}
	return false
}

// QualityRating is the self-assessed recall quality of a revision, 1 (forgot) to 5 (perfect).
type QualityRating int

const (
	MinQualityRating QualityRating = 1
	MaxQualityRating QualityRating = 5
)

func (q QualityRating) IsValid() bool {
	return q >= MinQualityRating && q <= MaxQualityRating
}
