package praytime

import (
	"slices"

	"github.com/sabros/sabr-backend/internal/domain"
)

// MethodParams holds the sun-angle constants of a calculation convention.
// Angles are degrees below the horizon.
type MethodParams struct {
	FajrAngle float64
	IshaAngle float64
	// IshaMinutes, when > 0, places Isha a fixed interval after Maghrib
	// instead of using IshaAngle.
	IshaMinutes float64
	// MaghribAngle, when > 0, replaces sunset with a twilight angle.
	MaghribAngle float64
	// DhuhrMinutes is added to solar transit.
	DhuhrMinutes float64
}

var methods = map[domain.CalculationMethod]MethodParams{
	domain.MethodMuslimWorldLeague: {FajrAngle: 18, IshaAngle: 17},
	domain.MethodISNA:              {FajrAngle: 15, IshaAngle: 15},
	domain.MethodEgyptian:          {FajrAngle: 19.5, IshaAngle: 17.5},
	domain.MethodUmmAlQura:         {FajrAngle: 18.5, IshaMinutes: 90},
	domain.MethodKarachi:           {FajrAngle: 18, IshaAngle: 18},
	domain.MethodTehran:            {FajrAngle: 17.7, IshaAngle: 14, MaghribAngle: 4.5},
	domain.MethodJafari:            {FajrAngle: 16, IshaAngle: 14, MaghribAngle: 4},
	domain.MethodDubai:             {FajrAngle: 18.2, IshaAngle: 18.2},
	domain.MethodKuwait:            {FajrAngle: 18, IshaAngle: 17.5},
	domain.MethodQatar:             {FajrAngle: 18, IshaMinutes: 90},
	domain.MethodSingapore:         {FajrAngle: 20, IshaAngle: 18},
	domain.MethodTurkey:            {FajrAngle: 18, IshaAngle: 17},
}

// Method returns the constants for m, or an *domain.UnknownMethodError.
func Method(m domain.CalculationMethod) (MethodParams, error) {
	p, ok := methods[m]
	if !ok {
		return MethodParams{}, &domain.UnknownMethodError{Method: m}
	}
	return p, nil
}

var methodOrder = []domain.CalculationMethod{
	domain.MethodMuslimWorldLeague, domain.MethodISNA, domain.MethodEgyptian,
	domain.MethodUmmAlQura, domain.MethodKarachi, domain.MethodTehran,
	domain.MethodJafari, domain.MethodDubai, domain.MethodKuwait,
	domain.MethodQatar, domain.MethodSingapore, domain.MethodTurkey,
}

// Methods returns every supported method tag in a stable order.
func Methods() []domain.CalculationMethod {
	return slices.Clone(methodOrder)
}
