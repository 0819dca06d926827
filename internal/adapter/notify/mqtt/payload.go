package mqtt

import (
	"time"

	"github.com/sabros/sabr-backend/internal/domain"
)

type timesPayload struct {
	Date     string          `json:"date"`
	TimeZone string          `json:"time_zone"`
	Method   string          `json:"method"`
	Madhab   string          `json:"madhab"`
	Sunrise  *time.Time      `json:"sunrise,omitempty"`
	Prayers  []prayerPayload `json:"prayers"`
}

type prayerPayload struct {
	Name        string     `json:"name"`
	Display     string     `json:"display"`
	At          *time.Time `json:"at,omitempty"`
	Clock       string     `json:"clock,omitempty"`
	Overridden  bool       `json:"overridden,omitempty"`
	Unavailable bool       `json:"unavailable,omitempty"`
}

type nextPayload struct {
	Name             string    `json:"name"`
	Display          string    `json:"display"`
	At               time.Time `json:"at"`
	Countdown        string    `json:"countdown"`
	RemainingSeconds int64     `json:"remaining_seconds"`
	Current          string    `json:"current,omitempty"`
	InWindow         bool      `json:"in_window"`
}

func timesFromDomain(set domain.PrayerTimeSet) timesPayload {
	out := timesPayload{
		Date:     set.Date.Format(time.DateOnly),
		TimeZone: set.TimeZone,
		Method:   set.Method.String(),
		Madhab:   set.Madhab.String(),
		Sunrise:  set.Sunrise,
		Prayers:  make([]prayerPayload, 0, len(set.Times)),
	}
	for _, t := range set.Times {
		p := prayerPayload{Name: t.Name.String(), Display: t.Name.DisplayName()}
		if t.Available() {
			at := t.At
			p.At = &at
			p.Clock = at.Format("15:04")
			p.Overridden = t.Overridden()
		} else {
			p.Unavailable = true
		}
		out.Prayers = append(out.Prayers, p)
	}
	return out
}

func nextFromDomain(n domain.NextPrayer) nextPayload {
	out := nextPayload{
		Name:             n.Name.String(),
		Display:          n.DisplayName(),
		At:               n.At,
		Countdown:        n.Countdown(),
		RemainingSeconds: int64(n.Remaining / time.Second),
		InWindow:         n.InWindow,
	}
	if n.Current != nil {
		out.Current = n.Current.String()
	}
	return out
}
