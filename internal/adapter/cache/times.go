package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sabros/sabr-backend/internal/domain"
)

const timesPrefix = "prayer:times:"

// TimesCache keeps computed sets, before overrides, for a limited time.
type TimesCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewTimesCache creates a cache whose entries expire after ttl.
func NewTimesCache(rdb redis.Cmdable, ttl time.Duration) *TimesCache {
	return &TimesCache{rdb: rdb, ttl: ttl}
}

// GetTimes returns the set stored under key. A miss is (zero, false, nil).
func (c *TimesCache) GetTimes(ctx context.Context, key string) (domain.PrayerTimeSet, bool, error) {
	data, err := c.rdb.Get(ctx, timesPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.PrayerTimeSet{}, false, nil
	}
	if err != nil {
		return domain.PrayerTimeSet{}, false, fmt.Errorf("cache get %s: %w", key, err)
	}

	var w wireSet
	if err := json.Unmarshal(data, &w); err != nil {
		return domain.PrayerTimeSet{}, false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	set, err := w.toDomain()
	if err != nil {
		return domain.PrayerTimeSet{}, false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return set, true, nil
}

// SetTimes stores set under key.
func (c *TimesCache) SetTimes(ctx context.Context, key string, set domain.PrayerTimeSet) error {
	data, err := json.Marshal(fromDomain(set))
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, timesPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Wire format
// ---------------------------------------------------------------------------

// wireSet keeps "no solution" explicit, since PrayerTime.Err is not serialised.
type wireSet struct {
	Date     string                   `json:"date"`
	Location domain.Location          `json:"location"`
	TimeZone string                   `json:"time_zone"`
	Method   domain.CalculationMethod `json:"method"`
	Madhab   domain.Madhab            `json:"madhab"`
	Sunrise  *time.Time               `json:"sunrise,omitempty"`
	Sunset   *time.Time               `json:"sunset,omitempty"`
	Times    [5]wireTime              `json:"times"`
}

type wireTime struct {
	Name       domain.PrayerName `json:"name"`
	At         *time.Time        `json:"at,omitempty"`
	NoSolution bool              `json:"no_solution,omitempty"`
}

func fromDomain(set domain.PrayerTimeSet) wireSet {
	w := wireSet{
		Date:     set.Date.Format(time.DateOnly),
		Location: set.Location,
		TimeZone: set.TimeZone,
		Method:   set.Method,
		Madhab:   set.Madhab,
		Sunrise:  set.Sunrise,
		Sunset:   set.Sunset,
	}
	for i, t := range set.Times {
		w.Times[i].Name = t.Name
		if t.Available() {
			at := t.At
			w.Times[i].At = &at
		} else {
			w.Times[i].NoSolution = true
		}
	}
	return w
}

func (w wireSet) toDomain() (domain.PrayerTimeSet, error) {
	date, err := time.Parse(time.DateOnly, w.Date)
	if err != nil {
		return domain.PrayerTimeSet{}, err
	}

	set := domain.PrayerTimeSet{
		Date:     date,
		Location: w.Location,
		TimeZone: w.TimeZone,
		Method:   w.Method,
		Madhab:   w.Madhab,
		Sunrise:  w.Sunrise,
		Sunset:   w.Sunset,
	}
	for i, t := range w.Times {
		set.Times[i].Name = t.Name
		if t.NoSolution || t.At == nil {
			set.Times[i].Err = &domain.NoSolutionError{Prayer: t.Name, Date: date}
			continue
		}
		set.Times[i].At = *t.At
	}
	return set, nil
}
