// Package prayer resolves a user's prayer settings and serves computed
// prayer times and the next-prayer countdown.
package prayer

import (
	"context"
	"log/slog"
	"time"

	"github.com/sabros/sabr-backend/internal/domain"
)

// settingsStore holds the user's prayer configuration.
type settingsStore interface {
	PrayerSettings(ctx context.Context) (domain.PrayerSettings, error)
	SavePrayerSettings(ctx context.Context, s domain.PrayerSettings) error
}

// entryStore records how prayers were performed.
type entryStore interface {
	SavePrayerEntry(ctx context.Context, e domain.PrayerEntry) error
}

// timesCache stores computed sets before overrides are applied.
type timesCache interface {
	GetTimes(ctx context.Context, key string) (domain.PrayerTimeSet, bool, error)
	SetTimes(ctx context.Context, key string, set domain.PrayerTimeSet) error
}

// Config holds the fallbacks used when the profile is incomplete.
type Config struct {
	DefaultMethod    domain.CalculationMethod
	DefaultMadhab    domain.Madhab
	HighLatitudeRule domain.HighLatitudeRule
	DefaultTimeZone  *time.Location
}

// Service implements prayer-time operations.
type Service struct {
	log      *slog.Logger
	settings settingsStore
	entries  entryStore
	cache    timesCache
	cfg      Config
}

// NewService creates a new prayer service. cache may be nil.
func NewService(
	logger *slog.Logger,
	settings settingsStore,
	entries entryStore,
	cache timesCache,
	cfg Config,
) *Service {
	if cfg.DefaultTimeZone == nil {
		cfg.DefaultTimeZone = time.UTC
	}
	if cfg.DefaultMethod == "" {
		cfg.DefaultMethod = domain.DefaultMethod
	}
	return &Service{
		log:      logger.With("service", "prayer"),
		settings: settings,
		entries:  entries,
		cache:    cache,
		cfg:      cfg,
	}
}
