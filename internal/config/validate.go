package config

import (
	"fmt"
	"time"
	_ "time/tzdata" // zone names must resolve in minimal containers

	"github.com/sabros/sabr-backend/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Prayer.validate(); err != nil {
		return fmt.Errorf("prayer: %w", err)
	}
	if err := c.Revision.validate(); err != nil {
		return fmt.Errorf("revision: %w", err)
	}
	if c.Profile.Path == "" {
		return fmt.Errorf("profile.path is required")
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be > 0 (got %s)", c.Cache.TTL)
	}
	if err := c.MQTT.validate(); err != nil {
		return fmt.Errorf("mqtt: %w", err)
	}
	if c.Telegram.Enabled && (c.Telegram.Token == "" || c.Telegram.ChatID == 0) {
		return fmt.Errorf("telegram: token and chat_id are required when enabled")
	}
	if err := c.Worker.validate(); err != nil {
		return fmt.Errorf("worker: %w", err)
	}
	return nil
}

func (p *PrayerConfig) validate() error {
	if !domain.CalculationMethod(p.DefaultMethod).IsValid() {
		return fmt.Errorf("default_method %q is not a supported calculation method", p.DefaultMethod)
	}
	if !domain.Madhab(p.DefaultMadhab).IsValid() {
		return fmt.Errorf("default_madhab %q must be Standard or Hanafi", p.DefaultMadhab)
	}
	if !domain.HighLatitudeRule(p.HighLatitudeRule).IsValid() {
		return fmt.Errorf("high_latitude_rule %q is not supported", p.HighLatitudeRule)
	}
	if _, err := time.LoadLocation(p.DefaultTimeZone); err != nil {
		return fmt.Errorf("default_time_zone: %w", err)
	}
	if p.CountdownTick <= 0 {
		return fmt.Errorf("countdown_tick must be > 0 (got %s)", p.CountdownTick)
	}
	return nil
}

func (r *RevisionConfig) validate() error {
	if r.MinEase <= 1 {
		return fmt.Errorf("min_ease must be > 1 (got %v)", r.MinEase)
	}
	if r.InitialEase < r.MinEase {
		return fmt.Errorf("initial_ease must be >= min_ease (got %v < %v)", r.InitialEase, r.MinEase)
	}
	if r.FirstInterval < 1 || r.SecondInterval < r.FirstInterval {
		return fmt.Errorf("intervals must satisfy 1 <= first <= second (got %d, %d)", r.FirstInterval, r.SecondInterval)
	}
	q := domain.QualityRating(r.PassThreshold)
	if !q.IsValid() {
		return fmt.Errorf("pass_threshold must be between %d and %d (got %d)", domain.MinQualityRating, domain.MaxQualityRating, r.PassThreshold)
	}
	return nil
}

func (m *MQTTConfig) validate() error {
	if !m.Enabled {
		return nil
	}
	if m.Broker == "" {
		return fmt.Errorf("broker is required when enabled")
	}
	if m.TopicPrefix == "" {
		return fmt.Errorf("topic_prefix is required when enabled")
	}
	if m.QoS < 0 || m.QoS > 2 {
		return fmt.Errorf("qos must be 0, 1 or 2 (got %d)", m.QoS)
	}
	return nil
}

func (w *WorkerConfig) validate() error {
	if _, err := time.LoadLocation(w.TimeZone); err != nil {
		return fmt.Errorf("time_zone: %w", err)
	}
	if _, err := ParseClock(w.TimesAt); err != nil {
		return fmt.Errorf("times_at: %w", err)
	}
	if _, err := ParseClock(w.DigestAt); err != nil {
		return fmt.Errorf("digest_at: %w", err)
	}
	return nil
}

// ParseClock validates a "15:04" wall-clock string and returns it normalised
// to two-digit hours.
func ParseClock(raw string) (string, error) {
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return "", fmt.Errorf("invalid clock %q: %w", raw, err)
	}
	return t.Format("15:04"), nil
}
