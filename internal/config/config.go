package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Prayer   PrayerConfig   `yaml:"prayer"`
	Revision RevisionConfig `yaml:"revision"`
	Profile  ProfileConfig  `yaml:"profile"`
	Cache    CacheConfig    `yaml:"cache"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	Telegram TelegramConfig `yaml:"telegram"`
	Worker   WorkerConfig   `yaml:"worker"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// PrayerConfig holds the fallbacks applied when a profile leaves a setting
// empty or stores a tag that is no longer supported.
type PrayerConfig struct {
	DefaultMethod    string        `yaml:"default_method"     env:"PRAYER_DEFAULT_METHOD"     env-default:"MuslimWorldLeague"`
	DefaultMadhab    string        `yaml:"default_madhab"     env:"PRAYER_DEFAULT_MADHAB"     env-default:"Standard"`
	HighLatitudeRule string        `yaml:"high_latitude_rule" env:"PRAYER_HIGH_LATITUDE_RULE" env-default:"MiddleOfTheNight"`
	DefaultTimeZone  string        `yaml:"default_time_zone"  env:"PRAYER_DEFAULT_TIME_ZONE"  env-default:"UTC"`
	CountdownTick    time.Duration `yaml:"countdown_tick"     env:"PRAYER_COUNTDOWN_TICK"     env-default:"1s"`
}

// RevisionConfig holds SM-2 scheduler parameters.
type RevisionConfig struct {
	InitialEase    float64 `yaml:"initial_ease"    env:"REVISION_INITIAL_EASE"    env-default:"2.5"`
	MinEase        float64 `yaml:"min_ease"        env:"REVISION_MIN_EASE"        env-default:"1.3"`
	FirstInterval  int     `yaml:"first_interval"  env:"REVISION_FIRST_INTERVAL"  env-default:"1"`
	SecondInterval int     `yaml:"second_interval" env:"REVISION_SECOND_INTERVAL" env-default:"6"`
	PassThreshold  int     `yaml:"pass_threshold"  env:"REVISION_PASS_THRESHOLD"  env-default:"3"`
}

// ProfileConfig points at the local YAML profile (settings, ranges, prayer log).
type ProfileConfig struct {
	Path string `yaml:"path" env:"PROFILE_PATH" env-default:"./sabr-profile.yaml"`
}

// CacheConfig holds Redis settings for the prayer-time cache.
type CacheConfig struct {
	Enabled  bool          `yaml:"enabled"  env:"CACHE_ENABLED"  env-default:"false"`
	Addr     string        `yaml:"addr"     env:"CACHE_ADDR"     env-default:"localhost:6379"`
	Password string        `yaml:"password" env:"CACHE_PASSWORD"`
	DB       int           `yaml:"db"       env:"CACHE_DB"       env-default:"0"`
	TTL      time.Duration `yaml:"ttl"      env:"CACHE_TTL"      env-default:"48h"`
}

// MQTTConfig holds broker settings for publishing to prayer-time screens.
type MQTTConfig struct {
	Enabled        bool          `yaml:"enabled"         env:"MQTT_ENABLED"         env-default:"false"`
	Broker         string        `yaml:"broker"          env:"MQTT_BROKER"          env-default:"tcp://localhost:1883"`
	ClientID       string        `yaml:"client_id"       env:"MQTT_CLIENT_ID"       env-default:"sabr-worker"`
	Username       string        `yaml:"username"        env:"MQTT_USERNAME"`
	Password       string        `yaml:"password"        env:"MQTT_PASSWORD"`
	TopicPrefix    string        `yaml:"topic_prefix"    env:"MQTT_TOPIC_PREFIX"    env-default:"sabr"`
	QoS            int           `yaml:"qos"             env:"MQTT_QOS"             env-default:"1"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"MQTT_CONNECT_TIMEOUT" env-default:"10s"`
}

// TelegramConfig holds bot settings for the revision digest.
type TelegramConfig struct {
	Enabled bool   `yaml:"enabled" env:"TELEGRAM_ENABLED" env-default:"false"`
	Token   string `yaml:"token"   env:"TELEGRAM_TOKEN"`
	ChatID  int64  `yaml:"chat_id" env:"TELEGRAM_CHAT_ID"`
}

// WorkerConfig holds the background scheduler settings.
// TimesAt and DigestAt are wall-clock times ("15:04") in TimeZone.
type WorkerConfig struct {
	TimeZone string `yaml:"time_zone" env:"WORKER_TIME_ZONE" env-default:"UTC"`
	TimesAt  string `yaml:"times_at"  env:"WORKER_TIMES_AT"  env-default:"00:05"`
	DigestAt string `yaml:"digest_at" env:"WORKER_DIGEST_AT" env-default:"06:00"`
}
