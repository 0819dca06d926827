package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/sabros/sabr-backend/internal/adapter/cache"
	"github.com/sabros/sabr-backend/internal/adapter/notify/mqtt"
	"github.com/sabros/sabr-backend/internal/adapter/notify/telegram"
	"github.com/sabros/sabr-backend/internal/adapter/profile"
	"github.com/sabros/sabr-backend/internal/config"
	"github.com/sabros/sabr-backend/internal/domain"
	"github.com/sabros/sabr-backend/internal/service/prayer"
	"github.com/sabros/sabr-backend/internal/service/quran"
	"github.com/sabros/sabr-backend/internal/service/quran/sm2"
	"github.com/sabros/sabr-backend/internal/worker"
	"github.com/sabros/sabr-backend/pkg/ctxutil"
)

// App holds the wired services shared by the CLI and the worker.
type App struct {
	Config  *config.Config
	Log     *slog.Logger
	Profile *profile.Store
	Prayers *prayer.Service
	Quran   *quran.Service

	closers []func()
}

// New loads configuration, initializes the logger and wires the services.
// The returned context carries the profile owner's ID.
func New(ctx context.Context) (*App, context.Context, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, ctx, err
	}
	logger := NewLogger(cfg.Log)

	a, err := build(ctx, cfg, logger)
	if err != nil {
		return nil, ctx, err
	}

	userID, err := a.Profile.UserID(ctx)
	if err != nil {
		a.Close()
		return nil, ctx, fmt.Errorf("read profile: %w", err)
	}
	return a, ctxutil.WithUserID(ctx, userID), nil
}

func build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{
		Config:  cfg,
		Log:     logger,
		Profile: profile.NewStore(cfg.Profile.Path),
	}

	// The cache is optional: an unreachable Redis degrades to recomputing.
	var timesCache *cache.TimesCache
	if cfg.Cache.Enabled {
		rdb, err := cache.NewClient(ctx, cfg.Cache)
		if err != nil {
			logger.Warn("prayer-time cache disabled",
				slog.String("addr", cfg.Cache.Addr),
				slog.String("error", err.Error()),
			)
		} else {
			timesCache = cache.NewTimesCache(rdb, cfg.Cache.TTL)
			a.closers = append(a.closers, func() { _ = rdb.Close() })
		}
	}

	prayerTZ, err := time.LoadLocation(cfg.Prayer.DefaultTimeZone)
	if err != nil {
		return nil, fmt.Errorf("prayer.default_time_zone: %w", err)
	}
	prayerCfg := prayer.Config{
		DefaultMethod:    domain.CalculationMethod(cfg.Prayer.DefaultMethod),
		DefaultMadhab:    domain.Madhab(cfg.Prayer.DefaultMadhab),
		HighLatitudeRule: domain.HighLatitudeRule(cfg.Prayer.HighLatitudeRule),
		DefaultTimeZone:  prayerTZ,
	}
	if timesCache != nil {
		a.Prayers = prayer.NewService(logger, a.Profile, a.Profile, timesCache, prayerCfg)
	} else {
		a.Prayers = prayer.NewService(logger, a.Profile, a.Profile, nil, prayerCfg)
	}

	a.Quran = quran.NewService(logger, a.Profile, RevisionParameters(cfg.Revision), quran.ParseTimezone(cfg.Worker.TimeZone))

	logger.Debug("application wired",
		slog.String("version", BuildVersion()),
		slog.String("profile", cfg.Profile.Path),
		slog.Bool("cache", timesCache != nil),
	)
	return a, nil
}

// RevisionParameters converts the revision config into scheduler parameters.
func RevisionParameters(cfg config.RevisionConfig) sm2.Parameters {
	return sm2.Parameters{
		InitialEase:    cfg.InitialEase,
		MinEase:        cfg.MinEase,
		FirstInterval:  cfg.FirstInterval,
		SecondInterval: cfg.SecondInterval,
		PassThreshold:  domain.QualityRating(cfg.PassThreshold),
	}
}

// Close releases external connections in reverse order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// RunWorker connects the enabled notifiers and runs the scheduler until ctx
// is cancelled or the process receives SIGINT or SIGTERM.
func (a *App) RunWorker(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var screen *mqtt.Publisher
	if a.Config.MQTT.Enabled {
		p, err := mqtt.Connect(a.Config.MQTT, a.Log)
		if err != nil {
			return fmt.Errorf("connect mqtt: %w", err)
		}
		defer p.Close()
		screen = p
	}

	var digest *telegram.Notifier
	if a.Config.Telegram.Enabled {
		n, err := telegram.New(a.Config.Telegram)
		if err != nil {
			return fmt.Errorf("connect telegram: %w", err)
		}
		digest = n
	}

	loc, err := time.LoadLocation(a.Config.Worker.TimeZone)
	if err != nil {
		return fmt.Errorf("worker.time_zone: %w", err)
	}
	wcfg := worker.Config{
		Location:      loc,
		TimesAt:       a.Config.Worker.TimesAt,
		DigestAt:      a.Config.Worker.DigestAt,
		CountdownTick: a.Config.Prayer.CountdownTick,
	}

	// Typed nils must not reach the worker's interface fields.
	var w *worker.Worker
	switch {
	case screen != nil && digest != nil:
		w, err = worker.New(a.Log, a.Prayers, a.Quran, screen, digest, wcfg)
	case screen != nil:
		w, err = worker.New(a.Log, a.Prayers, a.Quran, screen, nil, wcfg)
	case digest != nil:
		w, err = worker.New(a.Log, a.Prayers, a.Quran, nil, digest, wcfg)
	default:
		w, err = worker.New(a.Log, a.Prayers, a.Quran, nil, nil, wcfg)
	}
	if err != nil {
		return fmt.Errorf("create worker: %w", err)
	}

	a.Log.Info("starting worker",
		slog.String("version", BuildVersion()),
		slog.Bool("mqtt", screen != nil),
		slog.Bool("telegram", digest != nil),
	)
	w.Start()
	<-ctx.Done()
	w.Stop()
	return nil
}
