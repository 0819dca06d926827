// Package worker runs the background jobs: the daily prayer-time publication,
// the screen countdown and the morning revision digest.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/sabros/sabr-backend/internal/domain"
	"github.com/sabros/sabr-backend/internal/service/prayer"
	"github.com/sabros/sabr-backend/internal/service/quran"
	"github.com/sabros/sabr-backend/pkg/ctxutil"
)

// Job tags, usable with RunNow.
const (
	TagTimes     = "times"
	TagCountdown = "countdown"
	TagDigest    = "digest"
)

const jobTimeout = 30 * time.Second

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type prayerService interface {
	Times(ctx context.Context, in prayer.TimesInput) (domain.PrayerTimeSet, error)
	Next(ctx context.Context, now time.Time) (domain.NextPrayer, error)
}

type revisionService interface {
	Due(ctx context.Context, asOf time.Time) ([]domain.MemorizedRange, error)
	Summary(ctx context.Context, now time.Time) (quran.Summary, error)
}

type screenPublisher interface {
	PublishTimes(ctx context.Context, set domain.PrayerTimeSet) error
	PublishNext(ctx context.Context, next domain.NextPrayer) error
}

type digestSender interface {
	SendDigest(ctx context.Context, d domain.RevisionDigest) error
}

// Config holds the schedule. TimesAt and DigestAt are "15:04" clocks read in
// Location.
type Config struct {
	Location      *time.Location
	TimesAt       string
	DigestAt      string
	CountdownTick time.Duration
}

// Worker owns a gocron scheduler and the jobs registered on it.
type Worker struct {
	log       *slog.Logger
	prayers   prayerService
	revisions revisionService
	screen    screenPublisher
	digest    digestSender
	cfg       Config
	sched     *gocron.Scheduler
	now       func() time.Time
}

// New registers the jobs. screen and digest may be nil: without a screen the
// times job only warms the cache and no countdown runs; without a digest
// sender the digest is written to the log.
func New(
	log *slog.Logger,
	prayers prayerService,
	revisions revisionService,
	screen screenPublisher,
	digest digestSender,
	cfg Config,
) (*Worker, error) {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.CountdownTick <= 0 {
		cfg.CountdownTick = time.Second
	}

	w := &Worker{
		log:       log.With("component", "worker"),
		prayers:   prayers,
		revisions: revisions,
		screen:    screen,
		digest:    digest,
		cfg:       cfg,
		sched:     gocron.NewScheduler(cfg.Location),
		now:       time.Now,
	}
	w.sched.SingletonModeAll()

	if _, err := w.sched.Every(1).Day().At(cfg.TimesAt).Tag(TagTimes).
		Do(w.run, TagTimes, w.PublishTimes); err != nil {
		return nil, fmt.Errorf("schedule %s: %w", TagTimes, err)
	}
	if screen != nil {
		if _, err := w.sched.Every(cfg.CountdownTick).Tag(TagCountdown).
			Do(w.run, TagCountdown, w.PublishCountdown); err != nil {
			return nil, fmt.Errorf("schedule %s: %w", TagCountdown, err)
		}
	}
	if _, err := w.sched.Every(1).Day().At(cfg.DigestAt).Tag(TagDigest).
		Do(w.run, TagDigest, w.SendDigest); err != nil {
		return nil, fmt.Errorf("schedule %s: %w", TagDigest, err)
	}

	return w, nil
}

// Start runs the scheduler in the background and publishes today's times
// immediately so a restarted screen is not blank until the next day.
func (w *Worker) Start() {
	w.sched.StartAsync()
	if err := w.sched.RunByTag(TagTimes); err != nil {
		w.log.Warn("initial times run", slog.String("error", err.Error()))
	}
	w.log.Info("worker started",
		slog.String("time_zone", w.cfg.Location.String()),
		slog.String("times_at", w.cfg.TimesAt),
		slog.String("digest_at", w.cfg.DigestAt),
		slog.Int("jobs", len(w.sched.Jobs())),
	)
}

// Stop waits for running jobs and stops the scheduler.
func (w *Worker) Stop() {
	w.sched.Stop()
	w.log.Info("worker stopped")
}

// RunNow triggers the job with the given tag outside its schedule.
func (w *Worker) RunNow(tag string) error {
	return w.sched.RunByTag(tag)
}

// Tags lists the tags of the registered jobs.
func (w *Worker) Tags() []string {
	var tags []string
	for _, j := range w.sched.Jobs() {
		tags = append(tags, j.Tags()...)
	}
	return tags
}

// run executes one job with its own run ID. Failures are logged and the
// schedule continues.
func (w *Worker) run(name string, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(ctxutil.NewRun(context.Background()), jobTimeout)
	defer cancel()

	start := time.Now()
	if err := fn(ctx); err != nil {
		w.log.ErrorContext(ctx, "job failed",
			slog.String("job", name),
			slog.String("error", err.Error()),
		)
		return
	}
	w.log.DebugContext(ctx, "job done",
		slog.String("job", name),
		slog.Duration("took", time.Since(start)),
	)
}

// PublishTimes computes today's prayer times and hands them to the screen.
func (w *Worker) PublishTimes(ctx context.Context) error {
	set, err := w.prayers.Times(ctx, prayer.TimesInput{Date: w.now().In(w.cfg.Location)})
	if err != nil {
		return fmt.Errorf("times: %w", err)
	}

	if w.screen == nil {
		w.log.InfoContext(ctx, "prayer times computed", slog.String("date", set.Date.Format(time.DateOnly)))
		return nil
	}
	if err := w.screen.PublishTimes(ctx, set); err != nil {
		return fmt.Errorf("publish times: %w", err)
	}
	w.log.InfoContext(ctx, "prayer times published", slog.String("date", set.Date.Format(time.DateOnly)))
	return nil
}

// PublishCountdown sends the next prayer and the remaining time.
func (w *Worker) PublishCountdown(ctx context.Context) error {
	if w.screen == nil {
		return nil
	}
	next, err := w.prayers.Next(ctx, w.now())
	if err != nil {
		return fmt.Errorf("next: %w", err)
	}
	if err := w.screen.PublishNext(ctx, next); err != nil {
		return fmt.Errorf("publish next: %w", err)
	}
	return nil
}

// SendDigest builds the morning revision digest and delivers it.
func (w *Worker) SendDigest(ctx context.Context) error {
	d, err := w.BuildDigest(ctx)
	if err != nil {
		return err
	}

	if w.digest == nil {
		w.log.InfoContext(ctx, "revision digest",
			slog.Int("due", len(d.Due)),
			slog.Int("overdue", d.Overdue),
			slog.Int("total", d.Total),
		)
		return nil
	}
	if err := w.digest.SendDigest(ctx, d); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	w.log.InfoContext(ctx, "revision digest sent", slog.Int("due", len(d.Due)))
	return nil
}

// BuildDigest collects the ranges due today and the revision counters.
func (w *Worker) BuildDigest(ctx context.Context) (domain.RevisionDigest, error) {
	now := w.now().In(w.cfg.Location)

	due, err := w.revisions.Due(ctx, now)
	if err != nil {
		return domain.RevisionDigest{}, fmt.Errorf("due: %w", err)
	}
	sum, err := w.revisions.Summary(ctx, now)
	if err != nil {
		return domain.RevisionDigest{}, fmt.Errorf("summary: %w", err)
	}

	return domain.RevisionDigest{
		Date:         now,
		Due:          due,
		Overdue:      sum.Overdue,
		RevisedToday: sum.RevisedToday,
		Total:        sum.Total,
	}, nil
}
