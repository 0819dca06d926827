package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/sabros/sabr-backend/internal/adapter/profile"
	"github.com/sabros/sabr-backend/internal/adapter/xlsx"
	"github.com/sabros/sabr-backend/internal/config"
	"github.com/sabros/sabr-backend/internal/domain"
	"github.com/sabros/sabr-backend/internal/service/prayer"
	"github.com/sabros/sabr-backend/internal/service/quran"
)

var errUsage = errors.New("invalid usage")

type cli struct {
	prayers *prayer.Service
	quran   *quran.Service
	profile *profile.Store
	cfg     *config.Config
	out     io.Writer
	errOut  io.Writer
	now     func() time.Time
}

func newCLI(p *prayer.Service, q *quran.Service, store *profile.Store, cfg *config.Config, out io.Writer) *cli {
	return &cli{
		prayers: p,
		quran:   q,
		profile: store,
		cfg:     cfg,
		out:     out,
		errOut:  io.Discard,
		now:     time.Now,
	}
}

func (c *cli) dispatch(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "times":
		return c.times(ctx, rest)
	case "next":
		return c.next(ctx, rest)
	case "settings":
		return c.settings(ctx, rest)
	case "log":
		return c.logPrayer(ctx, rest)
	case "add":
		return c.add(ctx, rest)
	case "import":
		return c.importRanges(ctx, rest)
	case "review":
		return c.review(ctx, rest)
	case "due":
		return c.due(ctx, rest)
	case "ranges":
		return c.ranges(ctx, rest)
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

func (c *cli) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", errUsage, fs.Name(), err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: %s: unexpected argument %q", errUsage, fs.Name(), fs.Arg(0))
	}
	return nil
}

// ---------------------------------------------------------------------------
// Prayer commands
// ---------------------------------------------------------------------------

func (c *cli) times(ctx context.Context, args []string) error {
	fs := c.flags("times")
	date := fs.String("date", "", "civil date YYYY-MM-DD (default today)")
	lat := fs.Float64("lat", 0, "latitude for this call only")
	lon := fs.Float64("lon", 0, "longitude for this call only")
	if err := parse(fs, args); err != nil {
		return err
	}

	tz, err := c.userZone(ctx)
	if err != nil {
		return err
	}
	day, err := c.parseDay(*date, tz)
	if err != nil {
		return err
	}

	in := prayer.TimesInput{Date: day}
	if isSet(fs, "lat") {
		in.Latitude = lat
	}
	if isSet(fs, "lon") {
		in.Longitude = lon
	}

	set, err := c.prayers.Times(ctx, in)
	if err != nil {
		return err
	}
	printTimes(c.out, set)
	return nil
}

func printTimes(w io.Writer, set domain.PrayerTimeSet) {
	fmt.Fprintf(w, "%s  %s  %s / %s\n",
		set.Date.Format("Mon 2 Jan 2006"), set.TimeZone, set.Method, set.Madhab)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row := func(name string, at *time.Time, note string) {
		clock := "--"
		if at != nil {
			clock = at.Format("15:04")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, clock, note)
	}

	for _, pt := range set.Times {
		switch {
		case !pt.Available():
			row(pt.Name.DisplayName(), nil, "no time on this date")
		case pt.Overridden():
			at := pt.At
			row(pt.Name.DisplayName(), &at, "manual")
		default:
			at := pt.At
			row(pt.Name.DisplayName(), &at, "")
		}
		if pt.Name == domain.PrayerFajr {
			row("Sunrise", set.Sunrise, "")
		}
	}
	_ = tw.Flush()
}

func (c *cli) next(ctx context.Context, args []string) error {
	if err := parse(c.flags("next"), args); err != nil {
		return err
	}

	n, err := c.prayers.Next(ctx, c.now())
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "%s at %s, in %s\n", n.DisplayName(), n.At.Format("15:04"), n.Countdown())
	if n.Current != nil {
		fmt.Fprintf(c.out, "current: %s\n", n.Current.DisplayName())
	}
	return nil
}

// overrides collects repeated -override PRAYER=HH:MM flags.
type overrides map[domain.PrayerName]string

func (o overrides) String() string {
	parts := make([]string, 0, len(o))
	for k, v := range o {
		parts = append(parts, string(k)+"="+v)
	}
	return strings.Join(parts, ",")
}

func (o overrides) Set(s string) error {
	name, clock, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("want PRAYER=HH:MM, got %q", s)
	}
	p, ok := domain.ParsePrayerName(strings.ToUpper(strings.TrimSpace(name)))
	if !ok {
		return fmt.Errorf("unknown prayer %q", name)
	}
	o[p] = strings.TrimSpace(clock)
	return nil
}

func (c *cli) settings(ctx context.Context, args []string) error {
	fs := c.flags("settings")
	lat := fs.Float64("lat", 0, "latitude")
	lon := fs.Float64("lon", 0, "longitude")
	city := fs.String("city", "", "city name")
	country := fs.String("country", "", "country name")
	tz := fs.String("tz", "", "IANA time zone")
	method := fs.String("method", "", "calculation method")
	madhab := fs.String("madhab", "", "Standard or Hanafi")
	rule := fs.String("rule", "", "high-latitude rule")
	ov := overrides{}
	fs.Var(ov, "override", "manual time PRAYER=HH:MM; empty time removes it (repeatable)")
	if err := parse(fs, args); err != nil {
		return err
	}

	var settings domain.PrayerSettings
	var err error
	if fs.NFlag() == 0 {
		settings, err = c.prayers.Settings(ctx)
	} else {
		in := prayer.UpdateSettingsInput{Overrides: ov}
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "lat":
				in.Latitude = lat
			case "lon":
				in.Longitude = lon
			case "city":
				in.City = city
			case "country":
				in.Country = country
			case "tz":
				in.TimeZone = tz
			case "method":
				in.Method = method
			case "madhab":
				in.Madhab = madhab
			case "rule":
				in.HighLatitudeRule = rule
			}
		})
		settings, err = c.prayers.UpdateSettings(ctx, in)
	}
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(c.out)
	enc.SetIndent(2)
	if err := enc.Encode(settings); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return enc.Close()
}

func (c *cli) logPrayer(ctx context.Context, args []string) error {
	fs := c.flags("log")
	date := fs.String("date", "", "civil date YYYY-MM-DD (default today)")
	name := fs.String("prayer", "", "Fajr, Dhuhr, Asr, Maghrib or Isha")
	status := fs.String("status", "on_time", "pending, on_time, late, missed or qada")
	jamaah := fs.Bool("jamaah", false, "prayed in congregation")
	before := fs.Bool("sunnah-before", false, "prayed the sunnah before")
	after := fs.Bool("sunnah-after", false, "prayed the sunnah after")
	notes := fs.String("notes", "", "free text")
	if err := parse(fs, args); err != nil {
		return err
	}

	tz, err := c.userZone(ctx)
	if err != nil {
		return err
	}
	day, err := c.parseDay(*date, tz)
	if err != nil {
		return err
	}

	if _, err := c.prayers.LogPrayer(ctx, prayer.LogPrayerInput{
		Date:         day,
		Prayer:       strings.ToUpper(strings.TrimSpace(*name)),
		Status:       *status,
		Jamaah:       *jamaah,
		SunnahBefore: *before,
		SunnahAfter:  *after,
		Notes:        *notes,
	}); err != nil {
		return err
	}

	entries, err := c.profile.PrayerLog(ctx, day)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\n", day.Format("Mon 2 Jan 2006"))
	for _, e := range entries {
		var extra []string
		if e.Jamaah {
			extra = append(extra, "jamaah")
		}
		if e.SunnahBefore {
			extra = append(extra, "sunnah before")
		}
		if e.SunnahAfter {
			extra = append(extra, "sunnah after")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Prayer.DisplayName(), e.Status, strings.Join(extra, ", "))
	}
	return tw.Flush()
}

// ---------------------------------------------------------------------------
// Revision commands
// ---------------------------------------------------------------------------

func (c *cli) add(ctx context.Context, args []string) error {
	fs := c.flags("add")
	surah := fs.Int("surah", 0, "surah number 1..114")
	from := fs.Int("from", 0, "first ayah (default 1)")
	to := fs.Int("to", 0, "last ayah (default: from, or the whole surah)")
	date := fs.String("date", "", "memorization date YYYY-MM-DD (default today)")
	if err := parse(fs, args); err != nil {
		return err
	}

	in := quran.AddRangeInput{Surah: *surah, AyahFrom: *from, AyahTo: *to}
	switch {
	case in.AyahFrom == 0 && in.AyahTo == 0:
		in.AyahFrom, in.AyahTo = 1, domain.AyahCount(in.Surah)
	case in.AyahTo == 0:
		in.AyahTo = in.AyahFrom
	}
	if *date != "" {
		d, err := c.parseDay(*date, c.revisionZone())
		if err != nil {
			return err
		}
		in.MemorizedOn = d
	}

	r, err := c.quran.AddRange(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "added %s (%s), first revision %s\n",
		r.Label(), shortID(r.ID), r.NextRevisionDate.Format(time.DateOnly))
	return nil
}

func (c *cli) importRanges(ctx context.Context, args []string) error {
	fs := c.flags("import")
	file := fs.String("file", "", "spreadsheet path (.xlsx)")
	sheet := fs.String("sheet", "", "sheet name (default: first sheet)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("%w: import: -file is required", errUsage)
	}

	rows, rowErrs, err := xlsx.ReadRanges(*file, *sheet)
	if err != nil {
		return err
	}

	imported := 0
	for _, row := range rows {
		_, err := c.quran.AddRange(ctx, quran.AddRangeInput{
			Surah:       row.Surah,
			AyahFrom:    row.AyahFrom,
			AyahTo:      row.AyahTo,
			MemorizedOn: row.MemorizedOn,
		})
		if err != nil {
			if !errors.Is(err, domain.ErrValidation) {
				return fmt.Errorf("row %d: %w", row.Row, err)
			}
			rowErrs = append(rowErrs, xlsx.RowError{Row: row.Row, Err: err})
			continue
		}
		imported++
	}

	for _, re := range rowErrs {
		fmt.Fprintf(c.out, "skipped %s\n", re.Error())
	}
	fmt.Fprintf(c.out, "imported %d range(s), skipped %d row(s)\n", imported, len(rowErrs))
	if len(rowErrs) > 0 {
		return domain.NewValidationError("file", fmt.Sprintf("%d row(s) rejected", len(rowErrs)))
	}
	return nil
}

func (c *cli) review(ctx context.Context, args []string) error {
	fs := c.flags("review")
	id := fs.String("range", "", "range ID (full UUID or unique prefix)")
	rating := fs.Int("rating", -1, "recall quality 1..5")
	date := fs.String("date", "", "revision date YYYY-MM-DD (default now)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id == "" || !isSet(fs, "rating") {
		return fmt.Errorf("%w: review: -range and -rating are required", errUsage)
	}

	rangeID, err := c.resolveRange(ctx, *id)
	if err != nil {
		return err
	}

	in := quran.ReviewInput{RangeID: rangeID, Rating: domain.QualityRating(*rating)}
	if *date != "" {
		d, err := c.parseDay(*date, c.revisionZone())
		if err != nil {
			return err
		}
		in.OccurredAt = d
	}

	r, err := c.quran.Review(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s: next revision %s (every %d day(s), ease %.2f)\n",
		r.Label(), r.NextRevisionDate.Format(time.DateOnly), r.CurrentIntervalDays, r.EaseFactor)
	return nil
}

func (c *cli) due(ctx context.Context, args []string) error {
	fs := c.flags("due")
	date := fs.String("date", "", "as of YYYY-MM-DD (default today)")
	if err := parse(fs, args); err != nil {
		return err
	}

	asOf := c.now()
	if *date != "" {
		d, err := c.parseDay(*date, c.revisionZone())
		if err != nil {
			return err
		}
		asOf = d
	}

	due, err := c.quran.Due(ctx, asOf)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		fmt.Fprintln(c.out, "nothing due")
		return nil
	}
	return printRanges(c.out, due)
}

func (c *cli) ranges(ctx context.Context, args []string) error {
	if err := parse(c.flags("ranges"), args); err != nil {
		return err
	}

	all, err := c.quran.Ranges(ctx)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Fprintln(c.out, "no ranges memorized yet")
		return nil
	}
	return printRanges(c.out, all)
}

func printRanges(w io.Writer, ranges []domain.MemorizedRange) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tRANGE\tNEXT\tINTERVAL\tEASE\tREPS")
	for _, r := range ranges {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%dd\t%.2f\t%d\n",
			shortID(r.ID), r.Label(), r.NextRevisionDate.Format(time.DateOnly),
			r.CurrentIntervalDays, r.EaseFactor, r.RepetitionCount)
	}
	return tw.Flush()
}

// resolveRange accepts a full UUID or a prefix matching exactly one range.
func (c *cli) resolveRange(ctx context.Context, s string) (uuid.UUID, error) {
	if id, err := uuid.Parse(s); err == nil {
		return id, nil
	}

	all, err := c.quran.Ranges(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	var match []uuid.UUID
	for _, r := range all {
		if strings.HasPrefix(r.ID.String(), strings.ToLower(s)) {
			match = append(match, r.ID)
		}
	}
	switch len(match) {
	case 0:
		return uuid.Nil, fmt.Errorf("range %s: %w", s, domain.ErrNotFound)
	case 1:
		return match[0], nil
	}
	return uuid.Nil, domain.NewValidationError("range", fmt.Sprintf("prefix %q matches %d ranges", s, len(match)))
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// userZone is the zone prayer dates are read in: the profile's, else the
// configured default.
func (c *cli) userZone(ctx context.Context) (*time.Location, error) {
	settings, err := c.prayers.Settings(ctx)
	if err != nil {
		return nil, err
	}
	name := settings.TimeZone
	if name == "" {
		name = c.cfg.Prayer.DefaultTimeZone
	}
	tz, err := time.LoadLocation(name)
	if err != nil {
		return nil, domain.NewValidationError("time_zone", "unknown time zone "+name)
	}
	return tz, nil
}

func (c *cli) revisionZone() *time.Location {
	return quran.ParseTimezone(c.cfg.Worker.TimeZone)
}

// parseDay reads YYYY-MM-DD as midnight in tz; empty means today in tz.
func (c *cli) parseDay(s string, tz *time.Location) (time.Time, error) {
	if s == "" {
		y, m, d := c.now().In(tz).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, tz), nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, tz)
	if err != nil {
		return time.Time{}, domain.NewValidationError("date", "want YYYY-MM-DD, got "+s)
	}
	return t, nil
}

func isSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
