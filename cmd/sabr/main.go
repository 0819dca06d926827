// Command sabr is the command-line front end for prayer times, the prayer log
// and Qur'an revision.
//
// Usage:
//
//	sabr times    [-date YYYY-MM-DD] [-lat N -lon N]
//	sabr next
//	sabr settings [-lat N -lon N] [-city S] [-country S] [-tz ZONE]
//	              [-method M] [-madhab M] [-rule R] [-override PRAYER=HH:MM ...]
//	sabr log      -prayer NAME -status STATUS [-date YYYY-MM-DD] [-jamaah]
//	              [-sunnah-before] [-sunnah-after] [-notes TEXT]
//	sabr add      -surah N [-from N] [-to N] [-date YYYY-MM-DD]
//	sabr import   -file PATH [-sheet NAME]
//	sabr review   -range ID -rating 1..5 [-date YYYY-MM-DD]
//	sabr due      [-date YYYY-MM-DD]
//	sabr ranges
//	sabr version
//
// Exit codes: 0 = success, 1 = error, 2 = invalid usage or input.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/sabros/sabr-backend/internal/app"
	"github.com/sabros/sabr-backend/internal/domain"
	"github.com/sabros/sabr-backend/pkg/ctxutil"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "help" {
		fmt.Fprint(stderr, usage)
		return 2
	}
	if args[0] == "version" {
		fmt.Fprintln(stdout, app.BuildVersion())
		return 0
	}

	a, ctx, err := app.New(context.Background())
	if err != nil {
		log.Printf("init: %v", err)
		return 1
	}
	defer a.Close()

	ctx = ctxutil.NewRun(ctx)
	c := newCLI(a.Prayers, a.Quran, a.Profile, a.Config, stdout)
	c.errOut = stderr

	err = c.dispatch(ctx, args)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, err)
		fmt.Fprint(stderr, usage)
		return 2
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrMissingLocation), errors.Is(err, domain.ErrNotFound):
		fmt.Fprintln(stderr, "sabr:", err)
		return 2
	default:
		a.Log.ErrorContext(ctx, "command failed",
			slog.String("command", args[0]),
			slog.String("error", err.Error()),
		)
		return 1
	}
}

const usage = `usage: sabr <command> [flags]

commands:
  times     prayer times for a day
  next      the next prayer and the time remaining
  settings  show or change prayer settings
  log       record how a prayer was performed
  add       record a newly memorized range
  import    add ranges from a spreadsheet
  review    rate a revision of a range
  due       ranges due for revision
  ranges    all memorized ranges
  version   print the build version

run "sabr <command> -h" for the flags of a command
`
