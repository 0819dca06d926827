// Command worker runs the background scheduler: it publishes the day's prayer
// times and the next-prayer countdown to MQTT screens and sends the morning
// revision digest over Telegram. Integrations that are disabled in the
// configuration are skipped.
//
// Exit codes: 0 = stopped by signal, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/sabros/sabr-backend/internal/app"
)

func main() {
	a, ctx, err := app.New(context.Background())
	if err != nil {
		log.Fatalf("init: %v", err)
	}

	err = a.RunWorker(ctx)
	a.Close()
	if err != nil {
		a.Log.Error("worker failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
