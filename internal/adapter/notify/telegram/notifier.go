// Package telegram sends the daily revision digest through a Telegram bot.
package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/sabros/sabr-backend/internal/config"
	"github.com/sabros/sabr-backend/internal/domain"
)

// maxListed caps the ranges listed in one message; Telegram rejects
// messages over 4096 characters.
const maxListed = 40

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier sends messages to one chat.
type Notifier struct {
	api    sender
	chatID int64
}

// New authenticates the bot token from cfg.
func New(cfg config.TelegramConfig) (*Notifier, error) {
	return newWithEndpoint(cfg, tgbotapi.APIEndpoint)
}

func newWithEndpoint(cfg config.TelegramConfig, endpoint string) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(cfg.Token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &Notifier{api: api, chatID: cfg.ChatID}, nil
}

// SendDigest sends the revision digest.
func (n *Notifier) SendDigest(ctx context.Context, d domain.RevisionDigest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, FormatDigest(d))
	msg.DisableWebPagePreview = true
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("telegram: send digest: %w", err)
	}
	return nil
}

// FormatDigest renders the digest as plain text.
func FormatDigest(d domain.RevisionDigest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Revision for %s\n", d.Date.Format("Mon 2 Jan 2006"))

	if len(d.Due) == 0 {
		fmt.Fprintf(&b, "Nothing due today. %d %s memorized.", d.Total, plural(d.Total, "range", "ranges"))
		return b.String()
	}

	fmt.Fprintf(&b, "%d %s due", len(d.Due), plural(len(d.Due), "range", "ranges"))
	if d.Overdue > 0 {
		fmt.Fprintf(&b, " (%d overdue)", d.Overdue)
	}
	if d.RevisedToday > 0 {
		fmt.Fprintf(&b, ", %d revised today", d.RevisedToday)
	}
	b.WriteString("\n")

	today := dayOf(d.Date)
	for i, r := range d.Due {
		if i == maxListed {
			fmt.Fprintf(&b, "\n... and %d more", len(d.Due)-maxListed)
			break
		}
		fmt.Fprintf(&b, "\n- %s", r.Label())
		if due := dayOf(r.NextRevisionDate); due.Before(today) {
			fmt.Fprintf(&b, " (due %s)", due.Format(time.DateOnly))
		}
	}
	return b.String()
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
