// Package quran manages memorized Qur'an ranges and their revision schedule.
package quran

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sabros/sabr-backend/internal/domain"
	"github.com/sabros/sabr-backend/internal/service/quran/sm2"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type rangeStore interface {
	ListRanges(ctx context.Context) ([]domain.MemorizedRange, error)
	GetRange(ctx context.Context, id uuid.UUID) (domain.MemorizedRange, error)
	SaveRange(ctx context.Context, r domain.MemorizedRange) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the revision business logic.
type Service struct {
	ranges rangeStore
	log    *slog.Logger
	params sm2.Parameters
	tz     *time.Location
	now    func() time.Time
}

// NewService creates a new revision service. Calendar days are read in tz;
// nil means UTC.
func NewService(
	log *slog.Logger,
	ranges rangeStore,
	params sm2.Parameters,
	tz *time.Location,
) *Service {
	if tz == nil {
		tz = time.UTC
	}
	return &Service{
		ranges: ranges,
		log:    log.With("service", "quran"),
		params: params,
		tz:     tz,
		now:    time.Now,
	}
}
