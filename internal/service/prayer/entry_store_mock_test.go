package prayer

import (
	"context"
	"sync"

	"github.com/sabros/sabr-backend/internal/domain"
)

var _ entryStore = &entryStoreMock{}

type entryStoreMock struct {
	SavePrayerEntryFunc func(ctx context.Context, e domain.PrayerEntry) error

	calls struct {
		SavePrayerEntry []struct {
			Ctx context.Context
			E   domain.PrayerEntry
		}
	}
	lockSavePrayerEntry sync.RWMutex
}

func (mock *entryStoreMock) SavePrayerEntry(ctx context.Context, e domain.PrayerEntry) error {
	if mock.SavePrayerEntryFunc == nil {
		panic("entryStoreMock.SavePrayerEntryFunc: method is nil but entryStore.SavePrayerEntry was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.PrayerEntry
	}{Ctx: ctx, E: e}
	mock.lockSavePrayerEntry.Lock()
	mock.calls.SavePrayerEntry = append(mock.calls.SavePrayerEntry, callInfo)
	mock.lockSavePrayerEntry.Unlock()
	return mock.SavePrayerEntryFunc(ctx, e)
}

func (mock *entryStoreMock) SavePrayerEntryCalls() []struct {
	Ctx context.Context
	E   domain.PrayerEntry
} {
	mock.lockSavePrayerEntry.RLock()
	calls := mock.calls.SavePrayerEntry
	mock.lockSavePrayerEntry.RUnlock()
	return calls
}
