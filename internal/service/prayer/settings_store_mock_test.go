package prayer

import (
	"context"
	"sync"

	"github.com/sabros/sabr-backend/internal/domain"
)

var _ settingsStore = &settingsStoreMock{}

type settingsStoreMock struct {
	PrayerSettingsFunc     func(ctx context.Context) (domain.PrayerSettings, error)
	SavePrayerSettingsFunc func(ctx context.Context, s domain.PrayerSettings) error

	calls struct {
		PrayerSettings []struct {
			Ctx context.Context
		}
		SavePrayerSettings []struct {
			Ctx context.Context
			S   domain.PrayerSettings
		}
	}
	lockPrayerSettings     sync.RWMutex
	lockSavePrayerSettings sync.RWMutex
}

func (mock *settingsStoreMock) PrayerSettings(ctx context.Context) (domain.PrayerSettings, error) {
	if mock.PrayerSettingsFunc == nil {
		panic("settingsStoreMock.PrayerSettingsFunc: method is nil but settingsStore.PrayerSettings was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockPrayerSettings.Lock()
	mock.calls.PrayerSettings = append(mock.calls.PrayerSettings, callInfo)
	mock.lockPrayerSettings.Unlock()
	return mock.PrayerSettingsFunc(ctx)
}

func (mock *settingsStoreMock) PrayerSettingsCalls() []struct {
	Ctx context.Context
} {
	mock.lockPrayerSettings.RLock()
	calls := mock.calls.PrayerSettings
	mock.lockPrayerSettings.RUnlock()
	return calls
}

func (mock *settingsStoreMock) SavePrayerSettings(ctx context.Context, s domain.PrayerSettings) error {
	if mock.SavePrayerSettingsFunc == nil {
		panic("settingsStoreMock.SavePrayerSettingsFunc: method is nil but settingsStore.SavePrayerSettings was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   domain.PrayerSettings
	}{Ctx: ctx, S: s}
	mock.lockSavePrayerSettings.Lock()
	mock.calls.SavePrayerSettings = append(mock.calls.SavePrayerSettings, callInfo)
	mock.lockSavePrayerSettings.Unlock()
	return mock.SavePrayerSettingsFunc(ctx, s)
}

func (mock *settingsStoreMock) SavePrayerSettingsCalls() []struct {
	Ctx context.Context
	S   domain.PrayerSettings
} {
	mock.lockSavePrayerSettings.RLock()
	calls := mock.calls.SavePrayerSettings
	mock.lockSavePrayerSettings.RUnlock()
	return calls
}
