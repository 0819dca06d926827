package prayer

import (
	"context"
	"sync"

	"github.com/sabros/sabr-backend/internal/domain"
)

var _ timesCache = &timesCacheMock{}

type timesCacheMock struct {
	GetTimesFunc func(ctx context.Context, key string) (domain.PrayerTimeSet, bool, error)
	SetTimesFunc func(ctx context.Context, key string, set domain.PrayerTimeSet) error

	calls struct {
		GetTimes []struct {
			Ctx context.Context
			Key string
		}
		SetTimes []struct {
			Ctx context.Context
			Key string
			Set domain.PrayerTimeSet
		}
	}
	lockGetTimes sync.RWMutex
	lockSetTimes sync.RWMutex
}

func (mock *timesCacheMock) GetTimes(ctx context.Context, key string) (domain.PrayerTimeSet, bool, error) {
	if mock.GetTimesFunc == nil {
		panic("timesCacheMock.GetTimesFunc: method is nil but timesCache.GetTimes was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
	}{Ctx: ctx, Key: key}
	mock.lockGetTimes.Lock()
	mock.calls.GetTimes = append(mock.calls.GetTimes, callInfo)
	mock.lockGetTimes.Unlock()
	return mock.GetTimesFunc(ctx, key)
}

func (mock *timesCacheMock) GetTimesCalls() []struct {
	Ctx context.Context
	Key string
} {
	mock.lockGetTimes.RLock()
	calls := mock.calls.GetTimes
	mock.lockGetTimes.RUnlock()
	return calls
}

func (mock *timesCacheMock) SetTimes(ctx context.Context, key string, set domain.PrayerTimeSet) error {
	if mock.SetTimesFunc == nil {
		panic("timesCacheMock.SetTimesFunc: method is nil but timesCache.SetTimes was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
		Set domain.PrayerTimeSet
	}{Ctx: ctx, Key: key, Set: set}
	mock.lockSetTimes.Lock()
	mock.calls.SetTimes = append(mock.calls.SetTimes, callInfo)
	mock.lockSetTimes.Unlock()
	return mock.SetTimesFunc(ctx, key, set)
}

func (mock *timesCacheMock) SetTimesCalls() []struct {
	Ctx context.Context
	Key string
	Set domain.PrayerTimeSet
} {
	mock.lockSetTimes.RLock()
	calls := mock.calls.SetTimes
	mock.lockSetTimes.RUnlock()
	return calls
}
