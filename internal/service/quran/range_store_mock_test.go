package quran

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/sabros/sabr-backend/internal/domain"
)

var _ rangeStore = &rangeStoreMock{}

type rangeStoreMock struct {
	GetRangeFunc   func(ctx context.Context, id uuid.UUID) (domain.MemorizedRange, error)
	ListRangesFunc func(ctx context.Context) ([]domain.MemorizedRange, error)
	SaveRangeFunc  func(ctx context.Context, r domain.MemorizedRange) error

	calls struct {
		GetRange []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListRanges []struct {
			Ctx context.Context
		}
		SaveRange []struct {
			Ctx context.Context
			R   domain.MemorizedRange
		}
	}
	lockGetRange   sync.RWMutex
	lockListRanges sync.RWMutex
	lockSaveRange  sync.RWMutex
}

func (mock *rangeStoreMock) GetRange(ctx context.Context, id uuid.UUID) (domain.MemorizedRange, error) {
	if mock.GetRangeFunc == nil {
		panic("rangeStoreMock.GetRangeFunc: method is nil but rangeStore.GetRange was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetRange.Lock()
	mock.calls.GetRange = append(mock.calls.GetRange, callInfo)
	mock.lockGetRange.Unlock()
	return mock.GetRangeFunc(ctx, id)
}

func (mock *rangeStoreMock) GetRangeCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetRange.RLock()
	calls := mock.calls.GetRange
	mock.lockGetRange.RUnlock()
	return calls
}

func (mock *rangeStoreMock) ListRanges(ctx context.Context) ([]domain.MemorizedRange, error) {
	if mock.ListRangesFunc == nil {
		panic("rangeStoreMock.ListRangesFunc: method is nil but rangeStore.ListRanges was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListRanges.Lock()
	mock.calls.ListRanges = append(mock.calls.ListRanges, callInfo)
	mock.lockListRanges.Unlock()
	return mock.ListRangesFunc(ctx)
}

func (mock *rangeStoreMock) ListRangesCalls() []struct {
	Ctx context.Context
} {
	mock.lockListRanges.RLock()
	calls := mock.calls.ListRanges
	mock.lockListRanges.RUnlock()
	return calls
}

func (mock *rangeStoreMock) SaveRange(ctx context.Context, r domain.MemorizedRange) error {
	if mock.SaveRangeFunc == nil {
		panic("rangeStoreMock.SaveRangeFunc: method is nil but rangeStore.SaveRange was just called")
	}
	callInfo := struct {
		Ctx context.Context
		R   domain.MemorizedRange
	}{Ctx: ctx, R: r}
	mock.lockSaveRange.Lock()
	mock.calls.SaveRange = append(mock.calls.SaveRange, callInfo)
	mock.lockSaveRange.Unlock()
	return mock.SaveRangeFunc(ctx, r)
}

func (mock *rangeStoreMock) SaveRangeCalls() []struct {
	Ctx context.Context
	R   domain.MemorizedRange
} {
	mock.lockSaveRange.RLock()
	calls := mock.calls.SaveRange
	mock.lockSaveRange.RUnlock()
	return calls
}
