package test

import (
	"context"
	"sync"

	"github.com/polkiloo/factra/internal/domain/model"
)

// RefreshFacadeStub counts snapshot refreshes and lets tests script their outcome.
type RefreshFacadeStub struct {
	sync.Mutex
	RefreshFn func(ctx context.Context, call int) (*model.SyncReport, error)
	Calls     int
}

// RefreshSnapshot records the call and delegates to RefreshFn when set.
func (s *RefreshFacadeStub) RefreshSnapshot(ctx context.Context) (*model.SyncReport, error) {
	s.Lock()
	s.Calls++
	call := s.Calls
	fn := s.RefreshFn
	s.Unlock()

	if fn != nil {
		return fn(ctx, call)
	}
	return &model.SyncReport{}, nil
}

// CallCount returns the number of refreshes seen so far.
func (s *RefreshFacadeStub) CallCount() int {
	s.Lock()
	defer s.Unlock()
	return s.Calls
}
