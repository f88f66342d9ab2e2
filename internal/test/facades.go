package test

import (
	"context"
	"sync"

	"github.com/polkiloo/procurement/internal/domain/model"
)

// OutboxFacadeStub provides configurable behaviour for the outbox dispatcher.
type OutboxFacadeStub struct {
	sync.Mutex
	Batches   [][]model.OutboxMessage
	ClaimErr  error
	ProcessFn func(context.Context, model.OutboxMessage) error
	Processed []model.OutboxMessage
	Claims    int
	Purges    int
}

func (s *OutboxFacadeStub) ClaimOutbox(ctx context.Context, limit int) ([]model.OutboxMessage, error) {
	s.Lock()
	defer s.Unlock()
	s.Claims++
	if s.ClaimErr != nil {
		return nil, s.ClaimErr
	}
	if len(s.Batches) == 0 {
		return nil, nil
	}
	batch := s.Batches[0]
	s.Batches = s.Batches[1:]
	if len(batch) > limit {
		batch = batch[:limit]
	}
	return batch, nil
}

func (s *OutboxFacadeStub) ProcessOutbox(ctx context.Context, msg model.OutboxMessage) error {
	var err error
	if s.ProcessFn != nil {
		err = s.ProcessFn(ctx, msg)
	}
	s.Lock()
	defer s.Unlock()
	s.Processed = append(s.Processed, msg)
	return err
}

func (s *OutboxFacadeStub) PurgeOutbox(context.Context) (int64, error) {
	s.Lock()
	defer s.Unlock()
	s.Purges++
	return 0, nil
}
