package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/procurement/internal/domain/model"
)

// OutboxFacade exposes the subset of application functionality required by the worker.
type OutboxFacade interface {
	ClaimOutbox(ctx context.Context, limit int) ([]model.OutboxMessage, error)
	ProcessOutbox(ctx context.Context, msg model.OutboxMessage) error
	PurgeOutbox(ctx context.Context) (int64, error)
}

const defaultPurgeInterval = time.Hour

// OutboxDispatcher polls the outbox and delivers side effects concurrently.
type OutboxDispatcher struct {
	facade        OutboxFacade
	pollInterval  time.Duration
	purgeInterval time.Duration
	batchSize     int
	workers       int
	logger        *slog.Logger

	jobs   chan model.OutboxMessage
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewOutboxDispatcher constructs the dispatcher worker pool.
func NewOutboxDispatcher(facade OutboxFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *OutboxDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &OutboxDispatcher{
		facade:        facade,
		pollInterval:  pollInterval,
		purgeInterval: defaultPurgeInterval,
		batchSize:     batchSize,
		workers:       workers,
		logger:        logger,
		jobs:          make(chan model.OutboxMessage, batchSize*workers),
	}
}

// Start launches background delivery.
func (d *OutboxDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}

	d.wg.Add(1)
	go d.dispatch(runCtx)
}

// Stop waits for all workers to finish. Leased messages left undelivered are retried after the lease expires.
func (d *OutboxDispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *OutboxDispatcher) dispatch(ctx context.Context) {
	defer d.wg.Done()
	defer close(d.jobs)
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()
	purge := time.NewTicker(d.purgeInterval)
	defer purge.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.claimAndDispatch(ctx)
		case <-purge.C:
			d.purge(ctx)
		}
	}
}

func (d *OutboxDispatcher) purge(ctx context.Context) {
	n, err := d.facade.PurgeOutbox(ctx)
	if err != nil {
		d.logger.Error("purge outbox messages failed", slog.String("error", err.Error()))
		return
	}
	if n > 0 {
		d.logger.Info("purged delivered outbox messages", slog.Int64("count", n))
	}
}

func (d *OutboxDispatcher) claimAndDispatch(ctx context.Context) {
	msgs, err := d.facade.ClaimOutbox(ctx, d.batchSize)
	if err != nil {
		d.logger.Error("claim outbox messages failed", slog.String("error", err.Error()))
		return
	}
	for _, msg := range msgs {
		select {
		case <-ctx.Done():
			return
		case d.jobs <- msg:
		}
	}
}

func (d *OutboxDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-d.jobs:
			if !ok {
				return
			}
			d.handle(ctx, msg)
		}
	}
}

func (d *OutboxDispatcher) handle(ctx context.Context, msg model.OutboxMessage) {
	if err := d.facade.ProcessOutbox(ctx, msg); err != nil {
		d.logger.Warn("outbox delivery failed",
			slog.Int64("id", msg.ID),
			slog.String("kind", string(msg.Kind)),
			slog.Int("attempt", msg.Attempts+1),
			slog.String("error", err.Error()))
		return
	}
	d.logger.Debug("outbox message delivered", slog.Int64("id", msg.ID), slog.String("kind", string(msg.Kind)))
}
