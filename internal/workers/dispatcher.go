// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/gsc-identity/internal/config"
	"github.com/MKhiriev/gsc-identity/internal/logger"
	"github.com/MKhiriev/gsc-identity/internal/metrics"
)

type task struct {
	ctx  context.Context
	name string
	fn   func(ctx context.Context) error
}

// Dispatcher executes submitted tasks on a bounded pool of goroutines.
// Task failures are logged with the task name and the logger of the
// submitting request; they never reach the submitter.
type Dispatcher struct {
	queue    chan task
	poolSize int

	mu     sync.RWMutex
	closed bool

	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewDispatcher(cfg config.Workers, m *metrics.Metrics, logger *logger.Logger) *Dispatcher {
	poolSize := max(cfg.PoolSize, 1)
	return &Dispatcher{
		queue:    make(chan task, max(cfg.QueueSize, 0)),
		poolSize: poolSize,
		metrics:  m,
		logger:   logger,
	}
}

// Submit queues fn. The task runs with a context detached from ctx's
// cancellation but carrying its values. When the queue is full Submit
// waits for room until ctx is done; tasks that cannot be queued are
// dropped and logged.
func (d *Dispatcher) Submit(ctx context.Context, name string, fn func(ctx context.Context) error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	log := logger.FromContext(ctx)
	if d.closed {
		log.Warn().Str("task", name).Msg("dispatcher stopped, task dropped")
		d.metrics.RecordTaskDropped()
		return
	}

	t := task{ctx: context.WithoutCancel(ctx), name: name, fn: fn}
	select {
	case d.queue <- t:
	case <-ctx.Done():
		log.Warn().Str("task", name).Msg("request ended before task was queued, task dropped")
		d.metrics.RecordTaskDropped()
	}
}

// Run starts the pool and blocks until ctx is cancelled. Queued tasks are
// drained before Run returns.
func (d *Dispatcher) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for range d.poolSize {
		wg.Go(func() {
			for t := range d.queue {
				d.execute(t)
			}
		})
	}

	<-ctx.Done()

	d.mu.Lock()
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	wg.Wait()
	d.logger.Info().Msg("task dispatcher stopped")
}

func (d *Dispatcher) execute(t task) {
	log := logger.FromContext(t.ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("task", t.name).Str("panic", fmt.Sprint(r)).Msg("background task panicked")
			d.metrics.RecordTaskFailure(t.name)
		}
	}()

	if err := t.fn(t.ctx); err != nil {
		log.Err(err).Str("task", t.name).Msg("background task failed")
		d.metrics.RecordTaskFailure(t.name)
	}
}
