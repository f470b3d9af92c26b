// Package sideeffects runs post-commit collaborator calls (audit,
// notification, payment creation) outside the transaction's success path.
// Tasks are fire-and-forget: failures are logged and swallowed, and a full
// queue drops tasks instead of blocking the request that produced them.
package sideeffects

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Task is a single deferred collaborator call.
type Task func(ctx context.Context) error

type queued struct {
	name string
	run  Task
}

// Dispatcher owns a bounded task queue drained by one worker goroutine.
// Enqueue never blocks.
type Dispatcher struct {
	logger  *slog.Logger
	tasks   chan queued
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewDispatcher creates and starts a dispatcher with the given queue size.
func NewDispatcher(logger *slog.Logger, queueSize int) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}

	d := &Dispatcher{
		logger:  logger.With("component", "sideeffect_dispatcher"),
		tasks:   make(chan queued, queueSize),
		timeout: 30 * time.Second,
		done:    make(chan struct{}),
	}
	go d.worker()

	return d
}

// Enqueue schedules a task for execution. When the queue is full the task is
// dropped with a warning; the caller's operation already committed and must
// not fail or block because of a collaborator.
func (d *Dispatcher) Enqueue(name string, run Task) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("Side effect dropped, dispatcher is closed", "task", name)
		return
	}

	select {
	case d.tasks <- queued{name: name, run: run}:
	default:
		d.logger.Warn("Side effect dropped, queue is full", "task", name)
	}
}

// Close stops accepting tasks, drains the queue and waits for the worker.
// Tasks enqueued after Close are dropped with a warning.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.tasks)
	d.mu.Unlock()

	<-d.done
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for task := range d.tasks {
		d.execute(task)
	}
}

func (d *Dispatcher) execute(task queued) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	// A panicking task must not take down the worker, let alone the process.
	defer func() {
		if r := recover(); r != nil {
			d.logger.ErrorContext(ctx, "Side effect panicked", "task", task.name, "panic", r)
		}
	}()

	if err := task.run(ctx); err != nil {
		d.logger.ErrorContext(ctx, "Side effect failed", "task", task.name, "error", err)
	}
}
