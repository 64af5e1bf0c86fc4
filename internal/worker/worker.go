package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	ErrQueueFull  = errors.New("worker: task queue full")
	ErrPoolClosed = errors.New("worker: pool is shut down")
)

// Task is a function that represents a background job
type Task func(ctx context.Context) error

type WorkerPool struct {
	ctx       context.Context
	taskQueue chan Task
	wg        sync.WaitGroup

	mu      sync.RWMutex
	closing bool
}

// NewWorkerPool starts size workers. Tasks run with ctx.
func NewWorkerPool(ctx context.Context, size, queueSize int) *WorkerPool {
	if size < 1 {
		size = 1
	}
	wp := &WorkerPool{
		ctx:       ctx,
		taskQueue: make(chan Task, queueSize),
	}

	for range size {
		wp.wg.Add(1)
		go wp.startWorker()
	}

	return wp
}

func (wp *WorkerPool) startWorker() {
	defer wp.wg.Done()
	for task := range wp.taskQueue {
		if err := task(wp.ctx); err != nil {
			log.Error().Err(err).Msg("worker task failed")
		}
	}
}

// Submit queues t without blocking.
func (wp *WorkerPool) Submit(t Task) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.closing {
		return ErrPoolClosed
	}
	select {
	case wp.taskQueue <- t:
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown stops accepting tasks and waits for queued ones to finish
func (wp *WorkerPool) Shutdown() {
	wp.mu.Lock()
	if wp.closing {
		wp.mu.Unlock()
		return
	}
	wp.closing = true
	close(wp.taskQueue)
	wp.mu.Unlock()

	wp.wg.Wait()
}
