package task

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPoolProcessesTasks(t *testing.T) {
	logger := setupTestLogger()
	queue := NewTaskQueue(10, logger)

	var mu sync.Mutex
	executed := make(map[string]bool)
	done := make(chan struct{}, 3)

	for i := 0; i < 3; i++ {
		task := newMockTask()
		task.execFn = func(id string) func(ctx context.Context) error {
			return func(ctx context.Context) error {
				mu.Lock()
				executed[id] = true
				mu.Unlock()
				done <- struct{}{}
				return nil
			}
		}(task.id.String())
		require.NoError(t, queue.Enqueue(task))
	}

	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: 2}, logger)
	pool.Start()
	defer pool.Stop()

	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for tasks to execute")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, executed, 3)
}

func TestWorkerPoolErrorHandler(t *testing.T) {
	logger := setupTestLogger()
	queue := NewTaskQueue(1, logger)

	failing := newMockTask()
	failing.execFn = func(ctx context.Context) error {
		return errors.New("task error")
	}
	require.NoError(t, queue.Enqueue(failing))

	handled := make(chan error, 1)
	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: 1}, logger)
	pool.SetErrorHandler(func(task Task, err error) {
		handled <- err
	})

	pool.Start()
	defer pool.Stop()

	select {
	case err := <-handled:
		assert.ErrorContains(t, err, "task error")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for error handler")
	}
}

func TestWorkerPoolSurvivesPanickingTask(t *testing.T) {
	logger := setupTestLogger()
	queue := NewTaskQueue(2, logger)

	panicking := newMockTask()
	panicking.execFn = func(ctx context.Context) error {
		panic("task exploded")
	}

	done := make(chan struct{}, 1)
	healthy := newMockTask()
	healthy.execFn = func(ctx context.Context) error {
		done <- struct{}{}
		return nil
	}

	require.NoError(t, queue.Enqueue(panicking))
	require.NoError(t, queue.Enqueue(healthy))

	// A single worker must survive the panic to reach the second task
	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: 1}, logger)
	pool.Start()
	defer pool.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive the panicking task")
	}
}

func TestWorkerPoolDefaultsInvalidWorkerCount(t *testing.T) {
	logger := setupTestLogger()
	queue := NewTaskQueue(1, logger)

	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: 0}, logger)
	assert.Equal(t, 1, pool.workerCount)
}

func TestWorkerPoolStopAfterQueueClose(t *testing.T) {
	logger := setupTestLogger()
	queue := NewTaskQueue(1, logger)

	pool := NewWorkerPool(queue, DefaultWorkerPoolConfig(), logger)
	pool.Start()

	queue.Close()

	// Workers exit on channel close; Stop must return promptly either way
	stopped := make(chan struct{})
	go func() {
		pool.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("worker pool did not stop")
	}
}
