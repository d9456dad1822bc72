// Package task provides single-result asynchronous values.
//
// A Task runs a function on its own goroutine and delivers exactly one
// result. Callers either block on Await or select on Done.
package task

import (
	"context"
	"sync"
)

type Task[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
	err   error
}

func newTask[T any]() *Task[T] {
	return &Task[T]{done: make(chan struct{})}
}

// Run starts fn in a new goroutine. ctx is passed to fn unchanged; fn is
// expected to honour its cancellation.
func Run[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Task[T] {
	t := newTask[T]()
	go func() {
		v, err := fn(ctx)
		t.complete(v, err)
	}()
	return t
}

// Completed returns a task that is already resolved.
func Completed[T any](v T, err error) *Task[T] {
	t := newTask[T]()
	t.complete(v, err)
	return t
}

func (t *Task[T]) complete(v T, err error) {
	t.once.Do(func() {
		t.value = v
		t.err = err
		close(t.done)
	})
}

// Done is closed once the result is available.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Await blocks until the task resolves or ctx ends.
func (t *Task[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.value, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result returns the outcome and whether the task has resolved.
func (t *Task[T]) Result() (T, bool, error) {
	select {
	case <-t.done:
		return t.value, true, t.err
	default:
		var zero T
		return zero, false, nil
	}
}
