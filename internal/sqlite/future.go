package sqlite

import (
	"context"

	"github.com/mesh-intelligence/shelter/pkg/types"
)

var _ types.Future[int] = (*future[int])(nil)

// future runs a read on its own goroutine under a cancellable context.
// Once cancelled, the future resolves to the context error and drops any
// value the read produced.
type future[T any] struct {
	done   chan struct{}
	cancel context.CancelFunc
	val    T
	err    error
}

func startFuture[T any](ctx context.Context, fn func(context.Context) (T, error)) *future[T] {
	ctx, cancel := context.WithCancel(ctx)
	f := &future[T]{
		done:   make(chan struct{}),
		cancel: cancel,
	}
	go func() {
		defer close(f.done)
		val, err := fn(ctx)
		if cerr := ctx.Err(); cerr != nil {
			var zero T
			val, err = zero, cerr
		}
		f.val, f.err = val, err
		cancel()
	}()
	return f
}

func (f *future[T]) Done() <-chan struct{} {
	return f.done
}

func (f *future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (f *future[T]) Cancel() {
	f.cancel()
}
