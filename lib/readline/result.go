//
// result.go
//
// Copyright (c) 2021 Markku Rossi
//
// All rights reserved.
//

package readline

import (
	"context"
	"sync"
)

// Result is the outcome of Commit or Rollback. It completes once the
// stream has acknowledged the write.
type Result struct {
	once sync.Once
	done chan struct{}
	err  error
}

func newResult() *Result {
	return &Result{
		done: make(chan struct{}),
	}
}

func completed(err error) *Result {
	r := newResult()
	r.resolve(err)
	return r
}

func (r *Result) resolve(err error) {
	r.once.Do(func() {
		r.err = err
		close(r.done)
	})
}

// Done returns a channel that is closed when the result completes.
func (r *Result) Done() <-chan struct{} {
	return r.done
}

// Err returns the write error. It is valid after Done is closed.
func (r *Result) Err() error {
	select {
	case <-r.done:
		return r.err
	default:
		return nil
	}
}

// Wait waits until the result completes or ctx is done. Giving up on
// ctx does not cancel the write.
func (r *Result) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
