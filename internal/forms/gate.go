// Package forms implements the submission flows behind every form: validate
// locally, submit, then either report a message or navigate and refetch.
package forms

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrBusy is returned when a form is submitted while its previous submission
// is still in flight.
var ErrBusy = errors.New("a submission is already in progress")

// Gate allows one submission at a time.
type Gate struct {
	busy atomic.Bool
}

// Busy reports whether a submission is in flight.
func (g *Gate) Busy() bool {
	return g.busy.Load()
}

// Do runs fn unless another call is in flight, in which case it returns
// ErrBusy without running fn.
func (g *Gate) Do(ctx context.Context, fn func(context.Context) error) error {
	if !g.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer g.busy.Store(false)
	return fn(ctx)
}
