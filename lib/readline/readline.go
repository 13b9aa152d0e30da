//
// readline.go
//
// Copyright (c) 2018-2021 Markku Rossi
//
// All rights reserved.
//

// Package readline implements batched cursor and screen control for
// interactive terminal programs, and a line editor built on it.
package readline

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/markkurossi/vtctl/lib/csi"
	"github.com/markkurossi/vtctl/lib/stream"
	"github.com/markkurossi/vtctl/lib/validate"
)

// ErrAutoCommit is returned by Commit in the auto-commit mode.
var ErrAutoCommit = errors.New("readline: commit in auto-commit mode")

// Readline collects cursor and erase operations and writes them to
// its stream in one batch on Commit. The operations return the
// Readline so that they can be chained:
//
//	err := rl.CursorTo(0).ClearLine(1).Commit().Wait(ctx)
//
// An operation with invalid arguments queues nothing and records its
// error. The rest of the chain is skipped and the error is returned
// by Err and by the next Commit. In the auto-commit mode every
// operation is its own batch: Err reports the error of the latest
// operation and nothing is skipped. A Readline must not be used from
// multiple goroutines concurrently.
type Readline struct {
	stream     stream.Stream
	log        *zap.Logger
	autoCommit bool
	emit       func(data string)
	todo       []string
	err        error
}

// New creates a controller writing to s.
func New(s stream.Stream, opts ...Option) (*Readline, error) {
	if !stream.IsWritable(s) {
		return nil, &validate.ArgTypeError{
			Name:     "stream",
			Expected: "Writable",
			Value:    s,
		}
	}
	rl := &Readline{
		stream: s,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(rl)
	}
	if rl.autoCommit {
		rl.emit = rl.dispatch
	} else {
		rl.emit = rl.enqueue
	}
	return rl, nil
}

// AutoCommit tests if the controller is in the auto-commit mode.
func (rl *Readline) AutoCommit() bool {
	return rl.autoCommit
}

// Err returns the pending validation error. In the auto-commit mode
// it is the error of the latest operation.
func (rl *Readline) Err() error {
	return rl.err
}

// Pending returns the number of queued entries.
func (rl *Readline) Pending() int {
	return len(rl.todo)
}

func (rl *Readline) enqueue(data string) {
	rl.todo = append(rl.todo, data)
}

func (rl *Readline) dispatch(data string) {
	rl.stream.Write([]byte(data), func(err error) {
		if err != nil {
			rl.log.Warn("auto-commit write failed",
				zap.Int("bytes", len(data)), zap.Error(err))
		}
	})
}

// skip tests if the operation belongs to a failed chain.
func (rl *Readline) skip() bool {
	if rl.autoCommit {
		rl.err = nil
		return false
	}
	return rl.err != nil
}

func (rl *Readline) fail(err error) *Readline {
	if rl.err == nil {
		rl.err = err
	}
	return rl
}

// CursorTo moves the cursor to the column x and, if y is given, to
// the row y. Both are 0-based.
func (rl *Readline) CursorTo(x int, y ...int) *Readline {
	if rl.skip() {
		return rl
	}
	if err := validate.SafeInt(x, "x"); err != nil {
		return rl.fail(err)
	}
	switch len(y) {
	case 0:
		rl.emit(csi.CursorColumn(x + 1))

	case 1:
		if err := validate.SafeInt(y[0], "y"); err != nil {
			return rl.fail(err)
		}
		rl.emit(csi.CursorPosition(y[0]+1, x+1))

	default:
		return rl.fail(&validate.ArgTypeError{
			Name:     "y",
			Expected: "integer",
			Value:    y,
		})
	}
	return rl
}

// MoveCursor moves the cursor relative to its current position.
// Negative dx moves left and negative dy moves up.
func (rl *Readline) MoveCursor(dx, dy int) *Readline {
	if rl.skip() || (dx == 0 && dy == 0) {
		return rl
	}
	if err := validate.SafeInt(dx, "dx"); err != nil {
		return rl.fail(err)
	}
	if err := validate.SafeInt(dy, "dy"); err != nil {
		return rl.fail(err)
	}

	var data string

	if dx < 0 {
		data += csi.CursorBackward(-dx)
	} else if dx > 0 {
		data += csi.CursorForward(dx)
	}

	if dy < 0 {
		data += csi.CursorUp(-dy)
	} else if dy > 0 {
		data += csi.CursorDown(dy)
	}

	rl.emit(data)
	return rl
}

// ClearLine clears the cursor line: -1 from the line start to the
// cursor, 1 from the cursor to the line end, and 0 the entire line.
func (rl *Readline) ClearLine(dir int) *Readline {
	if rl.skip() {
		return rl
	}
	if err := validate.Int(dir, "dir", -1, 1); err != nil {
		return rl.fail(err)
	}
	rl.emit(csi.EraseInLine(dir))
	return rl
}

// ClearScreenDown clears the screen from the cursor down.
func (rl *Readline) ClearScreenDown() *Readline {
	if rl.skip() {
		return rl
	}
	rl.emit(csi.EraseScreenTail)
	return rl
}

// Write queues raw output, such as text or single-byte controls,
// in the current batch.
func (rl *Readline) Write(p []byte) (int, error) {
	if rl.skip() {
		return 0, rl.err
	}
	if len(p) > 0 {
		rl.emit(string(p))
	}
	return len(p), nil
}

// Commit writes all queued entries to the stream in a single write.
// The returned Result completes when the stream has acknowledged the
// write. The queue is emptied before Commit returns, so operations
// issued while the write is in flight go into the next batch. An
// empty queue is committed as an empty write. In the auto-commit mode
// Commit fails with ErrAutoCommit.
func (rl *Readline) Commit() *Result {
	if rl.err != nil {
		err := rl.err
		rl.err = nil
		return completed(err)
	}
	if rl.autoCommit {
		return completed(ErrAutoCommit)
	}

	data := strings.Join(rl.todo, "")
	count := len(rl.todo)
	rl.todo = nil

	rl.log.Debug("commit", zap.Int("entries", count),
		zap.Int("bytes", len(data)))

	result := newResult()
	rl.stream.Write([]byte(data), result.resolve)
	return result
}

// Rollback discards the queued entries and the pending error without
// writing anything.
func (rl *Readline) Rollback() *Result {
	if len(rl.todo) > 0 || rl.err != nil {
		rl.log.Debug("rollback", zap.Int("entries", len(rl.todo)),
			zap.NamedError("pending", rl.err))
	}
	rl.todo = nil
	rl.err = nil
	return completed(nil)
}
