//
// writer.go
//
// Copyright (c) 2021 Markku Rossi
//
// All rights reserved.
//

package stream

import (
	"io"
	"sync"
)

var (
	_ Stream = &Writer{}
)

type request struct {
	data []byte
	done func(err error)
}

// Writer is a Stream over an io.Writer. Writes are queued and
// performed in order by a single goroutine, so the caller never
// blocks on the underlying writer.
type Writer struct {
	out     io.Writer
	m       sync.Mutex
	c       *sync.Cond
	queue   []request
	closed  bool
	err     error
	stopped chan struct{}
}

// NewWriter creates a new writer and starts its output goroutine.
func NewWriter(out io.Writer) *Writer {
	w := &Writer{
		out:     out,
		stopped: make(chan struct{}),
	}
	w.c = sync.NewCond(&w.m)
	go w.run()
	return w
}

// Writable reports whether the writer is open and no write has failed.
func (w *Writer) Writable() bool {
	w.m.Lock()
	defer w.m.Unlock()
	return !w.closed && w.err == nil
}

// Write queues p for output.
func (w *Writer) Write(p []byte, done func(err error)) {
	w.m.Lock()
	if w.closed {
		w.m.Unlock()
		if done != nil {
			done(ErrClosed)
		}
		return
	}
	data := make([]byte, len(p))
	copy(data, p)
	w.queue = append(w.queue, request{
		data: data,
		done: done,
	})
	w.m.Unlock()
	w.c.Signal()
}

// Close stops accepting writes, waits until the queued writes are
// done, and returns the first write error. Close does not close the
// underlying writer.
func (w *Writer) Close() error {
	w.m.Lock()
	w.closed = true
	w.m.Unlock()
	w.c.Broadcast()

	<-w.stopped

	w.m.Lock()
	defer w.m.Unlock()
	return w.err
}

func (w *Writer) run() {
	defer close(w.stopped)

	for {
		w.m.Lock()
		for len(w.queue) == 0 && !w.closed {
			w.c.Wait()
		}
		if len(w.queue) == 0 {
			w.m.Unlock()
			return
		}
		req := w.queue[0]
		w.queue[0] = request{}
		w.queue = w.queue[1:]
		w.m.Unlock()

		_, err := w.out.Write(req.data)
		if err != nil {
			w.m.Lock()
			if w.err == nil {
				w.err = err
			}
			w.m.Unlock()
		}
		if req.done != nil {
			req.done(err)
		}
	}
}
