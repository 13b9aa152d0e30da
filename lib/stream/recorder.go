//
// recorder.go
//
// Copyright (c) 2021 Markku Rossi
//
// All rights reserved.
//

package stream

import (
	"strings"
	"sync"
)

var (
	_ Stream = &Recorder{}
)

// Recorder is an in-memory Stream that keeps each write separately.
// Writes complete synchronously.
type Recorder struct {
	m      sync.Mutex
	writes []string
	closed bool
	Err    error
}

// NewRecorder creates a new recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Writable implements Stream.
func (r *Recorder) Writable() bool {
	r.m.Lock()
	defer r.m.Unlock()
	return !r.closed
}

// Write implements Stream. If Err is set, the write is recorded and
// Err is passed to done.
func (r *Recorder) Write(p []byte, done func(err error)) {
	r.m.Lock()
	err := r.Err
	if r.closed {
		err = ErrClosed
	} else {
		r.writes = append(r.writes, string(p))
	}
	r.m.Unlock()

	if done != nil {
		done(err)
	}
}

// Writes returns the recorded writes.
func (r *Recorder) Writes() []string {
	r.m.Lock()
	defer r.m.Unlock()
	return append([]string(nil), r.writes...)
}

// String returns the concatenation of all writes.
func (r *Recorder) String() string {
	r.m.Lock()
	defer r.m.Unlock()
	return strings.Join(r.writes, "")
}

// Reset forgets the recorded writes.
func (r *Recorder) Reset() {
	r.m.Lock()
	r.writes = nil
	r.m.Unlock()
}

// Close marks the recorder non-writable.
func (r *Recorder) Close() error {
	r.m.Lock()
	r.closed = true
	r.m.Unlock()
	return nil
}
