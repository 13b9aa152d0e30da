//
// stream.go
//
// Copyright (c) 2021 Markku Rossi
//
// All rights reserved.
//

// Package stream defines the output sink used by the cursor
// controller and provides implementations of it.
package stream

import (
	"errors"
	"reflect"
)

// ErrClosed is passed to completion callbacks of writes issued after
// the stream was closed.
var ErrClosed = errors.New("stream closed")

// Stream is an output sink accepting queued writes. Write must not
// retain p after it returns. The done callback, if non-nil, is called
// exactly once: after p has been handed to the underlying sink, or
// with the error that prevented it.
type Stream interface {
	Writable() bool
	Write(p []byte, done func(err error))
}

// IsWritable tests if v is a usable Stream.
func IsWritable(v interface{}) bool {
	s, ok := v.(Stream)
	if !ok || s == nil {
		return false
	}
	rv := reflect.ValueOf(s)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan:
		if rv.IsNil() {
			return false
		}
	}
	return s.Writable()
}

// Func adapts a synchronous write function into a Stream.
type Func func(p []byte) error

// Writable implements Stream.
func (f Func) Writable() bool {
	return f != nil
}

// Write implements Stream.
func (f Func) Write(p []byte, done func(err error)) {
	err := f(p)
	if done != nil {
		done(err)
	}
}
