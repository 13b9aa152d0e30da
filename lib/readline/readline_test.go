//
// readline_test.go
//
// Copyright (c) 2021 Markku Rossi
//
// All rights reserved.
//

package readline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/markkurossi/vtctl/lib/csi"
	"github.com/markkurossi/vtctl/lib/emulator"
	"github.com/markkurossi/vtctl/lib/stream"
	"github.com/markkurossi/vtctl/lib/validate"
)

func newReadline(t *testing.T, opts ...Option) (*Readline, *stream.Recorder) {
	t.Helper()
	rec := stream.NewRecorder()
	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	rl, err := New(rec, opts...)
	require.NoError(t, err)
	return rl, rec
}

func commit(t *testing.T, rl *Readline) {
	t.Helper()
	require.NoError(t, rl.Commit().Wait(context.Background()))
}

func TestNewNotWritable(t *testing.T) {
	var nilRecorder *stream.Recorder
	var nilFunc stream.Func

	closed := stream.NewRecorder()
	closed.Close()

	for _, s := range []stream.Stream{nil, nilRecorder, nilFunc, closed} {
		rl, err := New(s)
		assert.Nil(t, rl)
		require.Error(t, err)
		assert.ErrorIs(t, err, validate.ErrInvalidArgType)

		var typeErr *validate.ArgTypeError
		require.True(t, errors.As(err, &typeErr))
		assert.Equal(t, "stream", typeErr.Name)
		assert.Equal(t, "Writable", typeErr.Expected)
	}
}

func TestClearScreenDown(t *testing.T) {
	rl, rec := newReadline(t)

	commit(t, rl.ClearScreenDown())
	assert.Equal(t, csi.EraseScreenTail, rec.String())
	assert.Equal(t, "\x1b[0J", rec.String())

	rec.Reset()
	require.NoError(t, rl.ClearScreenDown().Rollback().Wait(context.Background()))
	assert.Equal(t, "", rec.String())
	assert.Empty(t, rec.Writes())
	assert.Equal(t, 0, rl.Pending())
}

func TestClearLine(t *testing.T) {
	rl, rec := newReadline(t)

	tests := map[int]string{
		-1: "\x1b[1K",
		1:  "\x1b[0K",
		0:  "\x1b[2K",
	}
	for dir, expected := range tests {
		rec.Reset()
		commit(t, rl.ClearLine(dir))
		assert.Equal(t, expected, rec.String(), "dir %d", dir)
	}

	for _, dir := range []int{-2, 2, 100, -100} {
		rec.Reset()
		err := rl.ClearLine(dir).Commit().Wait(context.Background())
		assert.ErrorIs(t, err, validate.ErrOutOfRange, "dir %d", dir)
		assert.Empty(t, rec.Writes())
	}
}

func TestMoveCursor(t *testing.T) {
	rl, rec := newReadline(t)

	tests := []struct {
		dx, dy   int
		expected string
	}{
		{0, 0, ""},
		{1, 0, "\x1b[1C"},
		{-1, 0, "\x1b[1D"},
		{0, 1, "\x1b[1B"},
		{0, -1, "\x1b[1A"},
		{1, 1, "\x1b[1C\x1b[1B"},
		{-1, 1, "\x1b[1D\x1b[1B"},
		{-1, -1, "\x1b[1D\x1b[1A"},
		{1, -1, "\x1b[1C\x1b[1A"},
		{12, -34, "\x1b[12C\x1b[34A"},
	}
	for _, test := range tests {
		for i := 0; i < 2; i++ {
			rec.Reset()
			rl.MoveCursor(test.dx, test.dy)
			if test.dx == 0 && test.dy == 0 {
				assert.Equal(t, 0, rl.Pending())
			}
			commit(t, rl)
			assert.Equal(t, test.expected, rec.String(),
				"moveCursor(%d,%d)", test.dx, test.dy)
		}
	}
}

func TestCursorTo(t *testing.T) {
	rl, rec := newReadline(t)

	commit(t, rl.CursorTo(1))
	assert.Equal(t, "\x1b[2G", rec.String())

	rec.Reset()
	commit(t, rl.CursorTo(1, 2))
	assert.Equal(t, "\x1b[3;2H", rec.String())

	rec.Reset()
	commit(t, rl.CursorTo(1).CursorTo(1, 2))
	assert.Equal(t, "\x1b[2G\x1b[3;2H", rec.String())
	assert.Equal(t, []string{"\x1b[2G\x1b[3;2H"}, rec.Writes())

	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			rec.Reset()
			commit(t, rl.CursorTo(x, y))
			assert.Equal(t, csi.CursorPosition(y+1, x+1), rec.String())
		}
	}
}

func TestCursorToInvalid(t *testing.T) {
	rl, rec := newReadline(t)

	rl.CursorTo(validate.MaxSafeInteger + 1)
	assert.ErrorIs(t, rl.Err(), validate.ErrOutOfRange)
	assert.Equal(t, 0, rl.Pending())
	assert.ErrorIs(t, rl.Commit().Err(), validate.ErrOutOfRange)
	assert.Nil(t, rl.Err())

	rl.CursorTo(1, validate.MinSafeInteger-1)
	assert.ErrorIs(t, rl.Err(), validate.ErrOutOfRange)
	rl.Rollback()

	rl.CursorTo(1, 2, 3)
	assert.ErrorIs(t, rl.Err(), validate.ErrInvalidArgType)
	rl.Rollback()

	assert.Empty(t, rec.Writes())
}

func TestChain(t *testing.T) {
	rl, rec := newReadline(t)

	commit(t, rl.CursorTo(0).ClearLine(1).MoveCursor(3, 0).ClearScreenDown())
	assert.Equal(t, []string{"\x1b[1G\x1b[0K\x1b[3C\x1b[0J"}, rec.Writes())

	rec.Reset()
	require.NoError(t, rl.CursorTo(0).ClearLine(0).Rollback().Wait(context.Background()))
	commit(t, rl)
	assert.Equal(t, []string{""}, rec.Writes())
}

func TestChainError(t *testing.T) {
	rl, rec := newReadline(t)

	rl.CursorTo(1).ClearLine(5).CursorTo(2)
	assert.ErrorIs(t, rl.Err(), validate.ErrOutOfRange)
	assert.Equal(t, 1, rl.Pending())

	// The first commit reports the error, the queued entry survives.
	assert.ErrorIs(t, rl.Commit().Wait(context.Background()), validate.ErrOutOfRange)
	assert.Empty(t, rec.Writes())

	commit(t, rl)
	assert.Equal(t, []string{"\x1b[2G"}, rec.Writes())
}

func TestEmptyCommit(t *testing.T) {
	rl, rec := newReadline(t)

	commit(t, rl.ClearScreenDown())
	commit(t, rl)
	assert.Equal(t, []string{"\x1b[0J", ""}, rec.Writes())
}

func TestWrite(t *testing.T) {
	rl, rec := newReadline(t)

	n, err := rl.Write([]byte("prompt> "))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	rl.ClearLine(1)
	commit(t, rl)
	assert.Equal(t, []string{"prompt> \x1b[0K"}, rec.Writes())

	rl.ClearLine(3)
	_, err = rl.Write([]byte("x"))
	assert.ErrorIs(t, err, validate.ErrOutOfRange)
}

func TestWriteError(t *testing.T) {
	rl, rec := newReadline(t)
	failure := errors.New("write failed")
	rec.Err = failure

	err := rl.CursorTo(0).Commit().Wait(context.Background())
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, 0, rl.Pending())
}

type blockingStream struct {
	m     sync.Mutex
	data  []string
	dones []func(err error)
}

func (s *blockingStream) Writable() bool {
	return true
}

func (s *blockingStream) Write(p []byte, done func(err error)) {
	s.m.Lock()
	defer s.m.Unlock()
	s.data = append(s.data, string(p))
	s.dones = append(s.dones, done)
}

func (s *blockingStream) release(idx int) {
	s.m.Lock()
	done := s.dones[idx]
	s.m.Unlock()
	done(nil)
}

func TestCommitCompletion(t *testing.T) {
	s := &blockingStream{}
	rl, err := New(s)
	require.NoError(t, err)

	first := rl.CursorTo(1).Commit()

	// The queue is reset at dispatch time.
	rl.ClearLine(0)
	assert.Equal(t, 1, rl.Pending())

	select {
	case <-first.Done():
		t.Fatal("commit completed before the stream acknowledged it")
	default:
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, first.Wait(ctx), context.DeadlineExceeded)

	second := rl.Commit()
	s.release(0)
	require.NoError(t, first.Wait(context.Background()))
	s.release(1)
	require.NoError(t, second.Wait(context.Background()))

	assert.Equal(t, []string{"\x1b[2G", "\x1b[2K"}, s.data)
}

func TestAutoCommit(t *testing.T) {
	rl, rec := newReadline(t, WithAutoCommit(true))
	require.True(t, rl.AutoCommit())

	rl.CursorTo(1, 2).MoveCursor(0, 0).MoveCursor(1, -1).ClearLine(-1).
		ClearScreenDown()
	assert.Equal(t, []string{"\x1b[3;2H", "\x1b[1C\x1b[1A", "\x1b[1K", "\x1b[0J"},
		rec.Writes())
	assert.Equal(t, 0, rl.Pending())

	assert.ErrorIs(t, rl.Commit().Err(), ErrAutoCommit)
	assert.NoError(t, rl.Rollback().Err())
	assert.Len(t, rec.Writes(), 4)
}

func TestAutoCommitError(t *testing.T) {
	rl, rec := newReadline(t, WithAutoCommit(true))

	rl.CursorTo(validate.MaxSafeInteger + 1)
	assert.ErrorIs(t, rl.Err(), validate.ErrOutOfRange)
	assert.Empty(t, rec.Writes())

	rl.ClearLine(0).CursorTo(3)
	assert.NoError(t, rl.Err())
	assert.Equal(t, []string{"\x1b[2K", "\x1b[4G"}, rec.Writes())

	rl.ClearLine(2).ClearScreenDown()
	assert.NoError(t, rl.Err())
	assert.Equal(t, []string{"\x1b[2K", "\x1b[4G", "\x1b[0J"}, rec.Writes())

	rl.MoveCursor(1, 0).ClearLine(-2)
	assert.ErrorIs(t, rl.Err(), validate.ErrOutOfRange)
	n, err := rl.Write([]byte("x"))
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"\x1b[2K", "\x1b[4G", "\x1b[0J", "\x1b[1C", "x"},
		rec.Writes())
}

func TestAutoCommitWriter(t *testing.T) {
	screen := emulator.NewScreen(20, 4)
	w := stream.NewWriter(screen)
	rl, err := New(w, WithAutoCommit(true), WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	rl.Write([]byte("hello world"))
	rl.CursorTo(5).ClearLine(1)
	require.NoError(t, w.Close())

	assert.Equal(t, []string{"hello"}, screen.Text())
}

func TestScreenEffect(t *testing.T) {
	screen := emulator.NewScreen(20, 5)
	rl, err := New(stream.NewWriter(screen))
	require.NoError(t, err)

	rl.Write([]byte("line one\r\nline two\r\nline three"))
	commit(t, rl.CursorTo(5, 1).ClearScreenDown())
	assert.Equal(t, []string{"line one", "line"}, screen.Text())

	commit(t, rl.MoveCursor(-5, -1).ClearLine(0))
	assert.Equal(t, []string{"", "line"}, screen.Text())
}

func TestParseOptions(t *testing.T) {
	opts, err := ParseOptions(map[string]interface{}{
		"autoCommit": true,
	})
	require.NoError(t, err)
	rl, err := New(stream.NewRecorder(), opts...)
	require.NoError(t, err)
	assert.True(t, rl.AutoCommit())

	opts, err = ParseOptions(map[string]interface{}{
		"autoCommit": nil,
	})
	require.NoError(t, err)
	assert.Empty(t, opts)

	opts, err = ParseOptions(nil)
	require.NoError(t, err)
	assert.Empty(t, opts)

	_, err = ParseOptions(map[string]interface{}{
		"autoCommit": "yes",
	})
	assert.ErrorIs(t, err, validate.ErrInvalidArgType)
	assert.Contains(t, err.Error(), "options.autoCommit")
}
