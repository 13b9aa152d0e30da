//
// editor.go
//
// Copyright (c) 2018-2021 Markku Rossi
//
// All rights reserved.
//

package readline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/markkurossi/vt100"
	"go.uber.org/zap"
)

// ErrInterrupted is returned by Editor.Read when the user presses C-c.
var ErrInterrupted = errors.New("readline: interrupted")

// TabCompletion provides tab completions for the line.
type TabCompletion func(line string) (expanded string, completions []string)

// Mask defines how the editor echoes input.
type Mask int

// Output mask types.
const (
	MaskNone Mask = iota
	MaskAsterisk
)

// Editor implements an interactive line reader. Each key press is
// redrawn with one committed batch of the editor's Readline.
type Editor struct {
	Tab    TabCompletion
	Mask   Mask
	Width  int
	stdin  io.Reader
	rl     *Readline
	buf    []byte
	state  edState
	param  []byte
	cursor int
	prompt string
}

type edState func(e *Editor, b byte) (bool, error)

// NewEditor creates a new editor reading keys from stdin and drawing
// with rl.
func NewEditor(stdin io.Reader, rl *Readline) *Editor {
	return &Editor{
		Width: 80,
		stdin: stdin,
		rl:    rl,
		state: edStart,
	}
}

// Read reads a line. It returns the line read so far with the error
// that ended the input.
func (e *Editor) Read(ctx context.Context, prompt string) (string, error) {
	restore, err := MakeRaw(e.stdin)
	if err != nil {
		return "", err
	}
	defer restore()

	e.buf = e.buf[:0]
	e.cursor = 0
	e.state = edStart
	e.prompt = prompt

	fmt.Fprintf(e.rl, "%s", prompt)
	if err := e.flush(ctx); err != nil {
		return "", err
	}

	var buf [1]byte
	for {
		n, err := e.stdin.Read(buf[:])
		if n > 0 {
			done, ierr := e.state(e, buf[0])
			if ferr := e.flush(ctx); ferr != nil {
				return e.line(), ferr
			}
			if ierr != nil {
				return e.line(), ierr
			}
			if done {
				return e.line(), nil
			}
		}
		if err != nil {
			return e.line(), err
		}
	}
}

func (e *Editor) flush(ctx context.Context) error {
	if e.rl.AutoCommit() || (e.rl.Pending() == 0 && e.rl.Err() == nil) {
		return nil
	}
	return e.rl.Commit().Wait(ctx)
}

func (e *Editor) line() string {
	return string(e.buf)
}

func (e *Editor) output(b []byte) {
	switch e.Mask {
	case MaskNone:
		e.rl.Write(b)

	case MaskAsterisk:
		e.rl.Write(bytes.Repeat([]byte{'*'}, len(b)))
	}
}

func edStart(e *Editor, b byte) (bool, error) {
	switch b {
	case 0x1b: // ESC
		e.state = edESC

	case 0x01: // C-a
		e.home()

	case 0x02: // C-b
		e.left()

	case 0x03: // C-c
		e.rl.Write([]byte("^C\r\n"))
		return true, ErrInterrupted

	case 0x04: // C-d
		if len(e.buf) == 0 {
			return true, io.EOF
		}
		e.deleteChar()

	case 0x05: // C-e
		e.end()

	case 0x06: // C-f
		e.right()

	case 0x09: // TAB
		e.complete()

	case 0x0b: // C-k
		e.buf = e.buf[:e.cursor]
		e.rl.ClearLine(1)

	case 0x0c: // C-l
		vt100.EraseScreen(e.rl)
		e.rl.CursorTo(0, 0)
		fmt.Fprintf(e.rl, "%s", e.prompt)
		e.output(e.buf)
		e.rl.MoveCursor(e.cursor-len(e.buf), 0)

	case 0x08, 0x7f: // Backspace, Delete
		if e.cursor == 0 {
			break
		}
		vt100.Backspace(e.rl)
		if e.cursor == len(e.buf) {
			e.rl.ClearLine(1)
		} else {
			vt100.DeleteChar(e.rl)
		}
		e.cursor--
		e.buf = append(e.buf[:e.cursor], e.buf[e.cursor+1:]...)

	case '\r', '\n':
		e.rl.Write([]byte("\r\n"))
		return true, nil

	default:
		if b < 0x20 || b >= 0x7f {
			e.rl.log.Debug("readline: skipping non-printable",
				zap.Uint8("byte", b))
			break
		}
		e.insert(b)
	}
	return false, nil
}

func edESC(e *Editor, b byte) (bool, error) {
	switch b {
	case '[', 'O':
		e.param = e.param[:0]
		e.state = edCSI

	default:
		e.rl.log.Debug("readline: ESC: unsupported", zap.Uint8("byte", b))
		e.state = edStart
	}
	return false, nil
}

func edCSI(e *Editor, b byte) (bool, error) {
	if b >= 0x30 && b <= 0x3f {
		e.param = append(e.param, b)
		return false, nil
	}
	switch b {
	case 'C':
		e.right()
	case 'D':
		e.left()
	case 'H':
		e.home()
	case 'F':
		e.end()
	case '~':
		switch string(e.param) {
		case "1", "7":
			e.home()
		case "3":
			e.deleteChar()
		case "4", "8":
			e.end()
		}
	default:
		e.rl.log.Debug("readline: CSI: unsupported",
			zap.ByteString("param", e.param), zap.Uint8("byte", b))
	}
	e.state = edStart
	return false, nil
}

func (e *Editor) complete() {
	if e.Tab == nil {
		return
	}
	line, completions := e.Tab(e.line())

	// Line contains expanded line.
	e.rl.MoveCursor(-e.cursor, 0)
	e.rl.ClearLine(1)

	e.buf = append(e.buf[:0], line...)
	e.cursor = len(e.buf)
	e.output(e.buf)

	// Print completions.
	if len(completions) > 0 {
		e.rl.Write([]byte("\r\n"))
		Tabulate(completions, e.Width, e.rl)
		fmt.Fprintf(e.rl, "%s", e.prompt)
		e.output(e.buf)
	}
}

func (e *Editor) home() {
	e.rl.MoveCursor(-e.cursor, 0)
	e.cursor = 0
}

func (e *Editor) end() {
	e.rl.MoveCursor(len(e.buf)-e.cursor, 0)
	e.cursor = len(e.buf)
}

func (e *Editor) left() {
	if e.cursor > 0 {
		e.rl.MoveCursor(-1, 0)
		e.cursor--
	}
}

func (e *Editor) right() {
	if e.cursor < len(e.buf) {
		e.rl.MoveCursor(1, 0)
		e.cursor++
	}
}

func (e *Editor) deleteChar() {
	if e.cursor < len(e.buf) {
		vt100.DeleteChar(e.rl)
		e.buf = append(e.buf[:e.cursor], e.buf[e.cursor+1:]...)
	}
}

func (e *Editor) insert(b byte) {
	e.buf = append(e.buf, 0)
	copy(e.buf[e.cursor+1:], e.buf[e.cursor:])
	e.buf[e.cursor] = b
	e.cursor++

	// Print line and move cursor back to its position.
	e.output(e.buf[e.cursor-1:])
	e.rl.MoveCursor(e.cursor-len(e.buf), 0)
}
