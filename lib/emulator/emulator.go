//
// emulator.go
//
// Copyright (c) 2018-2021 Markku Rossi
//
// All rights reserved.
//

// Package emulator implements a VT100 screen model for the control
// sequences emitted by this module.
package emulator

import (
	"strings"
	"unicode/utf8"
)

const blank = ' '

// Screen is a fixed size character screen with a cursor. It
// implements io.Writer.
type Screen struct {
	Width  int
	Height int
	Col    int
	Row    int
	Lines  [][]rune
	state  state
	params []byte
	pend   []byte
}

// NewScreen creates a blank screen.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		state: stStart,
	}
	s.Resize(width, height)
	return s
}

// Resize resizes the screen. The contents are cleared and the cursor
// moves to the origin.
func (s *Screen) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	s.Width = width
	s.Height = height

	lines := make([][]rune, s.Height)
	for i := 0; i < s.Height; i++ {
		lines[i] = make([]rune, s.Width)
		for j := 0; j < s.Width; j++ {
			lines[i][j] = blank
		}
	}

	s.Lines = lines
	s.Col = 0
	s.Row = 0
}

// Cursor returns the cursor position.
func (s *Screen) Cursor() (col, row int) {
	return s.Col, s.Row
}

// Line returns the row without trailing blanks.
func (s *Screen) Line(row int) string {
	if row < 0 || row >= s.Height {
		return ""
	}
	return strings.TrimRight(string(s.Lines[row]), " ")
}

// Text returns all rows without trailing blanks and with trailing
// empty rows removed.
func (s *Screen) Text() []string {
	var result []string
	for row := 0; row < s.Height; row++ {
		result = append(result, s.Line(row))
	}
	for len(result) > 0 && len(result[len(result)-1]) == 0 {
		result = result[:len(result)-1]
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// ClearLine blanks columns [from, to) of line.
func (s *Screen) ClearLine(line, from, to int) {
	if line < 0 || line >= s.Height {
		return
	}
	if from < 0 {
		from = 0
	}
	if to > s.Width {
		to = s.Width
	}
	for i := from; i < to; i++ {
		s.Lines[line][i] = blank
	}
}

// Clear blanks the whole screen.
func (s *Screen) Clear() {
	for i := 0; i < s.Height; i++ {
		s.ClearLine(i, 0, s.Width)
	}
}

// MoveTo moves the cursor to row, col clamping to the screen.
func (s *Screen) MoveTo(row, col int) {
	if col < 0 {
		col = 0
	}
	if col >= s.Width {
		col = s.Width - 1
	}
	if row < 0 {
		row = 0
	}
	if row >= s.Height {
		row = s.Height - 1
	}
	s.Col = col
	s.Row = row
}

// ScrollUp scrolls the screen count lines up.
func (s *Screen) ScrollUp(count int) {
	if count >= s.Height {
		s.Clear()
		return
	}

	for i := 0; i < count; i++ {
		saved := s.Lines[0]
		s.Lines = append(s.Lines[1:], saved)
	}
	for i := 0; i < count; i++ {
		s.ClearLine(s.Height-1-i, 0, s.Width)
	}
}

func (s *Screen) lineFeed() {
	if s.Row+1 >= s.Height {
		s.ScrollUp(1)
	} else {
		s.Row++
	}
}

// InsertChar prints code at the cursor and advances the cursor.
func (s *Screen) InsertChar(code rune) {
	if s.Col >= s.Width {
		s.lineFeed()
		s.Col = 0
	}
	s.Lines[s.Row][s.Col] = code
	s.Col++
}

// DeleteChars deletes count characters at the cursor shifting the
// rest of the line left.
func (s *Screen) DeleteChars(count int) {
	r := s.Lines[s.Row]

	for x := s.Col; x < s.Width; x++ {
		if x+count < s.Width {
			r[x] = r[x+count]
		} else {
			r[x] = blank
		}
	}
}

// Write implements io.Writer.
func (s *Screen) Write(p []byte) (int, error) {
	data := p
	if len(s.pend) > 0 {
		data = append(s.pend, p...)
		s.pend = nil
	}
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 && !utf8.FullRune(data) {
			// Incomplete sequence, wait for more input.
			s.pend = append([]byte(nil), data...)
			break
		}
		s.state(s, r)
		data = data[size:]
	}
	return len(p), nil
}
