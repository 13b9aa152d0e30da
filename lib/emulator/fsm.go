//
// fsm.go
//
// Copyright (c) 2018-2021 Markku Rossi
//
// All rights reserved.
//

package emulator

import (
	"strconv"
	"strings"
)

type state func(s *Screen, r rune)

func stStart(s *Screen, r rune) {
	switch r {
	case 0x1b: // ESC
		s.state = stESC
	case 0x08: // BS
		s.MoveTo(s.Row, s.Col-1)
	case 0x09: // Horizontal Tabulation.
		var x = s.Col + 1
		for ; x%8 != 0; x++ {
		}
		s.MoveTo(s.Row, x)
	case 0x0a: // Linefeed
		s.lineFeed()
	case 0x0d: // Carriage Return
		s.Col = 0
	default:
		if r >= 0x20 && r != 0x7f {
			s.InsertChar(r)
		}
	}
}

func stESC(s *Screen, r rune) {
	if r == '[' {
		s.params = s.params[:0]
		s.state = stCSI
		return
	}
	s.state = stStart
}

func stCSI(s *Screen, r rune) {
	switch {
	case r >= 0x30 && r <= 0x3f:
		s.params = append(s.params, byte(r))
		return

	case r >= 0x40 && r <= 0x7e:
		s.csi(byte(r))
	}
	s.state = stStart
}

// param returns the idx'th parameter, or def if it is missing or 0.
func (s *Screen) param(idx, def int) int {
	parts := strings.Split(string(s.params), ";")
	if idx >= len(parts) {
		return def
	}
	v, err := strconv.Atoi(parts[idx])
	if err != nil || v == 0 {
		return def
	}
	return v
}

// mode returns the single mode parameter, 0 by default.
func (s *Screen) mode() int {
	v, err := strconv.Atoi(string(s.params))
	if err != nil {
		return 0
	}
	return v
}

func (s *Screen) csi(final byte) {
	switch final {
	case 'A': // CUU - CUrsor Up
		s.MoveTo(s.Row-s.param(0, 1), s.Col)

	case 'B': // CUD - CUrsor Down
		s.MoveTo(s.Row+s.param(0, 1), s.Col)

	case 'C': // CUF - CUrsor Forward
		s.MoveTo(s.Row, s.Col+s.param(0, 1))

	case 'D': // CUB - CUrsor Backward
		s.MoveTo(s.Row, s.Col-s.param(0, 1))

	case 'G': // CHA - Cursor Horizontal Absolute
		s.MoveTo(s.Row, s.param(0, 1)-1)

	case 'H', 'f': // CUP, HVP
		s.MoveTo(s.param(0, 1)-1, s.param(1, 1)-1)

	case 'K': // EL - Erase in Line (cursor does not move)
		switch s.mode() {
		case 0:
			s.ClearLine(s.Row, s.Col, s.Width)
		case 1:
			s.ClearLine(s.Row, 0, s.Col+1)
		case 2:
			s.ClearLine(s.Row, 0, s.Width)
		}

	case 'J': // ED - Erase in Display (cursor does not move)
		switch s.mode() {
		case 0:
			s.ClearLine(s.Row, s.Col, s.Width)
			for row := s.Row + 1; row < s.Height; row++ {
				s.ClearLine(row, 0, s.Width)
			}
		case 1:
			for row := 0; row < s.Row; row++ {
				s.ClearLine(row, 0, s.Width)
			}
			s.ClearLine(s.Row, 0, s.Col+1)
		case 2:
			s.Clear()
		}

	case 'P': // DCH - Delete CHaracter
		s.DeleteChars(s.param(0, 1))
	}
}
