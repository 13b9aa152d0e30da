//
// csi.go
//
// Copyright (c) 2018-2021 Markku Rossi
//
// All rights reserved.
//

// Package csi renders ECMA-48 control sequences. All coordinates and
// counts are given in wire form: 1-based positions.
package csi

import (
	"strconv"
)

// CSI is the Control Sequence Introducer.
const CSI = "\x1b["

// Fixed erase sequences.
const (
	EraseLineHead   = CSI + "1K" // EL 1: line start to cursor
	EraseLineTail   = CSI + "0K" // EL 0: cursor to line end
	EraseLine       = CSI + "2K" // EL 2: entire line
	EraseScreenTail = CSI + "0J" // ED 0: cursor to end of screen
	EraseScreenHead = CSI + "1J" // ED 1
	EraseScreen     = CSI + "2J" // ED 2
)

// Final bytes of the cursor functions.
const (
	CUU = 'A'
	CUD = 'B'
	CUF = 'C'
	CUB = 'D'
	CHA = 'G'
	CUP = 'H'
	EL  = 'K'
	ED  = 'J'
	DCH = 'P'
)

// Sequence renders CSI params final. The params are joined with ';'.
func Sequence(final byte, params ...int) string {
	buf := make([]byte, 0, 2+len(params)*4+1)
	buf = append(buf, CSI...)
	for idx, p := range params {
		if idx > 0 {
			buf = append(buf, ';')
		}
		buf = strconv.AppendInt(buf, int64(p), 10)
	}
	return string(append(buf, final))
}

// CursorColumn moves the cursor to column col of the current line.
func CursorColumn(col int) string {
	return Sequence(CHA, col)
}

// CursorPosition moves the cursor to row, col.
func CursorPosition(row, col int) string {
	return Sequence(CUP, row, col)
}

// CursorUp moves the cursor n rows up.
func CursorUp(n int) string {
	return Sequence(CUU, n)
}

// CursorDown moves the cursor n rows down.
func CursorDown(n int) string {
	return Sequence(CUD, n)
}

// CursorForward moves the cursor n columns right.
func CursorForward(n int) string {
	return Sequence(CUF, n)
}

// CursorBackward moves the cursor n columns left.
func CursorBackward(n int) string {
	return Sequence(CUB, n)
}

// EraseInLine returns the erase sequence for the line direction dir:
// negative clears to the line start, positive to the line end, and
// zero clears the whole line.
func EraseInLine(dir int) string {
	switch {
	case dir < 0:
		return EraseLineHead
	case dir > 0:
		return EraseLineTail
	default:
		return EraseLine
	}
}
