//
// term.go
//
// Copyright (c) 2021 Markku Rossi
//
// All rights reserved.
//

package readline

import (
	"io"
	"os"

	"golang.org/x/term"
)

// MakeRaw puts stdin into the raw mode if it is a terminal. The
// returned function restores the previous mode. For other readers
// MakeRaw does nothing.
func MakeRaw(stdin io.Reader) (func() error, error) {
	f, ok := stdin.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return func() error { return nil }, nil
	}
	state, err := term.MakeRaw(int(f.Fd()))
	if err != nil {
		return nil, err
	}
	return func() error {
		return term.Restore(int(f.Fd()), state)
	}, nil
}
