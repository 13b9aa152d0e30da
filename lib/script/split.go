//
// split.go
//
// Copyright (c) 2018-2021 Markku Rossi
//
// All rights reserved.
//

package script

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Arg is a command argument. Quoted arguments are always strings.
type Arg struct {
	Text   string
	Quoted bool
}

// Value returns the loosely typed value of the argument.
func (a Arg) Value() interface{} {
	if a.Quoted {
		return a.Text
	}
	return Value(a.Text)
}

// Command is one command with its arguments.
type Command []Arg

// Name returns the command name.
func (c Command) Name() string {
	if len(c) == 0 {
		return ""
	}
	return c[0].Text
}

// Args returns the argument values. Missing arguments are nil.
func (c Command) Args(count int) []interface{} {
	result := make([]interface{}, count)
	for i := 0; i < count && i+1 < len(c); i++ {
		result[i] = c[i+1].Value()
	}
	return result
}

func (c Command) String() string {
	var result string

	for idx, arg := range c {
		if idx > 0 {
			result += " "
		}
		if arg.Quoted {
			result += strconv.Quote(arg.Text)
		} else {
			result += Escape(arg.Text)
		}
	}
	return result
}

var reEscape = regexp.MustCompilePOSIX("([ \t;#\\\\'\"])")

// Escape escapes the argument so that Split returns it unmodified.
func Escape(arg string) string {
	if len(arg) == 0 {
		return `""`
	}
	return reEscape.ReplaceAllString(arg, "\\${1}")
}

// Split splits the line into commands. Commands are separated by
// semicolons and arguments by whitespace. Single and double quotes
// group arguments, backslash escapes the next character, and '#'
// starts a comment.
func Split(line string) ([]Command, error) {
	var result []Command
	var cmd Command
	var arg []rune
	var inArg bool
	var quoted bool
	var quote rune

	runes := []rune(line)

	endArg := func() {
		if inArg {
			cmd = append(cmd, Arg{
				Text:   string(arg),
				Quoted: quoted,
			})
		}
		arg = nil
		inArg = false
		quoted = false
	}
	endCmd := func() {
		endArg()
		if len(cmd) > 0 {
			result = append(result, cmd)
		}
		cmd = nil
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else if r == '\\' && quote == '"' && i+1 < len(runes) {
				i++
				arg = append(arg, runes[i])
			} else {
				arg = append(arg, r)
			}

		case r == '\\':
			if i+1 >= len(runes) {
				return nil, fmt.Errorf("trailing backslash")
			}
			i++
			arg = append(arg, runes[i])
			inArg = true

		case r == '"' || r == '\'':
			quote = r
			quoted = true
			inArg = true

		case r == ';':
			endCmd()

		case r == '#':
			endCmd()
			return result, nil

		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			endArg()

		default:
			arg = append(arg, r)
			inArg = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated quote %c", quote)
	}
	endCmd()

	return result, nil
}

// Value converts the argument into a loosely typed value: int,
// float64, bool, nil, or string.
func Value(arg string) interface{} {
	switch arg {
	case "null", "undefined":
		return nil
	case "true":
		return true
	case "false":
		return false
	case "NaN":
		return math.NaN()
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if i, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return i
	}
	if strings.ContainsAny(arg, "0123456789") {
		if f, err := strconv.ParseFloat(arg, 64); err == nil {
			return f
		}
	}
	return arg
}
