//
// script.go
//
// Copyright (c) 2018-2021 Markku Rossi
//
// All rights reserved.
//

// Package script drives a cursor controller from text commands.
package script

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/markkurossi/vtctl/lib/readline"
	"github.com/markkurossi/vtctl/lib/validate"
)

// ErrUnknownCommand is returned for unknown command names.
var ErrUnknownCommand = errors.New("unknown command")

// Builtin defines a script command.
type Builtin struct {
	Name  string
	Usage string
	Cmd   func(ctx context.Context, r *Runner, cmd Command) error
}

var builtins = make(map[string]Builtin)

func register(list ...Builtin) {
	for _, b := range list {
		builtins[strings.ToLower(b.Name)] = b
	}
}

// Names returns the command names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for _, b := range builtins {
		names = append(names, b.Name)
	}
	sort.Strings(names)
	return names
}

// Runner executes commands against a Readline.
type Runner struct {
	rl  *readline.Readline
	out io.Writer
	log *zap.Logger
}

// NewRunner creates a runner. The help output goes to out.
func NewRunner(rl *readline.Readline, out io.Writer, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		rl:  rl,
		out: out,
		log: log,
	}
}

// Readline returns the runner's controller.
func (r *Runner) Readline() *readline.Readline {
	return r.rl
}

// Exec runs all commands of the line. It stops at the first error.
func (r *Runner) Exec(ctx context.Context, line string) error {
	cmds, err := Split(line)
	if err != nil {
		return err
	}
	for _, cmd := range cmds {
		if err := r.Run(ctx, cmd); err != nil {
			return err
		}
	}
	return nil
}

// Run runs one command.
func (r *Runner) Run(ctx context.Context, cmd Command) error {
	b, ok := builtins[strings.ToLower(cmd.Name())]
	if !ok {
		return fmt.Errorf("%w '%s'", ErrUnknownCommand, cmd.Name())
	}
	r.log.Debug("exec", zap.Stringer("command", cmd))
	return b.Cmd(ctx, r, cmd)
}

// ExecAll runs the commands read from in, one line at a time.
func (r *Runner) ExecAll(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	var lineno int
	for scanner.Scan() {
		lineno++
		if err := r.Exec(ctx, scanner.Text()); err != nil {
			return fmt.Errorf("line %d: %w", lineno, err)
		}
	}
	return scanner.Err()
}

func cmdCursorTo(ctx context.Context, r *Runner, cmd Command) error {
	args := cmd.Args(2)

	x, err := validate.SafeInteger(args[0], "x")
	if err != nil {
		return err
	}
	if args[1] == nil {
		r.rl.CursorTo(x)
		return nil
	}
	y, err := validate.SafeInteger(args[1], "y")
	if err != nil {
		return err
	}
	r.rl.CursorTo(x, y)
	return nil
}

func isZero(v interface{}) bool {
	switch n := v.(type) {
	case int64:
		return n == 0
	case float64:
		return n == 0
	}
	return false
}

func cmdMoveCursor(ctx context.Context, r *Runner, cmd Command) error {
	args := cmd.Args(2)
	if isZero(args[0]) && isZero(args[1]) {
		return nil
	}
	dx, err := validate.SafeInteger(args[0], "dx")
	if err != nil {
		return err
	}
	dy, err := validate.SafeInteger(args[1], "dy")
	if err != nil {
		return err
	}
	r.rl.MoveCursor(dx, dy)
	return nil
}

func cmdClearLine(ctx context.Context, r *Runner, cmd Command) error {
	dir, err := validate.Integer(cmd.Args(1)[0], "dir", -1, 1)
	if err != nil {
		return err
	}
	r.rl.ClearLine(dir)
	return nil
}

func cmdClearScreenDown(ctx context.Context, r *Runner, cmd Command) error {
	r.rl.ClearScreenDown()
	return nil
}

func cmdWrite(ctx context.Context, r *Runner, cmd Command) error {
	var texts []string
	for _, arg := range cmd[1:] {
		texts = append(texts, arg.Text)
	}
	_, err := io.WriteString(r.rl, unescape(strings.Join(texts, " ")))
	return err
}

// Single quoted arguments keep backslashes so that these escapes
// reach unescape.
var unescaper = strings.NewReplacer(`\r`, "\r", `\n`, "\n", `\t`, "\t",
	`\e`, "\x1b", `\\`, `\`)

func unescape(s string) string {
	return unescaper.Replace(s)
}

func cmdCommit(ctx context.Context, r *Runner, cmd Command) error {
	if r.rl.AutoCommit() {
		return nil
	}
	return r.rl.Commit().Wait(ctx)
}

func cmdRollback(ctx context.Context, r *Runner, cmd Command) error {
	return r.rl.Rollback().Wait(ctx)
}

func cmdHelp(ctx context.Context, r *Runner, cmd Command) error {
	fmt.Fprintf(r.out, "Available commands are:\n")
	for _, name := range Names() {
		b := builtins[strings.ToLower(name)]
		fmt.Fprintf(r.out, "  %s\n", b.Usage)
	}
	return nil
}

func init() {
	register([]Builtin{
		{
			Name:  "cursorTo",
			Usage: "cursorTo x [y]",
			Cmd:   cmdCursorTo,
		},
		{
			Name:  "moveCursor",
			Usage: "moveCursor dx dy",
			Cmd:   cmdMoveCursor,
		},
		{
			Name:  "clearLine",
			Usage: "clearLine -1|0|1",
			Cmd:   cmdClearLine,
		},
		{
			Name:  "clearScreenDown",
			Usage: "clearScreenDown",
			Cmd:   cmdClearScreenDown,
		},
		{
			Name:  "write",
			Usage: "write 'text\\r\\n'...",
			Cmd:   cmdWrite,
		},
		{
			Name:  "commit",
			Usage: "commit",
			Cmd:   cmdCommit,
		},
		{
			Name:  "rollback",
			Usage: "rollback",
			Cmd:   cmdRollback,
		},
		{
			Name:  "help",
			Usage: "help",
			Cmd:   cmdHelp,
		},
	}...)
}
