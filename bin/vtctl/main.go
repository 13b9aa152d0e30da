//
// main.go
//
// Copyright (c) 2018-2021 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/markkurossi/vtctl/lib/config"
	"github.com/markkurossi/vtctl/lib/emulator"
	"github.com/markkurossi/vtctl/lib/log"
	"github.com/markkurossi/vtctl/lib/readline"
	"github.com/markkurossi/vtctl/lib/script"
	"github.com/markkurossi/vtctl/lib/stream"
)

var prompt = "vtctl $ "

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s, using defaults\n", err)
		cfg = config.Default()
	}

	expr := flag.String("e", "", "Run script commands")
	file := flag.String("f", "", "Run script file")
	autoCommit := flag.Bool("autocommit", cfg.AutoCommit,
		"Write each operation immediately")
	screen := flag.String("screen", "",
		"Render on a virtual WxH screen and print it")
	interactive := flag.Bool("i", false, "Interactive prompt")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	logCfg := cfg.Log()
	if *verbose {
		logCfg.Level = "debug"
		logCfg.Development = true
	}
	// Logging is optional for the CLI.
	logger := log.NewOrNop(logCfg)
	defer logger.Sync()

	var out io.Writer = os.Stdout
	var scr *emulator.Screen
	if len(*screen) > 0 {
		var width, height int
		_, err := fmt.Sscanf(*screen, "%dx%d", &width, &height)
		if err != nil || width <= 0 || height <= 0 {
			fmt.Fprintf(os.Stderr, "invalid screen size '%s'\n", *screen)
			os.Exit(1)
		}
		if *interactive {
			fmt.Fprintf(os.Stderr, "-i can't be used with -screen\n")
			os.Exit(1)
		}
		scr = emulator.NewScreen(width, height)
		out = scr
	}

	w := stream.NewWriter(out)
	rl, err := readline.New(w, readline.WithAutoCommit(*autoCommit),
		readline.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
	runner := script.NewRunner(rl, os.Stdout, logger)
	ctx := context.Background()

	switch {
	case len(*expr) > 0:
		err = runner.Exec(ctx, *expr)

	case len(*file) > 0:
		var f *os.File
		f, err = os.Open(*file)
		if err == nil {
			err = runner.ExecAll(ctx, f)
			f.Close()
		}

	case *interactive:
		err = repl(ctx, runner, w, logger)

	default:
		err = runner.ExecAll(ctx, os.Stdin)
	}
	if n := rl.Pending(); n > 0 {
		logger.Debug("discarding uncommitted operations", zap.Int("count", n))
	}
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if scr != nil {
		for _, line := range scr.Text() {
			fmt.Println(line)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func repl(ctx context.Context, runner *script.Runner, w *stream.Writer,
	logger *zap.Logger) error {

	rl, err := readline.New(w, readline.WithLogger(logger))
	if err != nil {
		return err
	}
	ed := readline.NewEditor(os.Stdin, rl)
	ed.Tab = tabCompletion

	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		width, _, err := term.GetSize(fd)
		if err == nil {
			ed.Width = width
		}
	}

	for {
		line, err := ed.Read(ctx, prompt)
		if err != nil {
			if errors.Is(err, readline.ErrInterrupted) {
				continue
			}
			if err == io.EOF {
				fmt.Fprintf(os.Stdout, "\n")
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if line == "exit" {
			return nil
		}
		if err := runner.Exec(ctx, line); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
		}
	}
}

func tabCompletion(line string) (string, []string) {
	idx := strings.LastIndexAny(line, " ;")
	prefix := line[idx+1:]
	if len(prefix) == 0 {
		return line, nil
	}

	var result []string
	for _, name := range script.Names() {
		if strings.HasPrefix(strings.ToLower(name), strings.ToLower(prefix)) {
			result = append(result, name)
		}
	}
	switch len(result) {
	case 0:
		return line, nil
	case 1:
		return line[:idx+1] + result[0] + " ", nil
	default:
		return line, result
	}
}
