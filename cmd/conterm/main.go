// ABOUTME: CLI entry point for conterm with terminal crash recovery
// ABOUTME: Parses flags, loads settings/theme, pages files or runs the prompt demo

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/conterm/conterm/internal/log"
	"github.com/conterm/conterm/pkg/console"
	"github.com/conterm/conterm/pkg/console/format"
	"github.com/conterm/conterm/pkg/console/key"
	"github.com/conterm/conterm/pkg/console/prompt"
	"github.com/conterm/conterm/pkg/console/surface"
	"github.com/conterm/conterm/pkg/console/terminal"
	"github.com/conterm/conterm/pkg/console/theme"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args := parseFlags()

	if args.version {
		fmt.Printf("conterm %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if args.verbose {
		log.SetLevel(log.LevelDebug)
	}
	if args.logFile != "" {
		f, err := log.ToFile(args.logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args cliArgs) error {
	paths := args.remaining()

	// Piped content is consumed before the key pump starts; keys then
	// come from the controlling terminal so pagination stays usable.
	var piped []byte
	keyIn := os.Stdin
	if !args.demo && len(paths) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		piped = data
		if tty, err := os.Open("/dev/tty"); err == nil {
			keyIn = tty
			defer tty.Close()
		}
	}

	term := terminal.NewReal(keyIn, os.Stdout)
	defer term.Close()

	queue := key.NewQueue(keyIn)
	cctx := console.NewContext(term, queue)
	if !term.IsTTY() {
		// No console to pause on or read keys from.
		cctx.Settings.ScrollBreak = false
	}

	if args.settings != "" {
		s, err := console.LoadSettingsFile(args.settings)
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
		cctx.Settings = s
	}
	if args.width > 0 {
		cctx.Settings.OutputWidth = args.width
		cctx.Settings.Normalize()
	}
	if args.theme != "" {
		th, err := theme.LoadFile(args.theme)
		if err != nil {
			return fmt.Errorf("loading theme: %w", err)
		}
		cctx.Palette = th.Palette
	}
	if args.history != "" {
		if err := cctx.History.LoadFromFile(args.history); err != nil {
			log.Warn("loading history: %v", err)
		}
		defer func() {
			if err := cctx.History.SaveToFile(args.history); err != nil {
				log.Warn("saving history: %v", err)
			}
		}()
	}

	if err := term.EnterRawMode(); err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	log.SetRawMode(true)
	defer func() {
		log.SetRawMode(false)
		_ = term.ExitRawMode()
	}()
	defer terminal.RestoreOnPanic(term)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		queue.Start(gctx)
		return nil
	})

	if args.demo {
		runDemo(cctx)
	} else if err := runPager(cctx, paths, piped); err != nil {
		cancel()
		_ = g.Wait()
		return err
	}

	cancel()
	return g.Wait()
}

// runPager pages the named files (or piped stdin content) through a
// surface, honoring the configured width, wrap, and scroll-break.
func runPager(cctx *console.Context, paths []string, piped []byte) error {
	surf := surface.New(cctx)
	f := cctx.Settings.Base
	if !f.HasWrap() {
		f = f.WithWrap(format.WrapWord)
	}

	if len(paths) == 0 {
		surf.Print(string(piped), cctx.Palette.Normal, f)
		return nil
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		surf.BeginGroup()
		surf.PrintLine(path, cctx.Palette.Emphasis, format.Centered())
		if out := surf.Print(string(data), cctx.Palette.Normal, f); out == surface.OutcomeCancelled {
			log.Debug("paging cancelled at %s", path)
			return nil
		}
	}
	return nil
}

// runDemo exercises each prompt style once.
func runDemo(cctx *console.Context) {
	surf := surface.New(cctx)
	surf.PrintLine("conterm prompt demo  (Esc skips a step)", cctx.Palette.Emphasis, format.Centered())

	name := prompt.NewText(cctx)
	name.AttachSurface(surf)
	name.SetPrefix("Name ({min}-{max} chars)> ")
	name.SetLengthBounds(1, 40)
	if name.Execute() == prompt.StatusEntered {
		surf.PrintLine("hello, "+name.InputString(), cctx.Palette.Success, format.New())
	}

	count := prompt.NewText(cctx)
	count.AttachSurface(surf)
	count.SetPrefix("How many ({type})> ")
	count.SetKind(prompt.KindUint)
	if count.Execute() == prompt.StatusEntered {
		if v, ok := count.TryResult(prompt.KindUint); ok {
			surf.PrintLine(fmt.Sprintf("counted %v", v), cctx.Palette.Info, format.New())
		}
	}

	file := prompt.NewFilename(cctx)
	file.AttachSurface(surf)
	file.SetPrefix("Save as> ")
	file.SetFilter("*.txt")
	if file.Execute("notes.txt") == prompt.StatusEntered {
		surf.PrintLine("would save "+file.InputString(), cctx.Palette.Info, format.New())
	}

	pw := prompt.NewPassword(cctx)
	pw.AttachSurface(surf)
	pw.SetPrefix("Password> ")
	pw.SetLengthBounds(4, 64)
	pw.Execute()

	confirm := prompt.NewConfirm(cctx, "yes", "no")
	confirm.AttachSurface(surf)
	switch confirm.Execute() {
	case prompt.StatusYes:
		surf.PrintLine("confirmed", cctx.Palette.Success, format.New())
	case prompt.StatusNo:
		surf.PrintLine("declined", cctx.Palette.Warning, format.New())
	}

	prompt.NewAnyKey(cctx, false).Execute()
}
