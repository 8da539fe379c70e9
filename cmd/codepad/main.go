package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"example.com/codepad/internal/app"
	"example.com/codepad/pkg/buffer"
	"example.com/codepad/pkg/config"
	"example.com/codepad/pkg/editor"
	"example.com/codepad/pkg/logs"
	"example.com/codepad/pkg/memory"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run builds the editor, drives it until quit and returns the exit code.
// The editor is closed before run returns.
func run(args []string, stderr io.Writer) int {
	r, err := setup(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "codepad: %v\n", err)
		return 2
	}
	defer r.Editor.Close()
	if err := r.Run(); err != nil {
		fmt.Fprintf(stderr, "error running editor: %v\n", err)
		return 1
	}
	return 0
}

// setup parses the command line, loads configuration and builds a Runner
// with the optional file argument opened in the first buffer. A file that
// cannot be opened leaves an empty buffer with a status message.
func setup(args []string, stderr io.Writer) (*app.Runner, error) {
	fs := flag.NewFlagSet("codepad", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "path to config.yaml (default ~/.codepad/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: codepad [-config path] [file]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return nil, fmt.Errorf("expected at most one file, got %d", fs.NArg())
	}

	var cfg *config.Config
	var err error
	if *cfgPath != "" {
		cfg, err = config.Load(*cfgPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	logger := logs.NewFromEnv()
	var alloc memory.Allocator = memory.System
	if cfg.MemoryLimit > 0 {
		alloc = memory.NewLimited(cfg.MemoryLimit)
	}
	ed, err := editor.New(editor.Options{
		Buffers:   cfg.Buffers,
		ArenaSize: cfg.ArenaSize,
		Logger:    logger,
		Buffer: buffer.Options{
			Capacity:  cfg.Capacity,
			ArenaSize: cfg.ArenaSize,
			TabWidth:  cfg.TabWidth,
			Alloc:     alloc,
		},
	})
	if err != nil {
		logger.Close()
		return nil, err
	}

	r := app.New(ed)
	r.Logger = logger
	r.Keymap = cfg.Keymap
	r.Theme = cfg.Theme
	_ = r.LoadFile(fs.Arg(0))
	return r, nil
}
