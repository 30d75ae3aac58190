// Copyright © 2025 RNano contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/rnano/main.go
// Summary: Command-line entry point: flags, logging, terminal setup.
// Usage: rnano [filename] [--line-numbers]

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/TC999/rnano/buffer"
	"github.com/TC999/rnano/config"
	"github.com/TC999/rnano/editor"
	"github.com/TC999/rnano/history"
	"github.com/TC999/rnano/screen"
	"github.com/TC999/rnano/version"
)

var (
	lineNumbers = flag.Bool("line-numbers", false, "show a line-number gutter")
	showVersion = flag.Bool("version", false, "print version information and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Full())
		os.Exit(0)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "rnano: standard input and output must be a terminal")
		os.Exit(1)
	}

	cfg := config.Load()
	setupLogging(cfg)

	var filename string
	switch args := flag.Args(); len(args) {
	case 0:
	case 1:
		filename = args[0]
	default:
		fmt.Fprintln(os.Stderr, "Usage: rnano [filename] [--line-numbers]")
		os.Exit(1)
	}

	if err := run(cfg, filename); err != nil {
		fmt.Fprintf(os.Stderr, "rnano: %v\n", err)
		log.Printf("Exited with error: %v", err)
		os.Exit(1)
	}
	log.Println("Exited cleanly")
}

func run(cfg config.Config, filename string) error {
	var (
		buf   *buffer.TextBuffer
		isNew bool
		err   error
	)
	if filename != "" {
		buf, isNew, err = editor.OpenFile(filename)
		if err != nil {
			// A named but unreadable file is fatal at startup.
			return err
		}
	} else {
		buf = buffer.New()
	}

	var store *history.Store
	if cfg.History {
		if path, perr := history.DefaultPath(); perr != nil {
			log.Printf("History: %v", perr)
		} else if store, err = history.Open(path); err != nil {
			log.Printf("History: %v", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	drv, err := screen.Init()
	if err != nil {
		return fmt.Errorf("initialize terminal: %w", err)
	}
	defer drv.Fini()

	ed := editor.New(drv, buf, editor.Options{
		LineNumbers: *lineNumbers || cfg.LineNumbers,
		History:     store,
	})
	if isNew {
		ed.SetStatus("New file")
	}
	log.Printf("Editing %q (new=%v)", filename, isNew)
	return ed.Run()
}

func setupLogging(cfg config.Config) {
	if !cfg.EnableLogger {
		log.SetOutput(io.Discard)
		return
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rnano: open log file: %v\n", err)
		os.Exit(1)
	}
	log.SetOutput(f)
	log.Printf("--- %s started ---", version.Full())
}
