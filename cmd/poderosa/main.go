// Copyright (c) 2026 The Poderosa Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command poderosa runs a shell on a pseudo-terminal, drives the terminal
// emulator core with its output, and prints the final screen when the
// shell exits. It exists to exercise the library end to end; rendering
// and interactive use stay with the embedding application.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/creack/pty"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/digilog/poderosa/terminal"
	"github.com/digilog/poderosa/util"
)

func main() {
	var configPath string
	cfg := defaultConfig()

	flag.StringVar(&configPath, "config", "", "YAML config file")
	flag.StringVar(&cfg.Shell, "shell", cfg.Shell, "program to run")
	flag.IntVar(&cfg.Rows, "rows", cfg.Rows, "terminal rows")
	flag.IntVar(&cfg.Cols, "cols", cfg.Cols, "terminal columns")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "trace-level logging")
	flag.Parse()

	if configPath != "" {
		loaded, err := loadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if err := cfg.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	if cfg.Verbose {
		util.Logger.SetLevel(util.LevelTrace)
	}

	if err := run(cfg, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(cfg Config, args []string) error {
	emu := terminal.NewEmulator(cfg.Cols, cfg.Rows, cfg.SaveLines)
	emu.SetModifyCursorKeys(cfg.ModifyCursorKeys)

	cmd := exec.Command(cfg.Shell, args...)
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(cfg.Rows), Cols: uint16(cfg.Cols),
	})
	if err != nil {
		return fmt.Errorf("start %s: %w", cfg.Shell, err)
	}
	defer ptmx.Close()

	// emulator replies (DA, CPR, mouse reports) flow straight back
	emu.SetTransmitter(ptmx)

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		oldState, rawErr := term.MakeRaw(int(os.Stdin.Fd()))
		if rawErr == nil {
			defer term.Restore(int(os.Stdin.Fd()), oldState)
		}
	}

	var g errgroup.Group

	// pty -> emulator
	g.Go(func() error {
		buf := make([]byte, 4096)
		for {
			n, readErr := ptmx.Read(buf)
			if n > 0 {
				emu.HandleStream(string(buf[:n]))
			}
			if readErr != nil {
				// the peer closing the pty is the normal end of session
				return nil
			}
		}
	})

	// stdin -> pty, while interactive; left to die with the process
	// because a blocked stdin read cannot be interrupted portably
	if interactive {
		go func() {
			buf := make([]byte, 1024)
			for {
				n, readErr := os.Stdin.Read(buf)
				if n > 0 {
					if _, writeErr := ptmx.Write(buf[:n]); writeErr != nil {
						return
					}
				}
				if readErr != nil {
					return
				}
			}
		}()
	}

	waitErr := cmd.Wait()
	ptmx.Close()
	if err := g.Wait(); err != nil && err != io.EOF {
		util.Logger.Warn("stream pump stopped", "error", err)
	}

	dumpScreen(os.Stdout, emu, cfg.Rows)

	if title := emu.GetSettings().Caption; title != "" {
		slog.Info("window title at exit", "title", title)
	}
	return waitErr
}

// dumpScreen prints the visible window, one line per row.
func dumpScreen(w io.Writer, emu *terminal.Emulator, rows int) {
	for i := 0; i < rows; i++ {
		fmt.Fprintln(w, emu.RowText(i))
	}
}
