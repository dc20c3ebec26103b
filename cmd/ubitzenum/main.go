/*
 * uBITz enumerator - Main process.
 *
 * Copyright 2026, uBITz contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"io"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"
	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/ubitz/enumerator/bus/simbus"
	"github.com/ubitz/enumerator/console"
	"github.com/ubitz/enumerator/orchestrator"
	"github.com/ubitz/enumerator/snapshot"
)

func main() {
	optConfig := getopt.StringLong("config", 'c', "ubitz.cfg", "Backplane configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Verbose logging to stderr")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	logWriter := io.Writer(os.Stderr)
	if *optLogFile != "" {
		file, err := os.Create(*optLogFile)
		if err != nil {
			slog.Error("could not create log file", "path", *optLogFile, "err", err)
			os.Exit(1)
		}
		defer file.Close()
		if *optDebug {
			logWriter = io.MultiWriter(file, os.Stderr)
		} else {
			logWriter = file
		}
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelInfo)
	if *optDebug {
		programLevel.Set(slog.LevelDebug)
	}
	log := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{Level: programLevel}))
	slog.SetDefault(log)

	log.Info("ubitzenum started", "config", *optConfig)

	backplane, err := simbus.LoadConfigFile(*optConfig)
	if err != nil {
		log.Error("failed to load backplane configuration", "err", err)
		os.Exit(1)
	}

	store := &snapshot.Store{}
	platform := &orchestrator.Platform{
		Cfg:    backplane,
		Cpld:   backplane,
		Reset:  backplane,
		Store:  store,
		Logger: log,
	}

	if err := platform.Run(); err != nil {
		log.Error("enumeration failed", "err", err)
	}

	runConsole(platform, store)
}

func runConsole(platform *orchestrator.Platform, store *snapshot.Store) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		runInteractive(platform, store)
		return
	}
	console.New(os.Stdin, os.Stdout, store, platform).Serve()
}

func runInteractive(platform *orchestrator.Platform, store *snapshot.Store) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	r, w := io.Pipe()
	go func() {
		defer w.Close()
		for {
			cmd, err := line.Prompt("ubitz> ")
			if err != nil {
				return
			}
			line.AppendHistory(cmd)
			if _, err := io.WriteString(w, cmd+"\n"); err != nil {
				return
			}
		}
	}()

	console.New(r, os.Stdout, store, platform).Serve()
}
