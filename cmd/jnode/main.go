// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program jnode parses, checks, reformats, and summarizes JSON documents.
//
// Each command reads the files named on its command line, or standard input
// if there are none (or the name is "-"). A file may hold any number of
// whitespace-separated JSON values. Files ending in .gz or .zst are
// decompressed as they are read.
//
// Usage:
//
//	jnode fmt [--indent=N] [--precision=P] [--no-ascii] [file ...]
//	jnode check [file ...]
//	jnode stats [file ...]
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"github.com/creachadair/jnode"
	"github.com/fatih/color"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/mattn/go-isatty"
)

const version = "0.1.0"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		exitWithErr(err)
	}
}

func exitWithErr(err error) {
	color.New(color.FgRed).Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}

// env carries the settings and streams shared by all the commands.
type env struct {
	stdin          io.Reader
	stdout, stderr io.Writer
	logger         log.Logger

	maxDepth *int

	// Styles for highlighting output. They are disabled unless color is
	// requested or stdout is a terminal.
	bold, good, bad *color.Color
}

// run parses args and executes the selected command.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	e := &env{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: log.NewNopLogger(),
		bold:   color.New(color.Bold),
		good:   color.New(color.FgGreen),
		bad:    color.New(color.FgRed),
	}

	app := kingpin.New("jnode", "Parse, check, reformat, and summarize JSON documents.")
	app.Version(version)
	app.UsageWriter(stdout)
	app.ErrorWriter(stderr)

	logLevel := app.Flag("log.level", "Only log messages with the given severity or above.").
		Default("warn").Enum("debug", "info", "warn", "error")
	colorMode := app.Flag("color", "Highlight output: auto, always, or never.").
		Default("auto").Envar("JNODE_COLOR").Enum("auto", "always", "never")
	e.maxDepth = app.Flag("max-depth", "Reject values nested more deeply than this (0 for no limit).").
		Default("0").Int()

	app.PreAction(func(*kingpin.ParseContext) error {
		return e.setup(*logLevel, *colorMode)
	})

	addFmtCommand(app, e)
	addCheckCommand(app, e)
	addStatsCommand(app, e)

	_, err := app.Parse(args)
	return err
}

// setup configures logging and highlighting after flags are parsed.
func (e *env) setup(logLevel, colorMode string) error {
	lv, err := level.Parse(logLevel)
	if err != nil {
		return err
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(e.stderr))
	logger = log.With(logger, "caller", log.DefaultCaller)
	e.logger = level.NewFilter(logger, level.Allow(lv))

	useColor := colorMode == "always" || (colorMode == "auto" && isTerminal(e.stdout))
	for _, c := range []*color.Color{e.bold, e.good, e.bad} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// inputs returns the names of the inputs to read, substituting standard
// input if names is empty.
func inputs(names []string) []string {
	if len(names) == 0 {
		return []string{"-"}
	}
	return names
}

// open opens the named input for reading, decompressing it according to its
// extension.
func (e *env) open(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(e.stdin), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	switch filepath.Ext(name) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open gzip: %w", err)
		}
		return stackCloser{Reader: zr, close: []io.Closer{zr, f}}, nil
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open zstd: %w", err)
		}
		rc := zr.IOReadCloser()
		return stackCloser{Reader: rc, close: []io.Closer{rc, f}}, nil
	}
	return f, nil
}

// stackCloser is an io.ReadCloser that closes a sequence of closers in order.
type stackCloser struct {
	io.Reader
	close []io.Closer
}

func (s stackCloser) Close() error {
	var errs []error
	for _, c := range s.close {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// countingReader counts the bytes read through it.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(data []byte) (int, error) {
	nr, err := c.r.Read(data)
	c.n += int64(nr)
	return nr, err
}

// eachValue parses each JSON value in the named input, in order, and calls
// fn for each. It returns the number of values parsed and the number of bytes
// read from the input after decompression. Parsing stops at the first error,
// or the first error reported by fn.
func (e *env) eachValue(name string, fn func(*jnode.Node) error) (nv int, nb int64, _ error) {
	rc, err := e.open(name)
	if err != nil {
		return 0, 0, err
	}
	defer rc.Close()

	cr := &countingReader{r: rc}
	src := jnode.NewReaderSource(cr)
	p := jnode.Parser{MaxDepth: *e.maxDepth}
	for {
		v, err := p.ParseNext(src)
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nv, cr.n, fmt.Errorf("value %d: %w", nv+1, err)
		}
		nv++
		if err := fn(&v); err != nil {
			return nv, cr.n, err
		}
	}
	level.Debug(e.logger).Log("msg", "read input", "input", name, "values", nv, "bytes", cr.n)
	return nv, cr.n, nil
}
