// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bufio"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/creachadair/jnode"
	"github.com/go-kit/log/level"
)

type fmtCommand struct {
	env       *env
	files     *[]string
	indent    *int
	precision *int
	ascii     *bool
}

func addFmtCommand(app *kingpin.Application, e *env) {
	cmd := &fmtCommand{env: e}
	c := app.Command("fmt", "Reformat JSON values to standard output.").Action(cmd.run)
	cmd.indent = c.Flag("indent", "Spaces per indentation level (negative for compact output).").
		Short('i').Default("-1").Envar("JNODE_INDENT").Int()
	cmd.precision = c.Flag("precision", "Significant digits for floating-point values (negative for shortest).").
		Default("-1").Envar("JNODE_PRECISION").Int()
	cmd.ascii = c.Flag("ascii", "Escape non-ASCII characters in strings.").
		Default("true").Bool()
	cmd.files = c.Arg("file", "Input files (default stdin).").Strings()
}

func (cmd *fmtCommand) run(*kingpin.ParseContext) error {
	s := jnode.NewSerializer().
		Indent(*cmd.indent).
		Precision(*cmd.precision).
		ASCII(*cmd.ascii)

	w := bufio.NewWriter(cmd.env.stdout)
	for _, name := range inputs(*cmd.files) {
		_, _, err := cmd.env.eachValue(name, func(v *jnode.Node) error {
			if err := s.Format(w, v); err != nil {
				return err
			}
			return w.WriteByte('\n')
		})
		if err != nil {
			w.Flush()
			return fmt.Errorf("%s: %w", name, err)
		}
		level.Info(cmd.env.logger).Log("msg", "formatted input", "input", name)
	}
	return w.Flush()
}
