// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/creachadair/jnode"
	"github.com/go-kit/log/level"
)

type checkCommand struct {
	env   *env
	files *[]string
	quiet *bool
}

func addCheckCommand(app *kingpin.Application, e *env) {
	cmd := &checkCommand{env: e}
	c := app.Command("check", "Report whether inputs contain only valid JSON values.").Action(cmd.run)
	cmd.quiet = c.Flag("quiet", "Report only inputs that fail.").Short('q').Bool()
	cmd.files = c.Arg("file", "Input files (default stdin).").Strings()
}

func (cmd *checkCommand) run(*kingpin.ParseContext) error {
	out := cmd.env.stdout
	names := inputs(*cmd.files)

	var nfail int
	for _, name := range names {
		nv, _, err := cmd.env.eachValue(name, func(*jnode.Node) error { return nil })
		if err != nil {
			nfail++
			level.Warn(cmd.env.logger).Log("msg", "invalid input", "input", name, "err", err)
			fmt.Fprintf(out, "%s: %s %v\n", name, cmd.env.bad.Sprint("FAIL"), err)
			continue
		}
		if !*cmd.quiet {
			fmt.Fprintf(out, "%s: %s (%d values)\n", name, cmd.env.good.Sprint("ok"), nv)
		}
	}
	if nfail > 0 {
		return fmt.Errorf("%d of %d inputs failed", nfail, len(names))
	}
	return nil
}
