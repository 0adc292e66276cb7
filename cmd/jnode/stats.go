// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/alecthomas/kingpin/v2"
	"github.com/creachadair/jnode"
	"github.com/dustin/go-humanize"
)

type statsCommand struct {
	env   *env
	files *[]string
}

func addStatsCommand(app *kingpin.Application, e *env) {
	cmd := &statsCommand{env: e}
	c := app.Command("stats", "Summarize the structure of JSON values.").Action(cmd.run)
	cmd.files = c.Arg("file", "Input files (default stdin).").Strings()
}

func (cmd *statsCommand) run(*kingpin.ParseContext) error {
	for _, name := range inputs(*cmd.files) {
		var total jnode.Stats
		nv, nb, err := cmd.env.eachValue(name, func(v *jnode.Node) error {
			addStats(&total, v.Stats())
			return nil
		})
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		cmd.printStats(name, nv, nb, total)
	}
	return nil
}

func addStats(total *jnode.Stats, s jnode.Stats) {
	total.Nodes += s.Nodes
	for i, n := range s.Kinds {
		total.Kinds[i] += n
	}
	for i, n := range s.Numbers {
		total.Numbers[i] += n
	}
	total.MaxDepth = max(total.MaxDepth, s.MaxDepth)
	total.Keys += s.Keys
	total.Bytes += s.Bytes
}

func (cmd *statsCommand) printStats(name string, nv int, nb int64, s jnode.Stats) {
	out := cmd.env.stdout
	cmd.env.bold.Fprintf(out, "Input: %s\n", name)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Values:\t%s\n", humanize.Comma(int64(nv)))
	fmt.Fprintf(tw, "  Size:\t%s\n", humanize.Bytes(uint64(nb)))
	fmt.Fprintf(tw, "  Nodes:\t%s\n", humanize.Comma(int64(s.Nodes)))
	fmt.Fprintf(tw, "  Max depth:\t%d\n", s.MaxDepth)
	fmt.Fprintf(tw, "  Object keys:\t%s\n", humanize.Comma(int64(s.Keys)))
	fmt.Fprintf(tw, "  Text:\t%s\n", humanize.Bytes(uint64(s.Bytes)))
	tw.Flush()

	cmd.env.bold.Fprintln(out, "  Kinds:")
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, k := range []jnode.Kind{
		jnode.NullKind, jnode.BoolKind, jnode.NumberKind,
		jnode.StringKind, jnode.ArrayKind, jnode.ObjectKind,
	} {
		fmt.Fprintf(tw, "    %v\t%s\n", k, humanize.Comma(int64(s.Kinds[k])))
	}
	for _, nk := range []struct {
		label string
		kind  jnode.NumKind
	}{{"int64", jnode.Int64}, {"uint64", jnode.Uint64}, {"float64", jnode.Float64}} {
		fmt.Fprintf(tw, "    num/%s\t%s\n", nk.label, humanize.Comma(int64(s.Numbers[nk.kind])))
	}
	tw.Flush()
}
