// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/csvdelta/csvdelta/internal/config"
	"github.com/csvdelta/csvdelta/internal/log"
	"github.com/csvdelta/csvdelta/internal/meta"
	"github.com/csvdelta/csvdelta/internal/table"
)

// colsCommandAction lists the fields of a table that can be compared, one per
// line, so they can be pasted into --fields or a config set.
func colsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "cols"

	args := cmd.Args().Slice()
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one table path, got %d argument(s)", len(args))
	}

	opts, err := TableOptions(cmd)
	if err != nil {
		return err
	}

	t, err := table.Load(resolvePath(m, args[0]), opts)
	if err != nil {
		return err
	}

	key := cmd.String("key")
	w := stdout(cmd)
	if cmd.Bool("titles") {
		status := "key present"
		if !t.HasField(key) {
			status = "key missing"
		}
		fmt.Fprintf(w, "%s: %s rows, key %s (%s)\n", t.Source, humanize.Comma(int64(t.Len())), key, status)
	}
	for _, f := range t.CompareCandidates(key) {
		fmt.Fprintln(w, f)
	}

	return nil
}

// colsCommandBuilder constructs the "cols" subcommand.
func colsCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "cols",
		Usage:     "list the fields of a table that can be compared",
		UsageText: "csvdelta cols [options] FILE",
		Metadata:  map[string]any{"meta": meta},
		Flags: append(NewTableFlags(),
			NewKeyFlag("cols", meta.Config.Source),
			&cli.BoolFlag{
				Name:    "titles",
				Aliases: []string{"t"},
				Usage:   "show a heading with the row count",
				Value:   false,
			},
		),
		Action: colsCommandAction,
	}
}
