// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/csvdelta/csvdelta/internal/config"
	"github.com/csvdelta/csvdelta/internal/differ"
	"github.com/csvdelta/csvdelta/internal/log"
	"github.com/csvdelta/csvdelta/internal/meta"
)

// showCommandAction prints a structural diff of a single key's record in both
// snapshots.
func showCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "show"

	args := cmd.Args().Slice()
	if len(args) != 3 {
		return fmt.Errorf("expected OLD, NEW and KEY arguments, got %d", len(args))
	}

	oldTable, newTable, err := LoadTables(cmd)
	if err != nil {
		return err
	}

	detail, err := differ.Detail(oldTable, newTable, cmd.String("key"), args[2],
		SplitList(cmd.String("fields")), cmd.Bool("color"))
	if err != nil {
		return err
	}

	w := stdout(cmd)
	if detail.Status != "" {
		fmt.Fprintf(w, "%s %s\n", detail.Status, detail.Key)
	}
	fmt.Fprintln(w, detail.Text)
	return nil
}

// showCommandBuilder constructs the "show" subcommand.
func showCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "show how one record changed between snapshots",
		UsageText: "csvdelta show [options] OLD NEW KEY",
		Metadata:  map[string]any{"meta": meta},
		Flags: append(NewTableFlags(),
			&cli.BoolFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "enable colored text output",
				Value:   false,
			},
			NewFieldsFlag(),
			NewKeyFlag("show", meta.Config.Source),
		),
		Action: showCommandAction,
	}
}
