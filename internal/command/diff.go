// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/csvdelta/csvdelta/internal/config"
	"github.com/csvdelta/csvdelta/internal/differ"
	"github.com/csvdelta/csvdelta/internal/log"
	"github.com/csvdelta/csvdelta/internal/meta"
	"github.com/csvdelta/csvdelta/internal/report"
	"github.com/csvdelta/csvdelta/internal/table"
)

// isTerminal reports whether the field picker can take over the terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}

// selectFields runs the interactive picker. Swapped in tests.
var selectFields = differ.SelectFields

// diffCommandAction is the action handler for the "diff" subcommand. It loads
// both snapshots, works out which fields to compare, saves the change log and
// renders the report.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "diff"

	oldTable, newTable, err := LoadTables(cmd)
	if err != nil {
		return err
	}

	key := cmd.String("key")
	fields, err := resolveFields(cmd, oldTable, key)
	if err != nil {
		return err
	}

	numeric := cmd.Bool("numeric")
	if !cmd.IsSet("numeric") {
		if numeric, err = config.GetBool("numeric", false); err != nil {
			log.Warnf("ignoring numeric config value: %v", err)
		}
	}

	var opts []differ.Option
	if numeric {
		opts = append(opts, differ.WithNumericEquality())
	}

	rep, err := differ.Diff(oldTable, newTable, key, fields, opts...)
	if err != nil {
		return err
	}
	c := rep.Counts()
	log.Infof("diff complete: key=%s fields=%d added=%d removed=%d modified=%d",
		key, len(fields), c.Added, c.Removed, c.Modified)

	if path := cmd.String("save"); path != "" {
		path = resolvePath(m, path)
		n, err := report.Save(path, rep)
		if err != nil {
			return err
		}
		fmt.Fprintf(stderr(cmd), "Changes saved to %s (%s)\n", path, humanize.Bytes(uint64(n)))
	}

	if rep.Empty() && cmd.String("output") == report.OutputText {
		fmt.Fprintln(stderr(cmd), "No changes found.")
		if !cmd.Bool("summary") {
			return nil
		}
	}

	return report.Spit(stdout(cmd), rep, ReportOptions(cmd, oldTable.Len(), newTable.Len()))
}

// resolveFields picks the comparison fields. --fields wins, then --all, then
// the interactive picker, then the configured diff.fields list.
func resolveFields(cmd *cli.Command, oldTable *table.Table, key string) ([]string, error) {
	if fields := SplitList(cmd.String("fields")); len(fields) > 0 {
		return fields, nil
	}

	if cmd.Bool("all") {
		return oldTable.CompareCandidates(key), nil
	}

	configured, _ := config.GetStringSlice("fields", nil)

	if cmd.Bool("interactive") {
		if !isTerminal() {
			return nil, fmt.Errorf("--interactive needs a terminal")
		}
		return selectFields(oldTable.CompareCandidates(key), configured)
	}

	if len(configured) > 0 {
		log.Debugf("using configured fields: %v", configured)
		return configured, nil
	}

	return nil, &differ.InvalidInputError{
		Reason: "no fields selected: use --fields, --all or --interactive",
	}
}

// diffCommandBuilder constructs the "diff" subcommand.
func diffCommandBuilder(meta meta.Meta) *cli.Command {
	flags := append(NewGlobalFlags("diff", meta.Config.Source), NewTableFlags()...)

	return &cli.Command{
		Name:      "diff",
		Usage:     "compare two snapshots and report changes per key",
		UsageText: "csvdelta diff [options] OLD NEW",
		Metadata:  map[string]any{"meta": meta},
		Flags: append(flags, []cli.Flag{
			&cli.BoolFlag{
				Name:        "all",
				Usage:       "compare every field of OLD except the key",
				HideDefault: true,
			},
			NewFieldsFlag(),
			&cli.BoolFlag{
				Name:        "interactive",
				Aliases:     []string{"i"},
				Usage:       "pick the fields to compare interactively",
				HideDefault: true,
			},
			NewKeyFlag("diff", meta.Config.Source),
			NewNumericFlag(),
			NewSaveFlag("diff", meta.Config.Source),
		}...),
		Action: diffCommandAction,
	}
}
