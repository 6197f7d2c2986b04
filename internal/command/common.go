// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/csvdelta/csvdelta/internal/log"
	"github.com/csvdelta/csvdelta/internal/meta"
	"github.com/csvdelta/csvdelta/internal/report"
	"github.com/csvdelta/csvdelta/internal/table"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// stdout returns the writer commands print results to.
func stdout(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

// stderr returns the writer commands print notices to.
func stderr(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.ErrWriter != nil {
		return root.ErrWriter
	}
	return os.Stderr
}

// SplitList splits a comma separated flag value, trimming blanks and dropping
// empty entries. Order is preserved.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// TableOptions builds loader options from --format and --delimiter.
func TableOptions(cmd *cli.Command) (table.Options, error) {
	format, err := table.ParseFormat(cmd.String("format"))
	if err != nil {
		return table.Options{}, err
	}
	delim, err := table.ParseDelimiter(cmd.String("delimiter"))
	if err != nil {
		return table.Options{}, err
	}
	return table.Options{Format: format, Delimiter: delim}, nil
}

// LoadTables reads the old and new snapshots named by the first two
// positional arguments. Only one of them may come from stdin.
func LoadTables(cmd *cli.Command) (oldTable, newTable *table.Table, err error) {
	args := cmd.Args().Slice()
	if len(args) < 2 {
		return nil, nil, fmt.Errorf("expected OLD and NEW table paths, got %d argument(s)", len(args))
	}
	if args[0] == table.StdinPath && args[1] == table.StdinPath {
		return nil, nil, fmt.Errorf("only one table can be read from stdin")
	}

	opts, err := TableOptions(cmd)
	if err != nil {
		return nil, nil, err
	}

	m := GetMeta(cmd)
	if oldTable, err = table.Load(resolvePath(m, args[0]), opts); err != nil {
		return nil, nil, err
	}
	if newTable, err = table.Load(resolvePath(m, args[1]), opts); err != nil {
		return nil, nil, err
	}

	log.Debugf("tables loaded: old=%s rows=%d new=%s rows=%d",
		oldTable.Source, oldTable.Len(), newTable.Source, newTable.Len())
	return oldTable, newTable, nil
}

// resolvePath anchors relative paths at the directory csvdelta started in.
func resolvePath(m meta.Meta, path string) string {
	if path == "" || path == table.StdinPath || filepath.IsAbs(path) || m.StartingDir == "" {
		return path
	}
	return filepath.Join(m.StartingDir, path)
}

// ReportOptions builds presentation options from the global flags.
func ReportOptions(cmd *cli.Command, oldRows, newRows int) report.Options {
	return report.Options{
		Format:  cmd.String("output"),
		Color:   cmd.Bool("color"),
		Titles:  cmd.Bool("titles"),
		Filter:  cmd.String("filter"),
		Sort:    cmd.String("sort"),
		Summary: cmd.Bool("summary"),
		Padding: cmd.Int("padding"),
		OldRows: oldRows,
		NewRows: newRows,
	}
}
