// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"gopkg.in/yaml.v2"

	"github.com/csvdelta/csvdelta/internal/config"
	"github.com/csvdelta/csvdelta/internal/differ"
	"github.com/csvdelta/csvdelta/internal/filters"
	"github.com/csvdelta/csvdelta/internal/log"
)

// Output formats accepted by Spit.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputCSV  = "csv"
)

// Options controls how Spit presents a report.
type Options struct {
	// Format is one of the Output* constants. Empty means text.
	Format string
	Color  bool
	Titles bool
	// Filter and Sort use the filters and SortRows syntax against the report
	// column titles.
	Filter  string
	Sort    string
	Summary bool
	Padding int
	// OldRows and NewRows feed the summary footer.
	OldRows int
	NewRows int
}

// Spit filters, sorts and renders the report rows to w. If w is nil,
// os.Stdout is used. The saved change log is never affected by Options.
func Spit(w io.Writer, rep *differ.ChangeReport, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	header := rep.Header()
	rows := filters.FilterRows(header, rep.Records(), opts.Filter)
	SortRows(header, rows, opts.Sort)

	switch opts.Format {
	case OutputJSON:
		out, err := marshalJSON(header, rows)
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = w.Write(out)
		return err
	case OutputYAML:
		out, err := yaml.Marshal(orderedRows(header, rows))
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	case OutputCSV:
		return writeRecords(w, header, rows)
	case "", OutputText:
		TableWriter(w, header, rows, opts)
		if opts.Summary {
			footer := Summary(rep, opts.OldRows, opts.NewRows)
			fmt.Fprintln(w, titleStyle(opts.Color).Render(footer))
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

// orderedRows pairs every row with the header so yaml keeps column order.
func orderedRows(header []string, rows [][]string) []yaml.MapSlice {
	out := make([]yaml.MapSlice, 0, len(rows))
	for _, row := range rows {
		item := make(yaml.MapSlice, 0, len(header))
		for i, h := range header {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			item = append(item, yaml.MapItem{Key: h, Value: value})
		}
		out = append(out, item)
	}
	return out
}

// marshalJSON emits an indented array of objects whose keys follow the
// header. encoding/json sorts map keys, so objects are assembled by hand.
func marshalJSON(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for r, item := range orderedRows(header, rows) {
		if r > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for i, kv := range item {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(kv.Key)
			if err != nil {
				return nil, err
			}
			v, err := json.Marshal(kv.Value)
			if err != nil {
				return nil, err
			}
			buf.Write(k)
			buf.WriteByte(':')
			buf.Write(v)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// TableWriter renders rows in tabular form honoring color, titles and padding
// options. Status cells are colored per kind when color is on.
func TableWriter(w io.Writer, header []string, rows [][]string, opts Options) {
	if w == nil {
		w = os.Stdout
	}

	// Nothing to show.
	if len(rows) == 0 {
		log.Debugf("no rows to render")
		return
	}

	var (
		headerStyle = titleStyle(opts.Color)
		cellStyle   = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		statusStyle = map[string]lipgloss.Style{}
	)

	if opts.Color {
		colors := getColors("colors")
		for _, s := range []differ.Status{differ.StatusAdded, differ.StatusRemoved, differ.StatusModified} {
			statusStyle[string(s)] = cellStyle.Foreground(colors[s])
		}
	}

	pad := opts.Padding
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := cellStyle
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case col == 0 && row >= 0 && row < len(rows):
				if s, ok := statusStyle[rows[row][0]]; ok {
					style = s
				}
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(header...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

func titleStyle(colored bool) lipgloss.Style {
	style := lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
	if colored {
		style = style.Foreground(getColors("colors")["title"])
	}
	return style
}

// getColors returns configured color values for report rendering, keyed by
// status plus "title". Defaults depend on the terminal background so output
// stays readable on light and dark themes.
func getColors(key string) map[differ.Status]color.Color {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	// Use the explicit color if found in the config and leave it up to the user
	// to choose appropriate colors for their theme.
	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	return map[differ.Status]color.Color{
		"title":               resolveColor(key+".title", "#b08800", "#f6be00"),
		differ.StatusAdded:    resolveColor(key+".added", "#007a00", "#3fd13f"),
		differ.StatusRemoved:  resolveColor(key+".removed", "#b00000", "#ff5f5f"),
		differ.StatusModified: resolveColor(key+".modified", "#0088a0", "#00c8f0"),
	}
}
