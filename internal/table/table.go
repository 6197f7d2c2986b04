// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package table

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Record is one row of a table keyed by field name.
type Record map[string]string

// GetOrBlank returns the value of field, or "" when the record does not carry
// it.
func (r Record) GetOrBlank(field string) string {
	return r[field]
}

// Has reports whether the record carries field, even if its value is blank.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Table is a fully materialized dataset. Fields holds the header in source
// order and Records the rows in source order.
type Table struct {
	Source  string
	Fields  []string
	Records []Record
}

// HasField reports whether field appears in the table header.
func (t *Table) HasField(field string) bool {
	for _, f := range t.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.Records)
}

// CompareCandidates returns the header minus the key field, in header order.
// These are the fields a caller may pick for comparison.
func (t *Table) CompareCandidates(key string) []string {
	candidates := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		if f != key {
			candidates = append(candidates, f)
		}
	}
	return candidates
}

// Format identifies the textual encoding of a table.
type Format string

const (
	FormatAuto Format = "auto"
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatJSON Format = "json"
)

// ParseFormat maps a user supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatCSV, FormatTSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown table format %q: must be one of auto, csv, tsv, json", s)
	}
}

// DetectFormat picks a format from the file extension. Anything unknown,
// including stdin, is treated as CSV.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab":
		return FormatTSV
	case ".json":
		return FormatJSON
	default:
		return FormatCSV
	}
}

// Options controls how a table is parsed.
type Options struct {
	// Format forces the encoding. FormatAuto (or zero) detects it from the
	// source name.
	Format Format
	// Delimiter overrides the field separator for CSV and TSV input. Zero
	// means ',' for CSV and '\t' for TSV.
	Delimiter rune
}

// resolve fills in the format and delimiter for source.
func (o Options) resolve(source string) Options {
	if o.Format == "" || o.Format == FormatAuto {
		o.Format = DetectFormat(source)
	}
	if o.Delimiter == 0 {
		switch o.Format {
		case FormatTSV:
			o.Delimiter = '\t'
		default:
			o.Delimiter = ','
		}
	}
	return o
}

// ParseDelimiter converts a flag value into a delimiter rune. It understands
// the escapes `\t` and "tab".
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case `\t`, "tab", "\t":
		return '\t', nil
	}
	r := []rune(s)
	if len(r) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	if r[0] == '"' || r[0] == '\r' || r[0] == '\n' {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return r[0], nil
}
