// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"

	"github.com/csvdelta/csvdelta/internal/log"
)

// StdinPath is the path that selects standard input.
const StdinPath = "-"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads and parses the table at path. A path of "-" reads stdin.
func Load(path string, opts Options) (*Table, error) {
	if path == StdinPath {
		log.Debugf("loading table from stdin")
		return Parse(os.Stdin, "stdin", opts)
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("table file does not exist: %s: %w", path, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat table file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("table input cannot be a directory: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table file: %w", err)
	}
	defer f.Close()

	log.Debugf("loading table: path=%s size=%s", path, humanize.Bytes(uint64(info.Size())))

	return Parse(f, path, opts)
}

// Parse reads a whole table from r. source names the input in errors and
// drives format detection when opts.Format is auto.
func Parse(r io.Reader, source string, opts Options) (*Table, error) {
	opts = opts.resolve(source)

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	var t *Table
	switch opts.Format {
	case FormatJSON:
		t, err = parseJSON(raw, source)
	default:
		t, err = parseDelimited(raw, source, opts.Delimiter)
	}
	if err != nil {
		return nil, err
	}

	log.Debugf("parsed table: source=%s format=%s fields=%d records=%s",
		source, opts.Format, len(t.Fields), humanize.Comma(int64(t.Len())))
	return t, nil
}

// parseDelimited handles CSV and TSV. The first row is the header. Short rows
// leave their trailing fields absent and extra cells are dropped.
func parseDelimited(raw []byte, source string, delim rune) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, &MalformedTableError{Source: source, Err: errors.New("no header row")}
	}
	if err != nil {
		return nil, csvError(source, err)
	}

	if err := checkHeader(header); err != nil {
		return nil, &MalformedTableError{Source: source, Line: 1, Err: err}
	}

	t := &Table{Source: source, Fields: header}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(source, err)
		}

		row := make(Record, len(header))
		for i, field := range header {
			if i >= len(rec) {
				break
			}
			row[field] = rec[i]
		}
		t.Records = append(t.Records, row)
	}

	return t, nil
}

// checkHeader rejects blank and repeated column names since records are keyed
// by name.
func checkHeader(header []string) error {
	seen := make(map[string]bool, len(header))
	for i, name := range header {
		if name == "" {
			return fmt.Errorf("header column %d has no name", i+1)
		}
		if seen[name] {
			return fmt.Errorf("duplicate header column %q", name)
		}
		seen[name] = true
	}
	return nil
}

func csvError(source string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &MalformedTableError{Source: source, Line: pe.StartLine, Err: pe.Err}
	}
	return &MalformedTableError{Source: source, Err: err}
}

// parseJSON handles a top-level array of objects. The header is the union of
// object keys in first-seen order.
func parseJSON(raw []byte, source string) (*Table, error) {
	if !gjson.ValidBytes(raw) {
		return nil, &MalformedTableError{Source: source, Err: errors.New("invalid JSON")}
	}

	doc := gjson.ParseBytes(raw)
	if !doc.IsArray() {
		return nil, &MalformedTableError{Source: source, Err: errors.New("expected a JSON array of objects")}
	}

	t := &Table{Source: source}
	seen := make(map[string]bool)

	var elemErr error
	doc.ForEach(func(idx, elem gjson.Result) bool {
		if !elem.IsObject() {
			elemErr = fmt.Errorf("element %d is not an object", idx.Int())
			return false
		}

		row := make(Record)
		elem.ForEach(func(k, v gjson.Result) bool {
			name := k.String()
			if !seen[name] {
				seen[name] = true
				t.Fields = append(t.Fields, name)
			}
			row[name] = jsonValueString(v)
			return true
		})
		t.Records = append(t.Records, row)
		return true
	})
	if elemErr != nil {
		return nil, &MalformedTableError{Source: source, Err: elemErr}
	}

	return t, nil
}

// jsonValueString renders a JSON value as table text. Numbers keep their
// source spelling so that "1.0" stays distinct from "1".
func jsonValueString(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return v.Str
	default:
		return v.Raw
	}
}
