// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/csvdelta/csvdelta/internal/differ"
	"github.com/csvdelta/csvdelta/internal/log"
)

// DefaultFileName is where the change log lands when no path is given.
const DefaultFileName = "changeLog.csv"

// WriteCSV writes the report header and every row as UTF-8 CSV with "\n"
// line endings. An empty report still yields the header line.
func WriteCSV(w io.Writer, rep *differ.ChangeReport) error {
	return writeRecords(w, rep.Header(), rep.Records())
}

func writeRecords(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return nil
}

// countingWriter tallies bytes passed through to w.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Save writes the report as CSV to path, replacing any existing file. The
// content goes to a temporary sibling first and is renamed into place, so a
// failed write never leaves a truncated change log. It returns the number of
// bytes written.
func Save(path string, rep *differ.ChangeReport) (int64, error) {
	if path == "" {
		path = DefaultFileName
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return 0, fmt.Errorf("failed to create change log in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op once renamed.
		_ = os.Remove(tmpName)
	}()

	cw := &countingWriter{w: tmp}
	if err := WriteCSV(cw, rep); err != nil {
		_ = tmp.Close()
		return 0, fmt.Errorf("failed to write change log %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("failed to close change log %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return 0, fmt.Errorf("failed to set change log mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return 0, fmt.Errorf("failed to save change log %s: %w", path, err)
	}

	log.Debugf("saved change log: path=%s rows=%d size=%s", path, len(rep.Rows), humanize.Bytes(uint64(cw.n)))
	return cw.n, nil
}
