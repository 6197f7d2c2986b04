// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package table

import "fmt"

// MalformedTableError reports input that could not be parsed as a table.
// Line is 1-based and zero when the position is unknown.
type MalformedTableError struct {
	Source string
	Line   int
	Err    error
}

func (e *MalformedTableError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed table %s (line %d): %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("malformed table %s: %v", e.Source, e.Err)
}

func (e *MalformedTableError) Unwrap() error {
	return e.Err
}
