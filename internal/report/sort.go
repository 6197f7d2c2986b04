// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"sort"
	"strconv"
	"strings"
)

// SortRows orders rows by the comma separated column titles in spec. A
// leading "-" sorts a column descending and a leading "!" makes it case
// sensitive. A column whose non-blank cells all parse as numbers compares
// numerically, with blanks first. Unknown columns are ignored and the sort is
// stable, so an empty spec keeps the report order.
func SortRows(header []string, rows [][]string, spec string) {
	if strings.TrimSpace(spec) == "" {
		return
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[h] = i
	}

	cell := func(row []string, col int) string {
		if col < len(row) {
			return row[col]
		}
		return ""
	}

	type sortKey struct {
		col           int
		ascending     bool
		caseSensitive bool
		numeric       bool
	}

	var keys []sortKey
	for _, field := range strings.Split(spec, ",") {
		field = strings.TrimSpace(field)
		k := sortKey{ascending: true}
		if strings.HasPrefix(field, "-") {
			field = strings.TrimPrefix(field, "-")
			k.ascending = false
		}
		if strings.HasPrefix(field, "!") {
			field = strings.TrimPrefix(field, "!")
			k.caseSensitive = true
		}
		col, ok := columns[field]
		if !ok {
			continue
		}
		k.col = col
		k.numeric = numericColumn(rows, func(row []string) string { return cell(row, col) })
		keys = append(keys, k)
	}

	sort.SliceStable(rows, func(one, two int) bool {
		for _, k := range keys {
			oneValue := cell(rows[one], k.col)
			twoValue := cell(rows[two], k.col)

			if k.numeric {
				if c := compareNumeric(oneValue, twoValue); c != 0 {
					return (c < 0) == k.ascending
				}
				continue
			}

			if !k.caseSensitive {
				oneValue = strings.ToLower(oneValue)
				twoValue = strings.ToLower(twoValue)
			}

			if oneValue != twoValue {
				if k.ascending {
					return oneValue < twoValue
				}
				return oneValue > twoValue
			}
		}
		return false
	})
}

// numericColumn reports whether every non-blank value in the column parses as
// a number. A column of blanks is not numeric.
func numericColumn(rows [][]string, value func([]string) string) bool {
	seen := false
	for _, row := range rows {
		v := value(row)
		if v == "" {
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return false
		}
		seen = true
	}
	return seen
}

// compareNumeric orders two cells of a numeric column. Blanks sort before
// any number.
func compareNumeric(a, b string) int {
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	case b == "":
		return 1
	}

	x, _ := strconv.ParseFloat(a, 64)
	y, _ := strconv.ParseFloat(b, 64)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}
