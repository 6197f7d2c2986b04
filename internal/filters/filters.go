// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/csvdelta/csvdelta/internal/log"
)

// filterRegex is the pattern used to parse filter expressions into key,
// operator, and target components. Operators are one of = ^ ~ < > @ or /,
// optionally prefixed with '!'. Examples: "Status=Added", "URL^https://shop",
// "New Title!@draft".
var filterRegex = regexp.MustCompile(`^([^!=^~<>@/]*)(!?[=^~<>@/])(.*)$`)

// Filter is a single parsed --filter expression including the key, operand,
// optional negation and value to match against.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Malformed expressions are logged and skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	// Default delimiter is ",", allow an override for situations where the value
	// contains commas.
	delim := ","
	if d, ok := os.LookupEnv("CSVDELTA_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			log.Errorf("invalid filter: %s", filterSpec)
			continue
		}

		key := strings.TrimSpace(parts[1])
		if key == "" {
			log.Errorf("invalid filter: empty key in %s", filterSpec)
			continue
		}

		operand := parts[2]
		negate := strings.HasPrefix(operand, "!")
		if negate {
			operand = strings.TrimPrefix(operand, "!")
		}

		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: operand,
			Value:   parts[3],
		})
	}

	return filters
}

// FilterRows returns the rows matching every filter in spec. header names the
// columns of each row. Filters on unknown columns are reported once and
// ignored.
func FilterRows(header []string, rows [][]string, spec string) [][]string {
	filters := BuildFilters(spec)
	if len(filters) == 0 {
		return rows
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[h] = i
	}

	type boundFilter struct {
		Filter
		col int
	}

	//nolint:prealloc
	var bound []boundFilter
	for _, f := range filters {
		col, ok := columns[f.Key]
		if !ok {
			log.Warnf("filter key not found: %s", f.Key)
			fmt.Fprintf(os.Stderr, "warning: filter key not found: %s\n", f.Key)
			continue
		}
		bound = append(bound, boundFilter{Filter: f, col: col})
	}

	var kept [][]string
	for _, row := range rows {
		match := true
		for _, bf := range bound {
			value := ""
			if bf.col < len(row) {
				value = row[bf.col]
			}
			if !checkValue(value, bf.Filter) {
				log.Tracef("filter rejected row: key=%s operand=%s value=%q", bf.Key, bf.Operand, value)
				match = false
				break
			}
		}
		if match {
			kept = append(kept, row)
		}
	}

	log.Debugf("filtered rows: spec=%s kept=%d of %d", spec, len(kept), len(rows))
	return kept
}

// checkValue compares numerically for = < > when both sides parse as numbers
// and falls back to string semantics otherwise.
func checkValue(value string, filter Filter) bool {
	switch filter.Operand {
	case "=", "<", ">":
		if num, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			if _, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64); err == nil {
				return checkNumericOperand(num, filter)
			}
		}
	}
	return checkStringOperand(value, filter)
}

// checkNumericOperand compares a numeric value against the filter value using
// numeric semantics. Supported operands: =, >, < and the negated form via
// filter.Negate (e.g., != is represented as Negate + "=").
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		log.Errorf("invalid numeric value: %s", filter.Value)
		return false
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	case "<":
		return (value < tgt) == !filter.Negate
	default:
		log.Errorf("unsupported numeric operand: %s", filter.Operand)
		return false
	}
}

// checkStringOperand evaluates a string comparison style filter against the
// provided value using the operand semantics.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Value == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return value > filter.Value == !filter.Negate
	case "<":
		return value < filter.Value == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Errorf("invalid regex: %s", filter.Value)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Errorf("unsupported filtering operand: %s", filter.Operand)
		return false
	}
}
