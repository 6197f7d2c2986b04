// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"math"
	"strconv"

	"github.com/csvdelta/csvdelta/internal/log"
	"github.com/csvdelta/csvdelta/internal/table"
)

// Option tunes a comparison.
type Option func(*settings)

type settings struct {
	equal func(a, b string) bool
}

// WithNumericEquality treats two values that both parse as finite numbers as
// equal when they are numerically equal, so "1", "1.0" and "1e0" match. The
// report still carries the raw values.
func WithNumericEquality() Option {
	return func(s *settings) {
		s.equal = numericEqual
	}
}

func exactEqual(a, b string) bool {
	return a == b
}

func numericEqual(a, b string) bool {
	if a == b {
		return true
	}
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA != nil || errB != nil || math.IsInf(fa, 0) || math.IsInf(fb, 0) || math.IsNaN(fa) || math.IsNaN(fb) {
		return false
	}
	return fa == fb
}

// index maps keys to records. order holds the distinct keys in the order they
// were first seen; records holds the last record seen for each key.
type index struct {
	order   []string
	records map[string]table.Record
}

func buildIndex(t *table.Table, keyField string) index {
	idx := index{
		order:   make([]string, 0, t.Len()),
		records: make(map[string]table.Record, t.Len()),
	}

	dupes := 0
	for _, rec := range t.Records {
		key := rec.GetOrBlank(keyField)
		if _, seen := idx.records[key]; seen {
			dupes++
		} else {
			idx.order = append(idx.order, key)
		}
		idx.records[key] = rec
	}

	if dupes > 0 {
		log.Debugf("duplicate keys collapsed, last record wins: source=%s duplicates=%d", t.Source, dupes)
	}
	return idx
}

func (i index) has(key string) bool {
	_, ok := i.records[key]
	return ok
}

// Diff compares oldTable against newTable keyed by keyField and reports, for
// every key, whether it was added, removed or modified across fields.
//
// Within one table a repeated key resolves to its last record while keeping
// the position of its first occurrence. Rows come out as every Added key in
// new-table order, then every Removed key in old-table order, then every
// Modified key in old-table order. Keys whose fields all compare equal produce
// no row. A field missing from a record reads as "".
//
// Neither table is modified.
func Diff(oldTable, newTable *table.Table, keyField string, fields []string, opts ...Option) (*ChangeReport, error) {
	if err := validate(oldTable, newTable, keyField, fields); err != nil {
		return nil, err
	}

	s := settings{equal: exactEqual}
	for _, opt := range opts {
		opt(&s)
	}

	oldIdx := buildIndex(oldTable, keyField)
	newIdx := buildIndex(newTable, keyField)

	rep := &ChangeReport{
		KeyField: keyField,
		Fields:   append([]string(nil), fields...),
	}

	for _, key := range newIdx.order {
		if oldIdx.has(key) {
			continue
		}
		rec := newIdx.records[key]
		row := ChangeRow{Status: StatusAdded, Key: key, Deltas: make([]FieldDelta, len(fields))}
		for i, f := range fields {
			row.Deltas[i] = FieldDelta{Field: f, New: rec.GetOrBlank(f), Changed: true}
		}
		rep.Rows = append(rep.Rows, row)
	}

	for _, key := range oldIdx.order {
		if newIdx.has(key) {
			continue
		}
		rec := oldIdx.records[key]
		row := ChangeRow{Status: StatusRemoved, Key: key, Deltas: make([]FieldDelta, len(fields))}
		for i, f := range fields {
			row.Deltas[i] = FieldDelta{Field: f, Old: rec.GetOrBlank(f), Changed: true}
		}
		rep.Rows = append(rep.Rows, row)
	}

	for _, key := range oldIdx.order {
		if !newIdx.has(key) {
			continue
		}
		before, after := oldIdx.records[key], newIdx.records[key]
		row := ChangeRow{Status: StatusModified, Key: key, Deltas: make([]FieldDelta, len(fields))}
		modified := false
		for i, f := range fields {
			ov, nv := before.GetOrBlank(f), after.GetOrBlank(f)
			log.Tracef("compare key=%s field=%s old=%q new=%q", key, f, ov, nv)
			if s.equal(ov, nv) {
				row.Deltas[i] = FieldDelta{Field: f, Old: ov}
				continue
			}
			row.Deltas[i] = FieldDelta{Field: f, Old: ov, New: nv, Changed: true}
			modified = true
		}
		if modified {
			rep.Rows = append(rep.Rows, row)
		}
	}

	c := rep.Counts()
	log.Debugf("diff done: key=%s fields=%d added=%d removed=%d modified=%d",
		keyField, len(fields), c.Added, c.Removed, c.Modified)

	return rep, nil
}

func validate(oldTable, newTable *table.Table, keyField string, fields []string) error {
	if oldTable == nil || newTable == nil {
		return invalidf("two tables are required")
	}
	if keyField == "" {
		return invalidf("no key field given")
	}
	if !oldTable.HasField(keyField) {
		return invalidf("key field %q not found in %s", keyField, oldTable.Source)
	}
	if !newTable.HasField(keyField) {
		return invalidf("key field %q not found in %s", keyField, newTable.Source)
	}
	if len(fields) == 0 {
		return invalidf("select at least one field to compare")
	}

	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f == keyField {
			return invalidf("key field %q cannot also be a comparison field", f)
		}
		if seen[f] {
			return invalidf("comparison field %q given more than once", f)
		}
		seen[f] = true

		if !oldTable.HasField(f) && !newTable.HasField(f) {
			log.Warnf("comparison field %q is in neither table and compares as blank", f)
		}
	}

	return nil
}
