// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/csvdelta/csvdelta/internal/log"
	"github.com/csvdelta/csvdelta/internal/table"
)

// RecordDetail is the field-level view of a single key. Status is empty when
// the key exists on both sides with identical fields.
type RecordDetail struct {
	Key    string
	Status Status
	Text   string
}

// Detail renders the differences of one key between the two tables as an
// annotated JSON document. When fields is empty every non-key field of either
// table is shown. A side that lacks the key compares as an empty object.
func Detail(oldTable, newTable *table.Table, keyField, key string, fields []string, color bool) (*RecordDetail, error) {
	if oldTable == nil || newTable == nil {
		return nil, invalidf("two tables are required")
	}
	if !oldTable.HasField(keyField) {
		return nil, invalidf("key field %q not found in %s", keyField, oldTable.Source)
	}
	if !newTable.HasField(keyField) {
		return nil, invalidf("key field %q not found in %s", keyField, newTable.Source)
	}

	if len(fields) == 0 {
		fields = unionFields(oldTable, newTable, keyField)
	}

	before, inOld := buildIndex(oldTable, keyField).records[key]
	after, inNew := buildIndex(newTable, keyField).records[key]
	if !inOld && !inNew {
		return nil, invalidf("key %q not found in either table", key)
	}

	left := project(before, fields)
	right := project(after, fields)

	lb, err := json.Marshal(left)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal old record: %w", err)
	}
	rb, err := json.Marshal(right)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal new record: %w", err)
	}

	delta, err := gojsondiff.New().Compare(lb, rb)
	if err != nil {
		return nil, fmt.Errorf("failed to compare records: %w", err)
	}

	detail := &RecordDetail{Key: key}
	switch {
	case !inOld:
		detail.Status = StatusAdded
	case !inNew:
		detail.Status = StatusRemoved
	case delta.Modified():
		detail.Status = StatusModified
	}
	log.Debugf("detail: key=%s status=%s fields=%d", key, detail.Status, len(fields))

	if !delta.Modified() {
		detail.Text = "The records are identical."
		return detail, nil
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       color,
	}
	text, err := formatter.NewAsciiFormatter(left, config).Format(delta)
	if err != nil {
		return nil, fmt.Errorf("failed to format record diff: %w", err)
	}
	detail.Text = text

	return detail, nil
}

// project turns a record into a JSON object restricted to fields. A nil record
// projects to an empty object.
func project(rec table.Record, fields []string) map[string]interface{} {
	obj := make(map[string]interface{}, len(fields))
	if rec == nil {
		return obj
	}
	for _, f := range fields {
		obj[f] = rec.GetOrBlank(f)
	}
	return obj
}

// unionFields lists the non-key fields of a then the ones only b carries.
func unionFields(a, b *table.Table, keyField string) []string {
	fields := a.CompareCandidates(keyField)
	for _, f := range b.CompareCandidates(keyField) {
		if !a.HasField(f) {
			fields = append(fields, f)
		}
	}
	return fields
}
