// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

// Status tags a ChangeRow.
type Status string

const (
	StatusAdded    Status = "Added"
	StatusRemoved  Status = "Removed"
	StatusModified Status = "Modified"
)

// StatusColumn is the title of the first report column.
const StatusColumn = "Status"

// FieldDelta is the old/new pair reported for one comparison field. A blank
// side means the value is absent (added/removed rows) or unchanged (the New
// side of a modified row). Changed is false only for the unchanged fields of
// a modified row.
type FieldDelta struct {
	Field   string `json:"field" yaml:"field"`
	Old     string `json:"old" yaml:"old"`
	New     string `json:"new" yaml:"new"`
	Changed bool   `json:"changed" yaml:"changed"`
}

// ChangeRow is the result for one key.
type ChangeRow struct {
	Status Status       `json:"status" yaml:"status"`
	Key    string       `json:"key" yaml:"key"`
	Deltas []FieldDelta `json:"deltas" yaml:"deltas"`
}

// Values flattens the row in report column order.
func (r ChangeRow) Values() []string {
	values := make([]string, 0, 2+2*len(r.Deltas))
	values = append(values, string(r.Status), r.Key)
	for _, d := range r.Deltas {
		values = append(values, d.Old, d.New)
	}
	return values
}

// Inverse swaps the row to what comparing the snapshots the other way round
// yields. With numeric equality an unchanged field keeps the old spelling, so
// the inverse is only exact under the default byte equality.
func (r ChangeRow) Inverse() ChangeRow {
	inv := ChangeRow{Key: r.Key, Deltas: make([]FieldDelta, len(r.Deltas))}
	switch r.Status {
	case StatusAdded:
		inv.Status = StatusRemoved
	case StatusRemoved:
		inv.Status = StatusAdded
	default:
		inv.Status = r.Status
	}

	for i, d := range r.Deltas {
		if !d.Changed {
			inv.Deltas[i] = d
			continue
		}
		inv.Deltas[i] = FieldDelta{Field: d.Field, Old: d.New, New: d.Old, Changed: true}
	}
	return inv
}

// ChangeReport is the ordered result of a comparison: Added rows, then
// Removed, then Modified.
type ChangeReport struct {
	KeyField string      `json:"keyField" yaml:"keyField"`
	Fields   []string    `json:"fields" yaml:"fields"`
	Rows     []ChangeRow `json:"rows" yaml:"rows"`
}

// Header returns [Status, <key>, Old f1, New f1, Old f2, New f2, ...].
func (r *ChangeReport) Header() []string {
	header := make([]string, 0, 2+2*len(r.Fields))
	header = append(header, StatusColumn, r.KeyField)
	for _, f := range r.Fields {
		header = append(header, "Old "+f, "New "+f)
	}
	return header
}

// Records returns every row flattened in header order.
func (r *ChangeReport) Records() [][]string {
	records := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		records = append(records, row.Values())
	}
	return records
}

// Counts tallies rows per status.
type Counts struct {
	Added    int `json:"added" yaml:"added"`
	Removed  int `json:"removed" yaml:"removed"`
	Modified int `json:"modified" yaml:"modified"`
}

// Total is the number of rows counted.
func (c Counts) Total() int {
	return c.Added + c.Removed + c.Modified
}

// Counts tallies the report rows per status.
func (r *ChangeReport) Counts() Counts {
	var c Counts
	for _, row := range r.Rows {
		switch row.Status {
		case StatusAdded:
			c.Added++
		case StatusRemoved:
			c.Removed++
		case StatusModified:
			c.Modified++
		}
	}
	return c
}

// Empty reports whether nothing changed.
func (r *ChangeReport) Empty() bool {
	return len(r.Rows) == 0
}
