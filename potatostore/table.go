package potatostore

import (
	"fmt"

	"github.com/thattophatperson/potatorf/potatocol"
	"github.com/thattophatperson/potatorf/potatovalue"
)

// initialRowCapacity is the row-buffer capacity a freshly created table
// starts with, matching the reference engine's cap=16 seed.
const initialRowCapacity = 16

// Table is an ordered column list plus an ordered row list (with
// tombstones) and a monotonically increasing next_id counter.
type Table struct {
	Name   string
	Schema potatocol.Schema
	Rows   []Row
	Cap    int
	NextID int32
}

// NewTable constructs an empty table with the given name and columns.
func NewTable(name string, cols []potatocol.Column) *Table {
	return &Table{
		Name:   name,
		Schema: potatocol.Schema{Columns: cols},
		Rows:   make([]Row, 0, initialRowCapacity),
		Cap:    initialRowCapacity,
	}
}

// NCols returns the table's declared column count.
func (t *Table) NCols() int { return len(t.Schema.Columns) }

// LiveRowCount returns the number of non-tombstoned rows (I4: excluded
// from user-visible row counts).
func (t *Table) LiveRowCount() int {
	n := 0
	for _, r := range t.Rows {
		if !r.Deleted {
			n++
		}
	}
	return n
}

// Insert appends one row built from values (already validated/typed by
// the caller), growing the row buffer by doubling as needed, and
// increments next_id. Returns the new row's index.
func (t *Table) Insert(values []potatovalue.Value) (int, error) {
	if len(values) != t.NCols() {
		return -1, fmt.Errorf("column count mismatch: got %d, want %d", len(values), t.NCols())
	}
	if len(t.Rows) >= t.Cap {
		newCap := t.Cap * 2
		if newCap == 0 {
			newCap = initialRowCapacity
		}
		t.Cap = newCap
	}
	row := newRow(t.NCols())
	copy(row.Values, values)
	t.Rows = append(t.Rows, row)
	t.NextID++
	return len(t.Rows) - 1, nil
}

// Vacuum rewrites the row list excluding tombstoned entries, returning
// the number of rows purged. next_id is not touched.
func (t *Table) Vacuum() int {
	kept := t.Rows[:0]
	purged := 0
	for _, r := range t.Rows {
		if r.Deleted {
			purged++
			continue
		}
		kept = append(kept, r)
	}
	t.Rows = kept
	if t.Cap < len(t.Rows) {
		t.Cap = len(t.Rows)
	}
	return purged
}
