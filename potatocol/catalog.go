// Package potatocol holds column metadata: the schema-level description
// of a table's columns, independent of the rows stored for it.
package potatocol

import (
	"strings"

	"github.com/thattophatperson/potatorf/potatovalue"
)

// MaxColumns is the maximum number of columns a table may declare.
const MaxColumns = 32

// MaxNameBytes is the nominal maximum length, in bytes, of a table or
// column name. Names are not checked against it: longer names are
// accepted and stored unchanged.
const MaxNameBytes = 63

// Column is a single column's schema metadata: name, type, nullability,
// and whether it is flagged as (an unenforced) primary key.
type Column struct {
	Name     string
	Kind     potatovalue.Kind
	Nullable bool
	PK       bool
}

// Schema is the ordered column list of a table.
type Schema struct {
	Columns []Column
}

// IndexOf returns the position of the named column (case-insensitive),
// or -1 if it is not present.
func (s Schema) IndexOf(name string) int {
	for i, c := range s.Columns {
		if strings.EqualFold(c.Name, name) {
			return i
		}
	}
	return -1
}

// Column returns the named column and true, or a zero Column and false.
func (s Schema) Column(name string) (Column, bool) {
	i := s.IndexOf(name)
	if i < 0 {
		return Column{}, false
	}
	return s.Columns[i], true
}

// HasColumn reports whether name exists (case-insensitive).
func (s Schema) HasColumn(name string) bool {
	return s.IndexOf(name) >= 0
}
