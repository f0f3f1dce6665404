package potatostore

import "github.com/thattophatperson/potatorf/potatovalue"

// Row is a fixed-width record: one value slot per column of its table,
// plus a tombstone flag. Rows never move between tables; a tombstoned
// row keeps its slot until VACUUM physically removes it.
type Row struct {
	Values  []potatovalue.Value
	Deleted bool
}

func newRow(ncols int) Row {
	vals := make([]potatovalue.Value, ncols)
	for i := range vals {
		vals[i] = potatovalue.Null()
	}
	return Row{Values: vals}
}
