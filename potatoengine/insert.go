package potatoengine

import (
	"github.com/thattophatperson/potatorf/potatosql"
	"github.com/thattophatperson/potatorf/potatovalue"
)

func (db *DB) execInsert(sql string) Result {
	stmt, err := potatosql.ParseInsert(sql)
	if err != nil {
		return errorResult("%v", err)
	}

	tbl, ok := db.store.FindTable(stmt.TableName)
	if !ok {
		return errorResult("Table '%s' not found", stmt.TableName)
	}

	// Resolve the destination column index for each value, in order:
	// either the explicit column list, or all declared columns
	// positionally.
	var order []int
	if stmt.Columns != nil {
		order = make([]int, 0, len(stmt.Columns))
		for _, name := range stmt.Columns {
			idx := tbl.Schema.IndexOf(name)
			if idx < 0 {
				return errorResult("Column '%s' not found", name)
			}
			order = append(order, idx)
		}
	} else {
		order = make([]int, tbl.NCols())
		for i := range order {
			order[i] = i
		}
	}

	values := make([]potatovalue.Value, tbl.NCols())
	for i := range values {
		values[i] = potatovalue.Null()
	}
	for i, lit := range stmt.Values {
		if i >= len(order) {
			break
		}
		ci := order[i]
		if lit.IsNull {
			values[ci] = potatovalue.Null()
			continue
		}
		values[ci] = potatovalue.ParseLiteral(lit.Text, tbl.Schema.Columns[ci].Kind)
	}

	if _, err := tbl.Insert(values); err != nil {
		return errorResult("%v", err)
	}

	return okResult("1 row inserted", 1)
}
