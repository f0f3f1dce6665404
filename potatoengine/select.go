package potatoengine

import (
	"fmt"

	"github.com/thattophatperson/potatorf/potatosql"
)

func (db *DB) execSelect(sql string) Result {
	stmt, err := potatosql.ParseSelect(sql)
	if err != nil {
		return errorResult("%v", err)
	}

	tbl, ok := db.store.FindTable(stmt.TableName)
	if !ok {
		return errorResult("Table '%s' not found", stmt.TableName)
	}

	colNames := stmt.Columns
	if len(colNames) == 1 && colNames[0] == "*" {
		colNames = make([]string, tbl.NCols())
		for i, c := range tbl.Schema.Columns {
			colNames[i] = c.Name
		}
	}

	idxs := make([]int, len(colNames))
	cols := make([]ResultColumn, len(colNames))
	for i, name := range colNames {
		ci := tbl.Schema.IndexOf(name)
		if ci < 0 {
			return errorResult("Column '%s' not found", name)
		}
		idxs[i] = ci
		cols[i] = ResultColumn{Name: tbl.Schema.Columns[ci].Name, Kind: tbl.Schema.Columns[ci].Kind}
	}

	var rows [][]string
	for _, row := range tbl.Rows {
		if row.Deleted {
			continue
		}
		if stmt.Where != nil && !stmt.Where.Eval(tbl.Schema, row) {
			continue
		}
		cells := make([]string, len(idxs))
		for j, ci := range idxs {
			cells[j] = row.Values[ci].Format()
		}
		rows = append(rows, cells)
	}

	return rowsResult(cols, rows, fmt.Sprintf("%d row(s) returned", len(rows)))
}
