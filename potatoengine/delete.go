package potatoengine

import (
	"fmt"

	"github.com/thattophatperson/potatorf/potatosql"
)

func (db *DB) execDelete(sql string) Result {
	stmt, err := potatosql.ParseDelete(sql)
	if err != nil {
		return errorResult("%v", err)
	}

	tbl, ok := db.store.FindTable(stmt.TableName)
	if !ok {
		return errorResult("Table '%s' not found", stmt.TableName)
	}

	deleted := 0
	for i := range tbl.Rows {
		row := &tbl.Rows[i]
		if row.Deleted {
			continue
		}
		if stmt.Where != nil && !stmt.Where.Eval(tbl.Schema, *row) {
			continue
		}
		row.Deleted = true
		deleted++
	}

	return okResult(fmt.Sprintf("%d row(s) deleted", deleted), deleted)
}
