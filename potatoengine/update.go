package potatoengine

import (
	"fmt"

	"github.com/thattophatperson/potatorf/potatosql"
	"github.com/thattophatperson/potatorf/potatovalue"
)

func (db *DB) execUpdate(sql string) Result {
	stmt, err := potatosql.ParseUpdate(sql)
	if err != nil {
		return errorResult("%v", err)
	}

	tbl, ok := db.store.FindTable(stmt.TableName)
	if !ok {
		return errorResult("Table '%s' not found", stmt.TableName)
	}

	updated := 0
	for i := range tbl.Rows {
		row := &tbl.Rows[i]
		if row.Deleted {
			continue
		}
		if stmt.Where != nil && !stmt.Where.Eval(tbl.Schema, *row) {
			continue
		}
		for _, set := range stmt.Sets {
			ci := tbl.Schema.IndexOf(set.Column)
			if ci < 0 {
				// Unknown SET target column: silently skipped.
				continue
			}
			if set.Value.IsNull {
				row.Values[ci] = potatovalue.Null()
				continue
			}
			row.Values[ci] = potatovalue.ParseLiteral(set.Value.Text, tbl.Schema.Columns[ci].Kind)
		}
		updated++
	}

	return okResult(fmt.Sprintf("%d row(s) updated", updated), updated)
}
