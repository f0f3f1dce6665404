package potatoengine

import (
	"fmt"

	"github.com/thattophatperson/potatorf/potatosql"
	"github.com/thattophatperson/potatorf/potatovalue"
)

func (db *DB) execDescribe(sql string) Result {
	stmt, err := potatosql.ParseDescribe(sql)
	if err != nil {
		return errorResult("%v", err)
	}

	tbl, ok := db.store.FindTable(stmt.TableName)
	if !ok {
		return errorResult("Table '%s' not found", stmt.TableName)
	}

	cols := []ResultColumn{
		{Name: "Column", Kind: potatovalue.KindText},
		{Name: "Type", Kind: potatovalue.KindText},
		{Name: "Nullable", Kind: potatovalue.KindText},
		{Name: "PK", Kind: potatovalue.KindText},
	}

	var rows [][]string
	for _, c := range tbl.Schema.Columns {
		rows = append(rows, []string{
			c.Name,
			potatovalue.TypeName(c.Kind),
			yesNo(c.Nullable),
			yesNo(c.PK),
		})
	}

	return rowsResult(cols, rows, fmt.Sprintf("Table '%s': %d column(s)", tbl.Name, tbl.NCols()))
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
