package potatoengine

import (
	"fmt"
	"strconv"

	"github.com/thattophatperson/potatorf/potatovalue"
)

func (db *DB) execShowTables() Result {
	cols := []ResultColumn{
		{Name: "Table", Kind: potatovalue.KindText},
		{Name: "Columns", Kind: potatovalue.KindInt},
		{Name: "Rows", Kind: potatovalue.KindInt},
	}

	var rows [][]string
	for _, tbl := range db.store.Tables {
		rows = append(rows, []string{
			tbl.Name,
			strconv.Itoa(tbl.NCols()),
			strconv.Itoa(tbl.LiveRowCount()),
		})
	}

	return rowsResult(cols, rows, fmt.Sprintf("%d table(s)", len(rows)))
}
