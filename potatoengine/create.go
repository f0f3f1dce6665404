package potatoengine

import (
	"fmt"

	"github.com/thattophatperson/potatorf/potatocol"
	"github.com/thattophatperson/potatorf/potatosql"
)

func (db *DB) execCreateTable(sql string) Result {
	stmt, err := potatosql.ParseCreateTable(sql)
	if err != nil {
		return errorResult("%v", err)
	}

	cols := make([]potatocol.Column, len(stmt.Columns))
	for i, c := range stmt.Columns {
		cols[i] = potatocol.Column{
			Name:     c.Name,
			Kind:     c.Kind,
			Nullable: c.Nullable,
			PK:       c.PK,
		}
	}

	if _, err := db.store.CreateTable(stmt.TableName, cols); err != nil {
		if _, exists := db.store.FindTable(stmt.TableName); exists {
			return errorResult("Table '%s' exists", stmt.TableName)
		}
		return errorResult("%v", err)
	}

	return okResult(fmt.Sprintf("Table '%s' created (%d cols)", stmt.TableName, len(cols)), 0)
}
