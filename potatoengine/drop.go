package potatoengine

import (
	"fmt"

	"github.com/thattophatperson/potatorf/potatosql"
)

func (db *DB) execDropTable(sql string) Result {
	stmt, err := potatosql.ParseDropTable(sql)
	if err != nil {
		return errorResult("%v", err)
	}

	if err := db.store.DropTable(stmt.TableName); err != nil {
		return errorResult("Table '%s' not found", stmt.TableName)
	}

	return okResult(fmt.Sprintf("Table '%s' dropped", stmt.TableName), 0)
}
