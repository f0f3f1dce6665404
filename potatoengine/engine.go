// Package potatoengine wires the SQL parsers, the row store, and the
// result-set builder together behind a single Open/Exec/Close surface.
package potatoengine

import (
	"strings"

	"github.com/thattophatperson/potatorf/potatosql"
	"github.com/thattophatperson/potatorf/potatostore"
)

// MaxStatementBytes caps the accepted length of a single db_exec input.
const MaxStatementBytes = 4096

// DB is a single open database handle. It is not reentrant: the caller
// must serialize all Exec calls against a given handle.
type DB struct {
	store *potatostore.Database
}

// Open loads the database at path, or creates a fresh empty one if path
// does not exist.
func Open(path string) (*DB, error) {
	store, err := potatostore.Open(path)
	if err != nil {
		return nil, err
	}
	return &DB{store: store}, nil
}

// Close performs a final full rewrite of the database to disk.
func (db *DB) Close() error {
	return db.store.Save()
}

// Name returns the database's name, derived from its file stem.
func (db *DB) Name() string { return db.store.Name }

// TableCount returns the number of tables currently defined.
func (db *DB) TableCount() int { return len(db.store.Tables) }

// Exec normalizes input (trim, drop a trailing ';', trim again) and
// routes it by leading keyword to one of the nine statement handlers.
// Mutating statements persist the database to disk before returning.
func (db *DB) Exec(input string) Result {
	sql := strings.TrimSpace(input)
	if len(sql) > MaxStatementBytes {
		sql = sql[:MaxStatementBytes]
	}
	sql = strings.TrimSuffix(sql, ";")
	sql = strings.TrimSpace(sql)
	if sql == "" {
		return okResult("Empty", 0)
	}

	var res Result
	mutating := true

	switch {
	case potatosql.HasPrefixFold(sql, "CREATE TABLE"):
		res = db.execCreateTable(sql)
	case potatosql.HasPrefixFold(sql, "DROP TABLE"):
		res = db.execDropTable(sql)
	case potatosql.HasPrefixFold(sql, "INSERT INTO"):
		res = db.execInsert(sql)
	case potatosql.HasPrefixFold(sql, "SELECT"):
		res = db.execSelect(sql)
		mutating = false
	case potatosql.HasPrefixFold(sql, "UPDATE"):
		res = db.execUpdate(sql)
	case potatosql.HasPrefixFold(sql, "DELETE FROM"):
		res = db.execDelete(sql)
	case potatosql.HasPrefixFold(sql, "SHOW TABLES"):
		res = db.execShowTables()
		mutating = false
	case potatosql.HasPrefixFold(sql, "DESCRIBE") || potatosql.HasPrefixFold(sql, "DESC "):
		res = db.execDescribe(sql)
		mutating = false
	case potatosql.HasPrefixFold(sql, "VACUUM"):
		res = db.execVacuum()
	default:
		return errorResult("Unknown command")
	}

	if mutating && res.OK {
		if err := db.store.Save(); err != nil {
			return errorResult("%v", err)
		}
	}
	return res
}
