package potatoengine

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.dbm")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return db
}

func mustExec(t *testing.T, db *DB, sql string) Result {
	t.Helper()
	res := db.Exec(sql)
	if !res.OK {
		t.Fatalf("Exec(%q) failed: %s", sql, res.Message)
	}
	return res
}

// S1
func TestScenarioCreateTable(t *testing.T) {
	db := openTestDB(t)
	res := mustExec(t, db, "CREATE TABLE users (id INT PRIMARY KEY, name TEXT NOT NULL, age INT, active BOOL);")
	if res.Message != "Table 'users' created (4 cols)" {
		t.Errorf("Message = %q", res.Message)
	}
}

// S2
func TestScenarioInsertAndSelectWithComparison(t *testing.T) {
	db := openTestDB(t)
	mustExec(t, db, "CREATE TABLE users (id INT PRIMARY KEY, name TEXT NOT NULL, age INT, active BOOL);")
	mustExec(t, db, "INSERT INTO users VALUES (1, 'Alice', 30, true);")

	res := mustExec(t, db, "SELECT name, age FROM users WHERE age > 25;")
	if res.Message != "1 row(s) returned" {
		t.Errorf("Message = %q", res.Message)
	}
	if len(res.Rows) != 1 || res.Rows[0][0] != "Alice" || res.Rows[0][1] != "30" {
		t.Errorf("Rows = %v", res.Rows)
	}
}

// S3
func TestScenarioInsertPartialColumnsSelectIsNull(t *testing.T) {
	db := openTestDB(t)
	mustExec(t, db, "CREATE TABLE users (id INT PRIMARY KEY, name TEXT NOT NULL, age INT, active BOOL);")
	mustExec(t, db, "INSERT INTO users VALUES (1, 'Alice', 30, true);")
	mustExec(t, db, "INSERT INTO users (id, name) VALUES (2, 'Bob');")

	res := mustExec(t, db, "SELECT * FROM users WHERE age IS NULL;")
	if len(res.Rows) != 1 {
		t.Fatalf("len(Rows) = %d, want 1", len(res.Rows))
	}
	row := res.Rows[0]
	if row[0] != "2" || row[1] != "Bob" || row[2] != "NULL" || row[3] != "NULL" {
		t.Errorf("Rows[0] = %v", row)
	}
}

// S4
func TestScenarioUpdateThenSelect(t *testing.T) {
	db := openTestDB(t)
	mustExec(t, db, "CREATE TABLE users (id INT PRIMARY KEY, name TEXT NOT NULL, age INT, active BOOL);")
	mustExec(t, db, "INSERT INTO users VALUES (1, 'Alice', 30, true);")
	mustExec(t, db, "INSERT INTO users (id, name) VALUES (2, 'Bob');")

	mustExec(t, db, "UPDATE users SET active=false WHERE name='Alice';")
	res := mustExec(t, db, "SELECT active FROM users WHERE id=1;")
	if len(res.Rows) != 1 || res.Rows[0][0] != "false" {
		t.Errorf("Rows = %v", res.Rows)
	}
}

// S5
func TestScenarioDeleteThenShowTables(t *testing.T) {
	db := openTestDB(t)
	mustExec(t, db, "CREATE TABLE users (id INT PRIMARY KEY, name TEXT NOT NULL, age INT, active BOOL);")
	mustExec(t, db, "INSERT INTO users VALUES (1, 'Alice', 30, true);")
	mustExec(t, db, "INSERT INTO users (id, name) VALUES (2, 'Bob');")
	mustExec(t, db, "UPDATE users SET active=false WHERE name='Alice';")

	del := mustExec(t, db, "DELETE FROM users WHERE age IS NULL;")
	if del.Message != "1 row(s) deleted" {
		t.Errorf("Message = %q", del.Message)
	}

	show := mustExec(t, db, "SHOW TABLES;")
	if len(show.Rows) != 1 || show.Rows[0][0] != "users" || show.Rows[0][1] != "4" || show.Rows[0][2] != "1" {
		t.Errorf("Rows = %v", show.Rows)
	}
}

// S6
func TestScenarioVacuumThenShowTablesUnchanged(t *testing.T) {
	db := openTestDB(t)
	mustExec(t, db, "CREATE TABLE users (id INT PRIMARY KEY, name TEXT NOT NULL, age INT, active BOOL);")
	mustExec(t, db, "INSERT INTO users VALUES (1, 'Alice', 30, true);")
	mustExec(t, db, "INSERT INTO users (id, name) VALUES (2, 'Bob');")
	mustExec(t, db, "DELETE FROM users WHERE age IS NULL;")

	vac := mustExec(t, db, "VACUUM;")
	if vac.Message != "VACUUM: purged 1 row(s)" {
		t.Errorf("Message = %q", vac.Message)
	}

	show := mustExec(t, db, "SHOW TABLES;")
	if len(show.Rows) != 1 || show.Rows[0][1] != "4" || show.Rows[0][2] != "1" {
		t.Errorf("Rows = %v", show.Rows)
	}
}

// S7
func TestScenarioSelectMissingTable(t *testing.T) {
	db := openTestDB(t)
	res := db.Exec("SELECT * FROM missing;")
	if res.OK {
		t.Fatalf("expected failure selecting from missing table")
	}
	if res.Message != "Table 'missing' not found" {
		t.Errorf("Message = %q", res.Message)
	}
}

func TestEmptyInputIsNoOp(t *testing.T) {
	db := openTestDB(t)
	res := db.Exec("   ;  ")
	if !res.OK {
		t.Errorf("expected empty input to succeed as a no-op")
	}
}

func TestUnknownCommand(t *testing.T) {
	db := openTestDB(t)
	res := db.Exec("FROB everything")
	if res.OK || res.Message != "Unknown command" {
		t.Errorf("Result = %+v", res)
	}
}

func TestUpdateUnknownSetColumnSilentlyIgnored(t *testing.T) {
	db := openTestDB(t)
	mustExec(t, db, "CREATE TABLE t (a INT);")
	mustExec(t, db, "INSERT INTO t VALUES (1);")
	res := mustExec(t, db, "UPDATE t SET nosuch=5, a=9;")
	if res.Message != "1 row(s) updated" {
		t.Errorf("Message = %q", res.Message)
	}
	sel := mustExec(t, db, "SELECT a FROM t;")
	if sel.Rows[0][0] != "9" {
		t.Errorf("a = %v, want 9", sel.Rows[0][0])
	}
}

func TestTypeCoercionAtWriteStringIntoIntColumn(t *testing.T) {
	db := openTestDB(t)
	mustExec(t, db, "CREATE TABLE t (a INT);")
	mustExec(t, db, "INSERT INTO t VALUES ('not-a-number');")
	res := mustExec(t, db, "SELECT a FROM t;")
	if res.Rows[0][0] != "0" {
		t.Errorf("a = %v, want 0 (ill-formed int literal)", res.Rows[0][0])
	}
}

func TestPersistenceRoundTripAcrossClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.dbm")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	mustExec(t, db, "CREATE TABLE t (a INT);")
	mustExec(t, db, "INSERT INTO t VALUES (42);")
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen Open() error = %v", err)
	}
	res := mustExec(t, reopened, "SELECT a FROM t;")
	if len(res.Rows) != 1 || res.Rows[0][0] != "42" {
		t.Errorf("Rows = %v", res.Rows)
	}
}

func TestTombstoneInvisibleToSelect(t *testing.T) {
	db := openTestDB(t)
	mustExec(t, db, "CREATE TABLE t (a INT);")
	mustExec(t, db, "INSERT INTO t VALUES (1);")
	mustExec(t, db, "INSERT INTO t VALUES (2);")
	mustExec(t, db, "DELETE FROM t WHERE a=1;")

	res := mustExec(t, db, "SELECT a FROM t;")
	if len(res.Rows) != 1 || res.Rows[0][0] != "2" {
		t.Errorf("Rows = %v, want only a=2", res.Rows)
	}
}
