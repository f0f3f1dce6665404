package potatostore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thattophatperson/potatorf/potatocol"
	"github.com/thattophatperson/potatorf/potatovalue"
)

func usersColumns() []potatocol.Column {
	return []potatocol.Column{
		{Name: "id", Kind: potatovalue.KindInt, PK: true},
		{Name: "name", Kind: potatovalue.KindText},
		{Name: "age", Kind: potatovalue.KindInt, Nullable: true},
		{Name: "active", Kind: potatovalue.KindBool, Nullable: true},
	}
}

func TestOpenNonexistentYieldsFreshDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fresh.dbm")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if db.Name != "fresh" {
		t.Errorf("Name = %q, want %q", db.Name, "fresh")
	}
	if len(db.Tables) != 0 {
		t.Errorf("expected no tables, got %d", len(db.Tables))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "round.dbm")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	db.path = path

	tbl, err := db.CreateTable("users", usersColumns())
	if err != nil {
		t.Fatalf("CreateTable() error = %v", err)
	}
	if _, err := tbl.Insert([]potatovalue.Value{
		potatovalue.NewInt(1), potatovalue.NewText("Alice"),
		potatovalue.NewInt(30), potatovalue.NewBool(true),
	}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if _, err := tbl.Insert([]potatovalue.Value{
		potatovalue.NewInt(2), potatovalue.NewText("Bob"),
		potatovalue.Null(), potatovalue.Null(),
	}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	tbl.Rows[1].Deleted = true // tombstone Bob

	if err := db.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Open(path)
	if err != nil {
		t.Fatalf("reopen Open() error = %v", err)
	}

	if loaded.Name != db.Name {
		t.Errorf("Name = %q, want %q", loaded.Name, db.Name)
	}
	lt, ok := loaded.FindTable("users")
	if !ok {
		t.Fatalf("table 'users' missing after reload")
	}
	if lt.NCols() != 4 {
		t.Errorf("NCols() = %d, want 4", lt.NCols())
	}
	if len(lt.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2 (tombstones persist until VACUUM)", len(lt.Rows))
	}
	if lt.LiveRowCount() != 1 {
		t.Errorf("LiveRowCount() = %d, want 1", lt.LiveRowCount())
	}
	if !lt.Rows[1].Deleted {
		t.Errorf("expected row 1 to remain tombstoned across reload")
	}
	if lt.NextID != 2 {
		t.Errorf("NextID = %d, want 2", lt.NextID)
	}
	if lt.Rows[0].Values[1].Text != "Alice" {
		t.Errorf("Rows[0].Values[1].Text = %q, want Alice", lt.Rows[0].Values[1].Text)
	}
	if !lt.Rows[1].Values[2].IsNull {
		t.Errorf("expected Bob's age to be NULL after round-trip")
	}
}

func TestBadMagicRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.dbm")
	if err := os.WriteFile(path, []byte{0, 1, 2, 3, 4, 5, 6, 7}, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := Open(path); err == nil {
		t.Errorf("expected error opening file with bad magic")
	}
}

func TestVacuumIdempotent(t *testing.T) {
	tbl := NewTable("t", []potatocol.Column{{Name: "x", Kind: potatovalue.KindInt}})
	tbl.Insert([]potatovalue.Value{potatovalue.NewInt(1)})
	tbl.Insert([]potatovalue.Value{potatovalue.NewInt(2)})
	tbl.Rows[0].Deleted = true

	first := tbl.Vacuum()
	if first != 1 {
		t.Fatalf("first Vacuum() purged = %d, want 1", first)
	}
	if len(tbl.Rows) != 1 {
		t.Fatalf("len(Rows) after vacuum = %d, want 1", len(tbl.Rows))
	}

	second := tbl.Vacuum()
	if second != 0 {
		t.Errorf("second Vacuum() purged = %d, want 0", second)
	}
	if len(tbl.Rows) != 1 {
		t.Errorf("len(Rows) after idempotent vacuum = %d, want 1", len(tbl.Rows))
	}
}

func TestCreateTableDuplicateNameCaseInsensitive(t *testing.T) {
	db := NewDatabase("x.dbm")
	if _, err := db.CreateTable("Users", usersColumns()); err != nil {
		t.Fatalf("CreateTable() error = %v", err)
	}
	if _, err := db.CreateTable("users", usersColumns()); err == nil {
		t.Errorf("expected error creating duplicate table name (case-insensitive)")
	}
}

func TestDropTableShiftsRemaining(t *testing.T) {
	db := NewDatabase("x.dbm")
	db.CreateTable("a", usersColumns())
	db.CreateTable("b", usersColumns())
	db.CreateTable("c", usersColumns())

	if err := db.DropTable("b"); err != nil {
		t.Fatalf("DropTable() error = %v", err)
	}
	if len(db.Tables) != 2 {
		t.Fatalf("len(Tables) = %d, want 2", len(db.Tables))
	}
	if db.Tables[0].Name != "a" || db.Tables[1].Name != "c" {
		t.Errorf("Tables = [%s, %s], want [a, c]", db.Tables[0].Name, db.Tables[1].Name)
	}
}

func TestInsertGrowsCapacityByDoubling(t *testing.T) {
	tbl := NewTable("t", []potatocol.Column{{Name: "x", Kind: potatovalue.KindInt}})
	for i := 0; i < initialRowCapacity+1; i++ {
		if _, err := tbl.Insert([]potatovalue.Value{potatovalue.NewInt(int64(i))}); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}
	if tbl.Cap <= initialRowCapacity {
		t.Errorf("Cap = %d, want > %d after overflow", tbl.Cap, initialRowCapacity)
	}
}
