package potatostore

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/thattophatperson/potatorf/potatocol"
)

// MaxTables is the maximum number of tables a database may hold.
const MaxTables = 64

// Database is a header (name, creation timestamp) plus an ordered list of
// tables. It owns its tables; each table owns its row buffer.
type Database struct {
	Name    string
	Created time.Time
	Tables  []*Table

	path string
}

// NewDatabase constructs a freshly-initialized, empty database named
// after path's filename stem, with Created set to now.
func NewDatabase(path string) *Database {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return &Database{
		Name:    base,
		Created: time.Now(),
		path:    path,
	}
}

// Path returns the filesystem path this database persists to.
func (d *Database) Path() string { return d.path }

// FindTable returns the named table (case-insensitive) and true, or nil
// and false.
func (d *Database) FindTable(name string) (*Table, bool) {
	for _, t := range d.Tables {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return nil, false
}

// CreateTable appends a new, empty table. Returns an error if a table by
// that name (case-insensitive) already exists, or capacity is exhausted.
func (d *Database) CreateTable(name string, cols []potatocol.Column) (*Table, error) {
	if len(d.Tables) >= MaxTables {
		return nil, fmt.Errorf("max tables reached")
	}
	if _, exists := d.FindTable(name); exists {
		return nil, fmt.Errorf("table '%s' exists", name)
	}
	t := NewTable(name, cols)
	d.Tables = append(d.Tables, t)
	return t, nil
}

// DropTable removes the named table, shifting the remaining tables down
// to keep the list contiguous.
func (d *Database) DropTable(name string) error {
	for i, t := range d.Tables {
		if strings.EqualFold(t.Name, name) {
			d.Tables = append(d.Tables[:i], d.Tables[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("table '%s' not found", name)
}

// Vacuum compacts every table, returning the total number of rows purged
// across all tables.
func (d *Database) Vacuum() int {
	total := 0
	for _, t := range d.Tables {
		total += t.Vacuum()
	}
	return total
}
