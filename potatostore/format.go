package potatostore

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/thattophatperson/potatorf/potatocol"
	"github.com/thattophatperson/potatorf/potatovalue"
)

// Magic is the file-format magic number: four bytes "BGMD" read as a
// little-endian uint32 (0x444D4742).
const Magic uint32 = 0x444D4742

// Version is the current on-disk format version.
const Version uint32 = 1

// ErrBadMagic is returned by Load when a file's magic number does not
// match Magic.
var ErrBadMagic = errors.New("potatostore: bad magic number (FORMAT)")

const createdLayout = "2006-01-02 15:04:05"

// Open loads the database at path, or returns a freshly-initialized
// empty database (named after path's filename stem, timestamped now) if
// path does not exist. Any other I/O or format error is returned.
func Open(path string) (*Database, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewDatabase(path), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	db, err := decode(bufio.NewReader(f))
	if err != nil {
		return nil, err
	}
	db.path = path
	return db, nil
}

// Save performs a full rewrite of the database to its path: open for
// overwrite, write header then every table (tombstones included), close.
func (d *Database) Save() error {
	f, err := os.Create(d.path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := encode(w, d); err != nil {
		return err
	}
	return w.Flush()
}

func writeString(w io.Writer, s string) error {
	if len(s) > 0xFFFF {
		s = s[:0xFFFF]
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func encode(w io.Writer, d *Database) error {
	if err := binary.Write(w, binary.LittleEndian, Magic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, Version); err != nil {
		return err
	}
	if err := writeString(w, d.Name); err != nil {
		return err
	}
	if err := writeString(w, d.Created.Format(createdLayout)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(d.Tables))); err != nil {
		return err
	}
	for _, t := range d.Tables {
		if err := encodeTable(w, t); err != nil {
			return err
		}
	}
	return nil
}

func encodeTable(w io.Writer, t *Table) error {
	if err := writeString(w, t.Name); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(t.Schema.Columns))); err != nil {
		return err
	}
	for _, c := range t.Schema.Columns {
		if err := writeString(w, c.Name); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint8(c.Kind)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, boolByte(c.Nullable)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, boolByte(c.PK)); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(t.Rows))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, t.NextID); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := encodeRow(w, row, t.Schema.Columns); err != nil {
			return err
		}
	}
	return nil
}

func encodeRow(w io.Writer, row Row, cols []potatocol.Column) error {
	if err := binary.Write(w, binary.LittleEndian, boolByte(row.Deleted)); err != nil {
		return err
	}
	for i, c := range cols {
		v := row.Values[i]
		if err := binary.Write(w, binary.LittleEndian, boolByte(v.IsNull)); err != nil {
			return err
		}
		if v.IsNull {
			continue
		}
		switch c.Kind {
		case potatovalue.KindInt:
			if err := binary.Write(w, binary.LittleEndian, v.Int); err != nil {
				return err
			}
		case potatovalue.KindFloat:
			if err := binary.Write(w, binary.LittleEndian, v.Float); err != nil {
				return err
			}
		case potatovalue.KindText:
			if err := writeString(w, v.Text); err != nil {
				return err
			}
		case potatovalue.KindBool:
			if err := binary.Write(w, binary.LittleEndian, boolByte(v.Bool)); err != nil {
				return err
			}
		}
	}
	return nil
}

func decode(r io.Reader) (*Database, error) {
	var magic, version uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, fmt.Errorf("potatostore: reading header: %w", err)
	}
	if magic != Magic {
		return nil, ErrBadMagic
	}
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("potatostore: reading header: %w", err)
	}

	name, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("potatostore: reading header: %w", err)
	}
	createdStr, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("potatostore: reading header: %w", err)
	}
	created, err := time.Parse(createdLayout, createdStr)
	if err != nil {
		created = time.Now()
	}

	var ntables uint32
	if err := binary.Read(r, binary.LittleEndian, &ntables); err != nil {
		return nil, fmt.Errorf("potatostore: reading header: %w", err)
	}

	db := &Database{Name: name, Created: created}
	for i := uint32(0); i < ntables; i++ {
		t, err := decodeTable(r)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				// Short read: a truncated tail stops cleanly, keeping
				// whatever tables were read so far.
				break
			}
			return nil, err
		}
		db.Tables = append(db.Tables, t)
	}
	return db, nil
}

// decodeTable reads one table record. Any short read truncates that
// table and stops cleanly: a partially-read column list or row yields
// whatever was read so far, discarding the incomplete tail element.
func decodeTable(r io.Reader) (*Table, error) {
	name, err := readString(r)
	if err != nil {
		return nil, err
	}

	var ncols uint32
	if err := binary.Read(r, binary.LittleEndian, &ncols); err != nil {
		return nil, io.ErrUnexpectedEOF
	}

	cols := make([]potatocol.Column, 0, ncols)
	for i := uint32(0); i < ncols; i++ {
		c, err := decodeColumn(r)
		if err != nil {
			break
		}
		cols = append(cols, c)
	}

	t := NewTable(name, cols)

	var nrows uint32
	if err := binary.Read(r, binary.LittleEndian, &nrows); err != nil {
		return t, nil
	}
	var nextID int32
	if err := binary.Read(r, binary.LittleEndian, &nextID); err != nil {
		return t, nil
	}
	t.NextID = nextID

	for i := uint32(0); i < nrows; i++ {
		row, err := decodeRow(r, cols)
		if err != nil {
			break
		}
		t.Rows = append(t.Rows, row)
	}
	if want := len(t.Rows) * 2; want > t.Cap {
		t.Cap = want
	}
	return t, nil
}

func decodeColumn(r io.Reader) (potatocol.Column, error) {
	name, err := readString(r)
	if err != nil {
		return potatocol.Column{}, err
	}
	var kind uint8
	if err := binary.Read(r, binary.LittleEndian, &kind); err != nil {
		return potatocol.Column{}, err
	}
	var nullable, pk uint8
	if err := binary.Read(r, binary.LittleEndian, &nullable); err != nil {
		return potatocol.Column{}, err
	}
	if err := binary.Read(r, binary.LittleEndian, &pk); err != nil {
		return potatocol.Column{}, err
	}
	return potatocol.Column{
		Name:     name,
		Kind:     potatovalue.Kind(kind),
		Nullable: nullable != 0,
		PK:       pk != 0,
	}, nil
}

func decodeRow(r io.Reader, cols []potatocol.Column) (Row, error) {
	var deleted uint8
	if err := binary.Read(r, binary.LittleEndian, &deleted); err != nil {
		return Row{}, err
	}
	row := newRow(len(cols))
	row.Deleted = deleted != 0
	for i, c := range cols {
		var isNull uint8
		if err := binary.Read(r, binary.LittleEndian, &isNull); err != nil {
			return Row{}, err
		}
		if isNull != 0 {
			row.Values[i] = potatovalue.Null()
			continue
		}
		switch c.Kind {
		case potatovalue.KindInt:
			var v int64
			if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
				return Row{}, err
			}
			row.Values[i] = potatovalue.NewInt(v)
		case potatovalue.KindFloat:
			var v float64
			if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
				return Row{}, err
			}
			row.Values[i] = potatovalue.NewFloat(v)
		case potatovalue.KindText:
			v, err := readString(r)
			if err != nil {
				return Row{}, err
			}
			row.Values[i] = potatovalue.NewText(v)
		case potatovalue.KindBool:
			var v uint8
			if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
				return Row{}, err
			}
			row.Values[i] = potatovalue.NewBool(v != 0)
		}
	}
	return row, nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
