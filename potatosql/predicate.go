package potatosql

import (
	"fmt"
	"strings"

	"github.com/thattophatperson/potatorf/potatocol"
	"github.com/thattophatperson/potatorf/potatostore"
	"github.com/thattophatperson/potatorf/potatovalue"
)

// Predicate is a single WHERE condition: either a null-form check
// (`<col> IS [NOT] NULL`) or a comparison form (`<col> <op> <literal>`).
type Predicate struct {
	Column   string
	IsNull   bool // true for an IS [NOT] NULL form
	WantNull bool // for IsNull forms: true means "IS NULL", false means "IS NOT NULL"
	Op       string
	Literal  string
}

// nullForms are scanned longest-match first so "IS NOT NULL" is
// recognized before the shorter "IS NULL" suffix it contains.
var nullForms = []struct {
	suffix   string
	wantNull bool
}{
	{" IS NOT NULL", false},
	{" IS NULL", true},
}

// comparisonOps is tried in this order so two-character operators are
// matched before the single-character operators they would otherwise
// collide with as a prefix.
var comparisonOps = []string{"<=", ">=", "!=", "<>", "=", "<", ">"}

// ParsePredicate parses a WHERE clause body (the text following WHERE)
// into a single Predicate.
func ParsePredicate(clause string) (*Predicate, error) {
	clause = strings.TrimSpace(clause)

	upper := strings.ToUpper(clause)
	for _, nf := range nullForms {
		if idx := strings.Index(upper, nf.suffix); idx >= 0 {
			col := strings.TrimSpace(clause[:idx])
			if col == "" {
				return nil, fmt.Errorf("expected column name")
			}
			return &Predicate{Column: col, IsNull: true, WantNull: nf.wantNull}, nil
		}
	}

	for _, op := range comparisonOps {
		idx := strings.Index(clause, op)
		if idx < 0 {
			continue
		}
		col := strings.TrimSpace(clause[:idx])
		if col == "" {
			return nil, fmt.Errorf("expected column name")
		}
		lit := strings.TrimSpace(clause[idx+len(op):])
		normOp := op
		if normOp == "<>" {
			normOp = "!="
		}
		return &Predicate{Column: col, Op: normOp, Literal: StripQuotes(lit)}, nil
	}

	return nil, fmt.Errorf("malformed WHERE clause")
}

// Eval evaluates p against row using schema to locate and type the named
// column. An unknown column makes the predicate false.
func (p *Predicate) Eval(schema potatocol.Schema, row potatostore.Row) bool {
	idx := schema.IndexOf(p.Column)
	if idx < 0 {
		return false
	}
	val := row.Values[idx]

	if p.IsNull {
		return val.IsNull == p.WantNull
	}

	if val.IsNull {
		return false
	}
	col := schema.Columns[idx]
	lit := potatovalue.ParseLiteral(p.Literal, col.Kind)
	cmp := potatovalue.Compare(val, lit)

	switch p.Op {
	case "=":
		return cmp == 0
	case "!=":
		return cmp != 0
	case "<":
		return cmp < 0
	case ">":
		return cmp > 0
	case "<=":
		return cmp <= 0
	case ">=":
		return cmp >= 0
	default:
		return false
	}
}
