package potatosql

import (
	"fmt"
	"strings"

	"github.com/thattophatperson/potatorf/potatocol"
	"github.com/thattophatperson/potatorf/potatovalue"
)

// Literal is an unparsed value token from an INSERT or UPDATE statement:
// either the unquoted NULL keyword, or quote-stripped literal text ready
// to be parsed against a destination column's type.
type Literal struct {
	IsNull bool
	Text   string
}

func parseLiteralToken(tok string) Literal {
	if strings.EqualFold(tok, "NULL") {
		return Literal{IsNull: true}
	}
	return Literal{Text: StripQuotes(tok)}
}

// ColumnDef is one parsed column declaration from a CREATE TABLE
// statement.
type ColumnDef struct {
	Name     string
	Kind     potatovalue.Kind
	Nullable bool
	PK       bool
}

// CreateTableStmt is a parsed CREATE TABLE statement.
type CreateTableStmt struct {
	TableName string
	Columns   []ColumnDef
}

// ParseCreateTable parses `CREATE TABLE <name> ( <col_def> [, <col_def>]* )`.
func ParseCreateTable(sql string) (*CreateTableStmt, error) {
	rest := strings.TrimSpace(sql[len("CREATE TABLE"):])
	open := strings.IndexByte(rest, '(')
	if open < 0 {
		return nil, fmt.Errorf("expected '('")
	}
	tableName := strings.TrimSpace(rest[:open])
	if tableName == "" {
		return nil, fmt.Errorf("expected table name")
	}
	close := strings.LastIndexByte(rest, ')')
	if close < 0 || close < open {
		return nil, fmt.Errorf("missing ')'")
	}
	body := rest[open+1 : close]

	var cols []ColumnDef
	for _, frag := range SplitTopLevel(body) {
		frag = strings.TrimSpace(frag)
		if frag == "" {
			continue
		}
		nameTok, remainder := FirstToken(frag)
		typeTok, _ := FirstToken(remainder)
		kind, ok := potatovalue.ParseKind(typeTok)
		if !ok {
			return nil, fmt.Errorf("Unknown type '%s'", typeTok)
		}
		col := ColumnDef{
			Name:     nameTok,
			Kind:     kind,
			Nullable: !ContainsFold(frag, "NOT NULL"),
			PK:       ContainsFold(frag, "PRIMARY KEY"),
		}
		cols = append(cols, col)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("no columns defined")
	}
	if len(cols) > potatocol.MaxColumns {
		return nil, fmt.Errorf("too many columns (max %d)", potatocol.MaxColumns)
	}
	return &CreateTableStmt{TableName: tableName, Columns: cols}, nil
}

// DropTableStmt is a parsed DROP TABLE statement.
type DropTableStmt struct {
	TableName string
}

// ParseDropTable parses `DROP TABLE <name>`.
func ParseDropTable(sql string) (*DropTableStmt, error) {
	name := strings.TrimSpace(sql[len("DROP TABLE"):])
	if name == "" {
		return nil, fmt.Errorf("expected table name")
	}
	return &DropTableStmt{TableName: name}, nil
}

// InsertStmt is a parsed INSERT INTO statement. Columns is nil when the
// column list was omitted (positional insert over all declared columns).
type InsertStmt struct {
	TableName string
	Columns   []string
	Values    []Literal
}

// ParseInsert parses `INSERT INTO <table> [( <col_list> )] VALUES ( <value_list> )`.
func ParseInsert(sql string) (*InsertStmt, error) {
	rest := strings.TrimSpace(sql[len("INSERT INTO"):])

	tableName, rest := FirstToken(rest)
	if tableName == "" {
		return nil, fmt.Errorf("expected table name")
	}

	var columns []string
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "(") {
		close := strings.IndexByte(rest, ')')
		if close < 0 {
			return nil, fmt.Errorf("missing ')'")
		}
		for _, c := range SplitTopLevel(rest[1:close]) {
			c = strings.TrimSpace(c)
			if c != "" {
				columns = append(columns, c)
			}
		}
		rest = strings.TrimSpace(rest[close+1:])
	}

	idx := IndexFold(rest, "VALUES")
	if idx < 0 {
		return nil, fmt.Errorf("missing VALUES")
	}
	rest = strings.TrimSpace(rest[idx+len("VALUES"):])
	if !strings.HasPrefix(rest, "(") {
		return nil, fmt.Errorf("expected '('")
	}
	close := strings.LastIndexByte(rest, ')')
	if close < 0 {
		return nil, fmt.Errorf("missing ')'")
	}
	var values []Literal
	for _, tok := range SplitTopLevel(rest[1:close]) {
		values = append(values, parseLiteralToken(strings.TrimSpace(tok)))
	}

	return &InsertStmt{TableName: tableName, Columns: columns, Values: values}, nil
}

// SelectStmt is a parsed SELECT statement. Columns is ["*"] for
// `SELECT *`.
type SelectStmt struct {
	TableName string
	Columns   []string
	Where     *Predicate
}

// ParseSelect parses `SELECT <col_list|*> FROM <table> [WHERE <predicate>]`.
func ParseSelect(sql string) (*SelectStmt, error) {
	rest := strings.TrimSpace(sql[len("SELECT"):])

	idx := IndexFold(rest, "FROM")
	if idx < 0 {
		return nil, fmt.Errorf("missing FROM")
	}
	colList := strings.TrimSpace(rest[:idx])
	rest = strings.TrimSpace(rest[idx+len("FROM"):])

	tableName, rest := FirstToken(rest)
	if tableName == "" {
		return nil, fmt.Errorf("expected table name")
	}

	var where *Predicate
	rest = strings.TrimSpace(rest)
	widx := IndexFold(rest, "WHERE")
	if widx >= 0 {
		p, err := ParsePredicate(strings.TrimSpace(rest[widx+len("WHERE"):]))
		if err != nil {
			return nil, err
		}
		where = p
	}

	var cols []string
	if colList == "*" {
		cols = []string{"*"}
	} else {
		for _, c := range SplitTopLevel(colList) {
			c = strings.TrimSpace(c)
			if c != "" {
				cols = append(cols, c)
			}
		}
	}

	return &SelectStmt{TableName: tableName, Columns: cols, Where: where}, nil
}

// SetClause is one `<col> = <value>` assignment from an UPDATE statement.
type SetClause struct {
	Column string
	Value  Literal
}

// UpdateStmt is a parsed UPDATE statement.
type UpdateStmt struct {
	TableName string
	Sets      []SetClause
	Where     *Predicate
}

// ParseUpdate parses `UPDATE <table> SET <col>=<value>[, ...] [WHERE <predicate>]`.
func ParseUpdate(sql string) (*UpdateStmt, error) {
	rest := strings.TrimSpace(sql[len("UPDATE"):])

	tableName, rest := FirstToken(rest)
	if tableName == "" {
		return nil, fmt.Errorf("expected table name")
	}
	rest = strings.TrimSpace(rest)
	if !HasPrefixFold(rest, "SET") {
		return nil, fmt.Errorf("expected SET")
	}
	rest = strings.TrimSpace(rest[len("SET"):])

	setBody := rest
	var where *Predicate
	widx := IndexFold(rest, "WHERE")
	if widx >= 0 {
		setBody = strings.TrimSpace(rest[:widx])
		p, err := ParsePredicate(strings.TrimSpace(rest[widx+len("WHERE"):]))
		if err != nil {
			return nil, err
		}
		where = p
	}

	var sets []SetClause
	for _, frag := range SplitTopLevel(setBody) {
		frag = strings.TrimSpace(frag)
		if frag == "" {
			continue
		}
		eq := strings.IndexByte(frag, '=')
		if eq < 0 {
			return nil, fmt.Errorf("bad SET clause")
		}
		col := strings.TrimSpace(frag[:eq])
		val := strings.TrimSpace(frag[eq+1:])
		sets = append(sets, SetClause{Column: col, Value: parseLiteralToken(val)})
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("bad SET clause")
	}

	return &UpdateStmt{TableName: tableName, Sets: sets, Where: where}, nil
}

// DeleteStmt is a parsed DELETE FROM statement.
type DeleteStmt struct {
	TableName string
	Where     *Predicate
}

// ParseDelete parses `DELETE FROM <table> [WHERE <predicate>]`.
func ParseDelete(sql string) (*DeleteStmt, error) {
	rest := strings.TrimSpace(sql[len("DELETE FROM"):])

	tableName, rest := FirstToken(rest)
	if tableName == "" {
		return nil, fmt.Errorf("expected table name")
	}

	var where *Predicate
	rest = strings.TrimSpace(rest)
	widx := IndexFold(rest, "WHERE")
	if widx >= 0 {
		p, err := ParsePredicate(strings.TrimSpace(rest[widx+len("WHERE"):]))
		if err != nil {
			return nil, err
		}
		where = p
	}

	return &DeleteStmt{TableName: tableName, Where: where}, nil
}

// DescribeStmt is a parsed DESCRIBE/DESC statement.
type DescribeStmt struct {
	TableName string
}

// ParseDescribe parses `DESCRIBE <table>` or `DESC <table>`.
func ParseDescribe(sql string) (*DescribeStmt, error) {
	_, rest := FirstToken(sql)
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return nil, fmt.Errorf("expected table name")
	}
	return &DescribeStmt{TableName: rest}, nil
}
