package potatoengine

import (
	"fmt"

	"github.com/thattophatperson/potatorf/potatovalue"
)

// ResultColumn names one projected column in a Result's header.
type ResultColumn struct {
	Name string
	Kind potatovalue.Kind
}

// Result is the uniform return value of Exec: an ok flag, a
// human-readable message, an affected-row count, and — for statements
// that return rows — a header plus a matrix of already-stringified
// cells. On error, OK is false and Columns/Rows are empty.
type Result struct {
	OK       bool
	Message  string
	Affected int
	Columns  []ResultColumn
	Rows     [][]string
}

func errorResult(format string, args ...any) Result {
	return Result{OK: false, Message: fmt.Sprintf(format, args...)}
}

func okResult(message string, affected int) Result {
	return Result{OK: true, Message: message, Affected: affected}
}

func rowsResult(cols []ResultColumn, rows [][]string, message string) Result {
	return Result{OK: true, Message: message, Affected: len(rows), Columns: cols, Rows: rows}
}
