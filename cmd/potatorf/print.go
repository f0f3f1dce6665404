package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/thattophatperson/potatorf/potatoengine"
)

// printResult renders a Result the way potatorf's REPL always has: a
// boxed ASCII table for row-bearing results, a plain "OK: <msg>" line
// for row-less DDL/DML, and "ERROR: <msg>" to stderr on failure.
func printResult(res potatoengine.Result) {
	if !res.OK {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", res.Message)
		return
	}
	if len(res.Columns) == 0 {
		fmt.Printf("OK: %s\n", res.Message)
		return
	}

	widths := make([]int, len(res.Columns))
	for j, c := range res.Columns {
		widths[j] = len(c.Name)
	}
	for _, row := range res.Rows {
		for j, cell := range row {
			if len(cell) > widths[j] {
				widths[j] = len(cell)
			}
		}
	}

	border := boxBorder(widths)
	fmt.Println(border)
	fmt.Println(boxRow(headerCells(res.Columns), widths))
	fmt.Println(border)
	for _, row := range res.Rows {
		fmt.Println(boxRow(row, widths))
	}
	fmt.Println(border)
	fmt.Println(res.Message)
}

func headerCells(cols []potatoengine.ResultColumn) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

func boxBorder(widths []int) string {
	var b strings.Builder
	b.WriteByte('+')
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteByte('+')
	}
	return b.String()
}

func boxRow(cells []string, widths []int) string {
	var b strings.Builder
	b.WriteByte('|')
	for j, w := range widths {
		fmt.Fprintf(&b, " %-*s |", w, cells[j])
	}
	return b.String()
}
