// Package cliutil provides small terminal-output helpers shared by the
// lxpctl subcommands: column-aligned tables and ANSI color wrapping.
// Adapted from the teacher's pkg/cli table writer, trimmed to plain
// fixed-width alignment — lxpctl's rows (register names, decoded values)
// are short enough that word-wrapping within a cell is never needed.
package cliutil

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Table produces column-aligned output. Headers and a dash divider are
// written lazily on Flush, so an empty table produces no output.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// Row appends a row to the table.
func (t *Table) Row(values ...string) {
	t.rows = append(t.rows, values)
}

// Flush writes all buffered output to stdout.
func (t *Table) Flush() {
	if len(t.rows) == 0 {
		return
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, v := range row {
			if i < len(widths) && len(v) > widths[i] {
				widths[i] = len(v)
			}
		}
	}

	t.printRow(t.headers, widths)
	dividers := make([]string, len(t.headers))
	for i := range t.headers {
		dividers[i] = strings.Repeat("-", widths[i])
	}
	t.printRow(dividers, widths)
	for _, row := range t.rows {
		t.printRow(row, widths)
	}
}

func (t *Table) printRow(row []string, widths []int) {
	parts := make([]string, len(widths))
	for i := range widths {
		val := ""
		if i < len(row) {
			val = row[i]
		}
		pad := widths[i] - len(val)
		if pad < 0 {
			pad = 0
		}
		parts[i] = val + strings.Repeat(" ", pad)
	}
	fmt.Fprintln(os.Stdout, strings.TrimRight(strings.Join(parts, "  "), " "))
}

// isTerminal reports whether stdout is an interactive terminal; colorizing
// helpers use this to skip ANSI codes when output is piped or redirected.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
