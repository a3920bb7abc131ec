package model

import "strings"

// Grid is the raw shape of one spreadsheet sheet: ordered rows of ordered
// cells. Rows may be ragged; numeric and empty source cells are already
// stringified ("" for empty) at the source boundary.
type Grid [][]string

// SheetSet maps sheet title to its grid. It is produced by a sheets.Source
// and treated as immutable for the duration of one pipeline run.
type SheetSet map[string]Grid

// Cell returns the cell at (row, col), or "" when the grid is ragged and
// the position does not exist.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// IsBlankRow reports whether every cell of the row is empty or the row is
// absent. Trailing spreadsheet padding shows up as such rows.
func (g Grid) IsBlankRow(row int) bool {
	if row < 0 || row >= len(g) {
		return true
	}
	for _, c := range g[row] {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// NormalizedRecord is one logical row after header/label resolution: field
// name to string value. Collisions resolve last-write-wins.
type NormalizedRecord map[string]string
