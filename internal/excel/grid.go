// Package excel turns legacy Excel (.xls) exports into a plain cell grid and
// locates the report structure inside it: the header row and the check/product
// groups that follow. It assumes nothing about column meaning; callers read
// cells by position.
package excel

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
)

// Extension is the only accepted upload extension. The exports this service
// ingests come from a legacy system that only emits BIFF workbooks.
const Extension = ".xls"

// ValidExtension reports whether the filename carries the accepted
// extension, case-insensitively.
func ValidExtension(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), Extension)
}

// Grid is a rectangular view of one worksheet: rows of cell texts in sheet
// order. Rows may have differing lengths; use Cell for bounds-safe access.
type Grid [][]string

// Rows returns the number of rows in the grid.
func (g Grid) Rows() int {
	return len(g)
}

// Cell returns the text of the cell at (row, col), or "" when the position
// lies outside the grid. Missing cells and empty cells are indistinguishable.
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

// Decode parses workbook bytes into a Grid built from the first worksheet.
// Row order and column positions are preserved; rows missing from the BIFF
// stream become empty rows so indices still match the sheet.
func Decode(data []byte) (Grid, error) {
	grid, err := decodeWorkbook(data)
	if err != nil {
		return nil, err
	}
	return grid, nil
}

// decodeWorkbook isolates the third-party decoder. It panics on some
// malformed inputs, so recover and report those as decode errors.
func decodeWorkbook(data []byte) (grid Grid, err error) {
	defer func() {
		if r := recover(); r != nil {
			grid = nil
			err = fmt.Errorf("decode workbook: %v", r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, errors.New("workbook contains no sheets")
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errors.New("workbook sheet 0 is unreadable")
	}

	grid = make(Grid, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			cells[c] = row.Col(c)
		}
		grid = append(grid, cells)
	}
	return grid, nil
}
