package ingest

// convert.go handles the loose cells that come out of real exports: dates
// embedded in marker text, quantities and prices that may be blank, text, or
// use a comma decimal separator. Coercion never fails; anything unparseable
// degrades to the documented default (NULL date, zero quantity, zero price).

import (
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// checkDateLayout is the timestamp format embedded in check marker text.
const checkDateLayout = "02.01.2006 15:04:05"

// checkDateDelimiter separates the check number from its timestamp,
// e.g. "Чек №12 від 01.03.2024 10:15:30".
const checkDateDelimiter = "від"

// Positions of the columns the reconciliation reads from a row. Exports pad
// the leading columns with merge artifacts, so the interesting cells sit at
// fixed offsets.
const (
	colOperationKind = 5
	colQuantity      = 6
	colPrice         = 7
)

// cellAt returns the cell at idx, or "" when the row is shorter than
// expected. Rows in these exports are ragged; absence is never an error.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// textAt returns the cell at idx as a nullable text value: NULL when the
// column is absent or blank.
func textAt(row []string, idx int) pgtype.Text {
	s := strings.TrimSpace(cellAt(row, idx))
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

// parseCheckDate extracts the timestamp from a check marker. The text after
// the delimiter, trimmed, must match checkDateLayout; any miss (no
// delimiter, malformed date) yields NULL rather than an error, because a
// bad date must never block record creation.
func parseCheckDate(marker string) pgtype.Timestamptz {
	_, rest, ok := strings.Cut(marker, checkDateDelimiter)
	if !ok {
		return pgtype.Timestamptz{}
	}
	t, err := time.Parse(checkDateLayout, strings.TrimSpace(rest))
	if err != nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

// parseQuantity coerces a cell to a non-negative integer quantity.
// Numeric cells sometimes render with a decimal part ("2.0"), so integer
// parsing falls back to float truncation. Anything else is 0.
func parseQuantity(cell string) int64 {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := parseDecimal(s)
		if ferr != nil {
			return 0
		}
		n = int64(f)
	}
	if n < 0 {
		return 0
	}
	return n
}

// parsePrice coerces a cell to a non-negative price. Anything unparseable
// is 0.
func parsePrice(cell string) float64 {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0
	}
	f, err := parseDecimal(s)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

// parseDecimal parses a float accepting a comma decimal separator, which
// these exports use interchangeably with a dot.
func parseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}
