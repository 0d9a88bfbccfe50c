package excel

import "strings"

// HeaderConfig controls how the report header row is located. Source
// documents vary in preamble length, so the header position is discovered by
// counting keyword hits per row rather than assumed fixed.
type HeaderConfig struct {
	// Keywords are the column-label fragments expected in the header row.
	Keywords []string

	// MatchThreshold is the minimum number of keywords that must appear in
	// a row for it to qualify as the header.
	MatchThreshold int
}

// DefaultHeaderConfig returns the keyword set the legacy exports use.
func DefaultHeaderConfig() HeaderConfig {
	return HeaderConfig{
		Keywords:       []string{"Номер чека", "Чек", "Операція"},
		MatchThreshold: 3,
	}
}

// FindHeaderRow scans the grid top to bottom and returns the index of the
// first row where at least cfg.MatchThreshold keywords appear, matching
// case-insensitively as substrings of any cell. Returns -1 when no row
// qualifies.
func FindHeaderRow(g Grid, cfg HeaderConfig) int {
	for i, row := range g {
		matches := 0
		for _, kw := range cfg.Keywords {
			if rowContains(row, kw) {
				matches++
			}
		}
		if matches >= cfg.MatchThreshold {
			return i
		}
	}
	return -1
}

// rowContains reports whether any cell in the row contains the keyword,
// ignoring case.
func rowContains(row []string, keyword string) bool {
	kw := strings.ToLower(keyword)
	for _, cell := range row {
		if strings.Contains(strings.ToLower(cell), kw) {
			return true
		}
	}
	return false
}
