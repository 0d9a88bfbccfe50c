package excel

import "strings"

// checkMarkerPrefix opens a new check group: any row whose first cell starts
// with it is a check row, and the rows after it belong to that check until
// the next marker.
const checkMarkerPrefix = "Чек"

// totalMarker labels the subtotal row that closes a check's item list.
// It is a footer, not a product.
const totalMarker = "разом"

// IsTotalMarker reports whether a first-cell value is the subtotal footer,
// after trimming and case-folding.
func IsTotalMarker(cell string) bool {
	return strings.EqualFold(strings.TrimSpace(cell), totalMarker)
}

// isCheckMarker reports whether a row opens a new check group.
func isCheckMarker(row []string) bool {
	return len(row) > 0 && strings.HasPrefix(row[0], checkMarkerPrefix)
}

// Group is one segmented check: the marker row that opened it and the
// product rows that followed, in sheet order. Marker is the raw first-cell
// text of the opening row and doubles as the check's identity.
type Group struct {
	Marker   string
	Row      []string
	Products [][]string
}

// segState tracks whether a check group is currently open.
type segState int

const (
	stateNoOpenGroup segState = iota
	stateGroupOpen
)

// Segmenter walks the data region of a grid and yields check groups one at a
// time, in the style of bufio.Scanner:
//
//	seg := excel.NewSegmenter(rows)
//	for seg.Next() {
//	    g := seg.Group()
//	    ...
//	}
//
// Rows before the first marker row are dropped (no group is open yet), and
// subtotal footer rows are excluded from products. Only one group is held in
// memory at a time.
type Segmenter struct {
	rows  [][]string
	pos   int
	state segState
	group Group
}

// NewSegmenter creates a Segmenter over the data region rows (everything
// after the header offset).
func NewSegmenter(rows [][]string) *Segmenter {
	return &Segmenter{rows: rows}
}

// Next advances to the next check group. It returns false when the data
// region is exhausted.
func (s *Segmenter) Next() bool {
	for s.state == stateNoOpenGroup {
		if s.pos >= len(s.rows) {
			return false
		}
		if isCheckMarker(s.rows[s.pos]) {
			s.state = stateGroupOpen
			break
		}
		s.pos++
	}

	opening := s.rows[s.pos]
	s.group = Group{Marker: opening[0], Row: opening}
	s.pos++

	for s.pos < len(s.rows) && !isCheckMarker(s.rows[s.pos]) {
		row := s.rows[s.pos]
		if len(row) > 0 && !IsTotalMarker(row[0]) {
			s.group.Products = append(s.group.Products, row)
		}
		s.pos++
	}

	if s.pos >= len(s.rows) {
		s.state = stateNoOpenGroup
		s.pos = len(s.rows)
	}
	return true
}

// Group returns the group read by the last call to Next.
func (s *Segmenter) Group() Group {
	return s.group
}
