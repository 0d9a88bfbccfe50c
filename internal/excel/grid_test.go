package excel

import "testing"

func TestValidExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"report.xls", true},
		{"REPORT.XLS", true},
		{"report.Xls", true},
		{"report.xlsx", false},
		{"report.csv", false},
		{"report", false},
		{"xls", false},
		{"", false},
		{"archive.xls.zip", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := ValidExtension(tt.filename); got != tt.want {
				t.Errorf("ValidExtension(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestGridCell(t *testing.T) {
	g := Grid{
		{"a", "b"},
		nil,
		{"c"},
	}

	tests := []struct {
		name     string
		row, col int
		want     string
	}{
		{"in range", 0, 1, "b"},
		{"nil row", 1, 0, ""},
		{"column past row end", 2, 1, ""},
		{"row past grid end", 3, 0, ""},
		{"negative row", -1, 0, ""},
		{"negative column", 0, -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Cell(tt.row, tt.col); got != tt.want {
				t.Errorf("Cell(%d, %d) = %q, want %q", tt.row, tt.col, got, tt.want)
			}
		})
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty input", nil},
		{"text bytes", []byte("not a workbook")},
		{"truncated ole header", []byte{0xD0, 0xCF, 0x11, 0xE0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.data); err == nil {
				t.Error("Decode() accepted unparseable bytes")
			}
		})
	}
}
