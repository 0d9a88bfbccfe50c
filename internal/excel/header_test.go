package excel

import "testing"

func TestFindHeaderRow(t *testing.T) {
	cfg := DefaultHeaderConfig()

	tests := []struct {
		name string
		grid Grid
		want int
	}{
		{
			name: "header after preamble",
			grid: Grid{
				{"Звіт про продажі"},
				{"", "за березень"},
				{"Номер чека", "Дата", "Операція", "", "", "Чек"},
				{"", ""},
			},
			want: 2,
		},
		{
			name: "first qualifying row wins",
			grid: Grid{
				{"Номер чека", "Чек", "Операція"},
				{"Номер чека", "Чек", "Операція"},
			},
			want: 0,
		},
		{
			name: "case insensitive substring match",
			grid: Grid{
				{"intro"},
				{"номер чека (№)", "ЧЕК", "операція за день"},
			},
			want: 1,
		},
		{
			name: "keywords spread across cells",
			grid: Grid{
				{"Чек"},
				{"", "Номер чека", "", "Операція", "Чек"},
			},
			want: 1,
		},
		{
			name: "below threshold everywhere",
			grid: Grid{
				{"Номер чека", "Дата"},
				{"Чек", "Сума"},
			},
			want: -1,
		},
		{
			name: "empty grid",
			grid: Grid{},
			want: -1,
		},
		{
			name: "keyword repeated in one cell counts once",
			grid: Grid{
				{"Чек Чек Чек"},
			},
			want: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindHeaderRow(tt.grid, cfg); got != tt.want {
				t.Errorf("FindHeaderRow() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFindHeaderRowCustomThreshold(t *testing.T) {
	grid := Grid{
		{"intro"},
		{"Чек", "щось"},
	}

	cfg := HeaderConfig{Keywords: []string{"Чек", "Операція"}, MatchThreshold: 1}
	if got := FindHeaderRow(grid, cfg); got != 1 {
		t.Errorf("threshold 1: FindHeaderRow() = %d, want 1", got)
	}

	cfg.MatchThreshold = 2
	if got := FindHeaderRow(grid, cfg); got != -1 {
		t.Errorf("threshold 2: FindHeaderRow() = %d, want -1", got)
	}
}
