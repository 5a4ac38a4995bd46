package table

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Table
		want Table
	}{
		{
			name: "ragged rows padded to widest",
			in:   Table{{"a", "b", "c"}, {"d"}, {}},
			want: Table{{"a", "b", "c"}, {"d", "", ""}, {"", "", ""}},
		},
		{
			name: "uniform rows unchanged",
			in:   Table{{"a", "b"}, {"c", "d"}},
			want: Table{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "empty table stays empty",
			in:   Table{},
			want: Table{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCounts(t *testing.T) {
	tbl := Table{{"a", "b", "c"}, {"d"}}

	if tbl.RowCount() != 2 {
		t.Errorf("RowCount() = %d, want 2", tbl.RowCount())
	}
	if tbl.ColumnCount() != 3 {
		t.Errorf("ColumnCount() = %d, want 3", tbl.ColumnCount())
	}
	if tbl.IsEmpty() {
		t.Error("IsEmpty() = true for non-empty table")
	}

	var empty Table
	if !empty.IsEmpty() {
		t.Error("IsEmpty() = false for empty table")
	}
	if empty.ColumnCount() != 0 {
		t.Errorf("ColumnCount() = %d for empty table, want 0", empty.ColumnCount())
	}
}
