package scraper

import (
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	// Load test fixture
	data, err := os.ReadFile("../../testdata/fixtures/sample_announcement.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	rows, err := Extract(strings.NewReader(string(data)), 0)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	want := [][]string{
		{"Route", "Valid From", "Notes"},
		{"BJS-SHA", "2024-01-01", "Weekdays only\nexcluding holidays"},
		{"PEK-PVG", "2024-02-01", "All days"},
		{"HAK-CAN", "2024-03-15", ""},
	}

	if rows.RowCount() != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), rows.RowCount())
	}
	for i, row := range rows {
		if !reflect.DeepEqual([]string(row), want[i]) {
			t.Errorf("row %d = %q, want %q", i, row, want[i])
		}
	}
}

func TestExtract_SecondTable(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/sample_announcement.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	rows, err := Extract(strings.NewReader(string(data)), 1)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if rows.RowCount() != 1 {
		t.Fatalf("expected 1 row from footer table, got %d", rows.RowCount())
	}
	if rows[0][0] != "Contact" || rows[0][1] != "Legal" {
		t.Errorf("unexpected footer row: %q", rows[0])
	}
}

func TestExtract_TableNotFound(t *testing.T) {
	html := `<html><body><table><tr><td>only one</td></tr></table></body></html>`

	_, err := Extract(strings.NewReader(html), 3)
	if err == nil {
		t.Fatal("expected error for out-of-range table index, got nil")
	}
	if !errors.Is(err, ErrTableNotFound) {
		t.Errorf("expected ErrTableNotFound, got %v", err)
	}
}

func TestExtract_NegativeIndex(t *testing.T) {
	html := `<html><body><table></table></body></html>`

	if _, err := Extract(strings.NewReader(html), -1); err == nil {
		t.Fatal("expected error for negative table index, got nil")
	}
}

func TestExtract_EmptyTable(t *testing.T) {
	html := `<html><body><table></table></body></html>`

	rows, err := Extract(strings.NewReader(html), 0)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !rows.IsEmpty() {
		t.Errorf("expected empty table, got %d rows", rows.RowCount())
	}
}

func TestExtract_RaggedRowsArePadded(t *testing.T) {
	html := `<html><body><table>
		<tr><td>a</td><td>b</td><td>c</td></tr>
		<tr><td>d</td></tr>
	</table></body></html>`

	rows, err := Extract(strings.NewReader(html), 0)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if rows.ColumnCount() != 3 {
		t.Fatalf("expected 3 columns, got %d", rows.ColumnCount())
	}
	for i, row := range rows {
		if len(row) != 3 {
			t.Errorf("row %d has %d cells, want 3", i, len(row))
		}
	}
	if rows[1][1] != "" || rows[1][2] != "" {
		t.Errorf("expected padded empty cells, got %q", rows[1])
	}
}

func TestNormalizeCellText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "BJS-SHA", "BJS-SHA"},
		{"surrounding whitespace", "  2024-01-01  ", "2024-01-01"},
		{"internal runs collapsed", "All   days", "All days"},
		{"nbsp", "Valid From", "Valid From"},
		{"multiline trims each line", "  first \n second  ", "first\nsecond"},
		{"leading newline dropped", "\nvalue", "value"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalizeCellText(tt.input)
			if result != tt.expected {
				t.Errorf("normalizeCellText(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}
