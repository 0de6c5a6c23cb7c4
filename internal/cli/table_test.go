// Package cli provides command-line interface utilities.
package cli

import (
	"strings"
	"testing"
)

func TestNewTable(t *testing.T) {
	headers := []string{"RANK", "HEX", "SHARE"}
	table := NewTable(headers)

	if table == nil {
		t.Fatal("NewTable returned nil")
	}

	if len(table.headers) != 3 {
		t.Errorf("Expected 3 headers, got %d", len(table.headers))
	}

	if table.padding != 2 {
		t.Errorf("Expected padding of 2, got %d", table.padding)
	}
}

func TestTableAddRow(t *testing.T) {
	table := NewTable([]string{"LABEL", "SCORE"})

	// Add matching row
	table.AddRow([]string{"forest", "0.820"})
	if len(table.rows) != 1 {
		t.Errorf("Expected 1 row, got %d", len(table.rows))
	}

	// Add row with fewer columns (should be padded)
	table.AddRow([]string{"ocean"})
	if len(table.rows) != 2 {
		t.Errorf("Expected 2 rows, got %d", len(table.rows))
	}
	if len(table.rows[1]) != 2 {
		t.Errorf("Expected row to be padded to 2 columns, got %d", len(table.rows[1]))
	}
	if table.rows[1][1] != "" {
		t.Errorf("Expected empty string for padded column, got %q", table.rows[1][1])
	}

	// Add row with more columns (should be truncated)
	table.AddRow([]string{"desert", "0.110", "extra"})
	if len(table.rows) != 3 {
		t.Errorf("Expected 3 rows, got %d", len(table.rows))
	}
	if len(table.rows[2]) != 2 {
		t.Errorf("Expected row to be truncated to 2 columns, got %d", len(table.rows[2]))
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"RANK", "HEX", "SHARE"})
	table.AddRow([]string{"1", "#1a2b3c", "42.3%"})
	table.AddRow([]string{"2", "#ffeedd", "9.1%"})

	output := table.Render()

	// Check that output contains headers
	if !strings.Contains(output, "RANK") {
		t.Error("Output should contain 'RANK' header")
	}
	if !strings.Contains(output, "HEX") {
		t.Error("Output should contain 'HEX' header")
	}
	if !strings.Contains(output, "SHARE") {
		t.Error("Output should contain 'SHARE' header")
	}

	// Check that output contains data
	if !strings.Contains(output, "#1a2b3c") {
		t.Error("Output should contain '#1a2b3c'")
	}
	if !strings.Contains(output, "#ffeedd") {
		t.Error("Output should contain '#ffeedd'")
	}
	if !strings.Contains(output, "42.3%") {
		t.Error("Output should contain '42.3%'")
	}

	// Check for separator line (should contain dashes)
	lines := strings.Split(output, "\n")
	if len(lines) < 4 { // header + separator + 2 data rows + trailing newline
		t.Errorf("Expected at least 4 lines, got %d", len(lines))
	}

	// Second line should be separator with dashes
	if !strings.Contains(lines[1], "---") {
		t.Errorf("Expected separator line with dashes, got: %q", lines[1])
	}
}

func TestTableRenderEmpty(t *testing.T) {
	// Empty table (no headers)
	table := &Table{
		headers: []string{},
		rows:    make([][]string, 0),
		padding: 2,
	}

	output := table.Render()
	if output != "" {
		t.Errorf("Expected empty string for empty table, got: %q", output)
	}
}

func TestTableRenderNoRows(t *testing.T) {
	// Table with headers but no rows
	table := NewTable([]string{"LABEL", "SCORE"})

	output := table.Render()

	// Should still render headers and separator
	if !strings.Contains(output, "LABEL") {
		t.Error("Output should contain headers even without rows")
	}

	lines := strings.Split(output, "\n")
	if len(lines) < 2 {
		t.Error("Expected at least header and separator lines")
	}
}

func TestTableColumnAlignment(t *testing.T) {
	table := NewTable([]string{"HEX", "PROPORTION OF SAMPLES", "N"})
	table.AddRow([]string{"#000000", "0.5", "8"})
	table.AddRow([]string{"#ffffff88", "0.25", "1234"})

	output := table.Render()
	lines := strings.Split(output, "\n")

	if len(lines) < 4 {
		t.Fatalf("Expected at least 4 lines, got %d", len(lines))
	}

	// The separator should have dashes matching the full header width, so
	// header and separator lines come out the same length.
	headerLine := lines[0]
	separatorLine := lines[1]

	if len(separatorLine) != len(headerLine) {
		t.Errorf("Separator length (%d) should match header length (%d)", len(separatorLine), len(headerLine))
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"test", 10, "test      "},
		{"hello", 5, "hello"},
		{"world", 3, "world"}, // Width less than string length
		{"", 5, "     "},
		{"x", 1, "x"},
	}

	for _, tt := range tests {
		result := padRight(tt.input, tt.width)
		if result != tt.expected {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.width, result, tt.expected)
		}
	}
}
