package importer

import (
	"strings"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	if f, err := DetectFormat("items.CSV"); err != nil || f != FormatCSV {
		t.Fatalf("expected csv, got %v/%v", f, err)
	}
	if f, err := DetectFormat("items.xlsx"); err != nil || f != FormatXLSX {
		t.Fatalf("expected xlsx, got %v/%v", f, err)
	}
	if _, err := DetectFormat("items.pdf"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestReadGridSniffsSemicolonDelimiter(t *testing.T) {
	doc := "Name;Price\nEthanol;1 234,50 kr\n"
	grid, err := ReadGrid(FormatCSV, strings.NewReader(doc))
	if err != nil {
		t.Fatalf("read grid: %v", err)
	}
	if len(grid) != 2 || len(grid[0]) != 2 {
		t.Fatalf("unexpected grid shape: %v", grid)
	}
	if grid[1][1] != "1 234,50 kr" {
		t.Fatalf("comma decimal split by wrong delimiter: %v", grid[1])
	}
}

func TestLocateHeader(t *testing.T) {
	t.Run("finds header after preamble rows", func(t *testing.T) {
		grid := Grid{
			{"Lab supply list", ""},
			{"Updated 2026", ""},
			{"Name", "Supplier", "Price"},
			{"Ethanol", "VWR", "100"},
		}
		idx, headers, err := LocateHeader(grid, 10)
		if err != nil {
			t.Fatalf("locate header: %v", err)
		}
		if idx != 2 {
			t.Fatalf("expected header at index 2, got %d", idx)
		}
		if headers[0] != "Name" || headers[1] != "Supplier" {
			t.Fatalf("unexpected headers: %v", headers)
		}
	})

	t.Run("external id sentinel qualifies", func(t *testing.T) {
		grid := Grid{{"External ID", "Something"}}
		if _, _, err := LocateHeader(grid, 10); err != nil {
			t.Fatalf("expected external id sentinel to qualify: %v", err)
		}
	})

	t.Run("never inspects beyond the scan window", func(t *testing.T) {
		grid := make(Grid, 12)
		for i := range grid {
			grid[i] = []string{"noise"}
		}
		grid[11] = []string{"Name", "Price"}
		if _, _, err := LocateHeader(grid, 10); err == nil {
			t.Fatal("expected no-header failure for header outside the window")
		}
	})

	t.Run("cell must match exactly after trimming", func(t *testing.T) {
		grid := Grid{{"  Name  ", "Price"}}
		idx, _, err := LocateHeader(grid, 10)
		if err != nil || idx != 0 {
			t.Fatalf("expected trimmed sentinel match, got %d/%v", idx, err)
		}

		grid = Grid{{"Names", "Price"}}
		if _, _, err := LocateHeader(grid, 10); err == nil {
			t.Fatal("substring must not qualify as sentinel")
		}
	})
}

func TestMapRow(t *testing.T) {
	headers := []string{"Name", "Order qty", "Priority", "Unknown column", "Supplier part no.", "Price"}
	row := []string{"Ethanol", "5", "high", "mystery", "613-1234", "99,50"}

	record := MapRow(headers, row)

	if record[fieldName] != "Ethanol" {
		t.Fatalf("expected name mapped, got %v", record)
	}
	if record[fieldPartNumber] != "613-1234" {
		t.Fatalf("expected part number mapped, got %v", record)
	}
	if record[fieldPrice] != "99,50" {
		t.Fatalf("expected price mapped, got %v", record)
	}
	if len(record) != 3 {
		t.Fatalf("ignored and unknown columns must not leak: %v", record)
	}
}

func TestMapRowHandlesShortRows(t *testing.T) {
	headers := []string{"Name", "Supplier", "Price"}
	record := MapRow(headers, []string{"Ethanol"})
	if record[fieldName] != "Ethanol" || len(record) != 1 {
		t.Fatalf("unexpected record for short row: %v", record)
	}
}

func TestValidateRow(t *testing.T) {
	t.Run("blank name is fatal", func(t *testing.T) {
		if _, err := ValidateRow(Record{}); err == nil {
			t.Fatal("expected error for missing name")
		}
	})

	t.Run("short name is fatal", func(t *testing.T) {
		if _, err := ValidateRow(Record{fieldName: "ab"}); err == nil {
			t.Fatal("expected error for short name")
		}
	})

	t.Run("stoplist names are fatal", func(t *testing.T) {
		for _, name := range []string{"Chemicals", "GLASSWARE", "--- Lab section ---", "Section 2"} {
			if _, err := ValidateRow(Record{fieldName: name}); err == nil {
				t.Fatalf("expected %q to be rejected", name)
			}
		}
	})

	t.Run("missing part number and price warns but passes", func(t *testing.T) {
		warnings, err := ValidateRow(Record{fieldName: "Ethanol 96%"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(warnings) != 1 {
			t.Fatalf("expected one warning, got %v", warnings)
		}
	})

	t.Run("part number alone silences the warning", func(t *testing.T) {
		warnings, err := ValidateRow(Record{fieldName: "Ethanol 96%", fieldPartNumber: "613-1234"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(warnings) != 0 {
			t.Fatalf("expected no warnings, got %v", warnings)
		}
	})
}
