package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Grid is the raw cell matrix extracted from an uploaded document.
type Grid [][]string

// Format identifies the uploaded document type.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat maps a filename extension to a supported format.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported file extension %q (expected .csv or .xlsx)", filepath.Ext(filename))
	}
}

// ReadGrid parses the uploaded document into a grid of raw cell values.
// XLSX documents are read from the first sheet only.
func ReadGrid(format Format, r io.Reader) (Grid, error) {
	switch format {
	case FormatCSV:
		return readCSV(r)
	case FormatXLSX:
		return readXLSX(r)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

func readCSV(r io.Reader) (Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	return Grid(records), nil
}

// sniffDelimiter picks the separator with the most hits on the first line.
// Locale exports with comma decimals commonly use semicolons.
func sniffDelimiter(data []byte) rune {
	line := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		line = data[:idx]
	}
	best, bestCount := ',', bytes.Count(line, []byte{','})
	for _, cand := range []byte{';', '\t'} {
		if n := bytes.Count(line, []byte{cand}); n > bestCount {
			best, bestCount = rune(cand), n
		}
	}
	return best
}

func readXLSX(r io.Reader) (Grid, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening xlsx: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx has no sheets")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading xlsx rows: %w", err)
	}
	return Grid(rows), nil
}

// Header sentinels: a row containing one of these, exactly, is the header.
var headerSentinels = []string{"Name", "External ID"}

// LocateHeader scans the first window rows for the header row. It returns
// the zero-based index of the header and its trimmed cell values.
func LocateHeader(grid Grid, window int) (int, []string, error) {
	if window <= 0 {
		window = 10
	}
	limit := len(grid)
	if limit > window {
		limit = window
	}

	for i := 0; i < limit; i++ {
		for _, cell := range grid[i] {
			trimmed := strings.TrimSpace(cell)
			for _, sentinel := range headerSentinels {
				if trimmed == sentinel {
					headers := make([]string, len(grid[i]))
					for j, h := range grid[i] {
						headers[j] = strings.TrimSpace(h)
					}
					return i, headers, nil
				}
			}
		}
	}
	return 0, nil, fmt.Errorf("no header row found in the first %d rows", window)
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
