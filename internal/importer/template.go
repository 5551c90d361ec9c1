package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// TemplateCSV renders an empty import template with the recognized headers.
func TemplateCSV() ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(TemplateHeaders()); err != nil {
		return nil, fmt.Errorf("writing template header: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flushing template: %w", err)
	}
	return buf.Bytes(), nil
}

// TemplateXLSX renders the same template as a single-sheet workbook with a
// styled header row.
func TemplateXLSX() ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Items"
	file.SetSheetName(file.GetSheetName(0), sheet)

	style, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	headers := TemplateHeaders()
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("naming cell: %w", err)
		}
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("writing header %q: %w", header, err)
		}
	}

	lastCell, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return nil, fmt.Errorf("naming last cell: %w", err)
	}
	if err := file.SetCellStyle(sheet, "A1", lastCell, style); err != nil {
		return nil, fmt.Errorf("styling header: %w", err)
	}
	if err := file.SetColWidth(sheet, "A", "U", 18); err != nil {
		return nil, fmt.Errorf("setting column widths: %w", err)
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
