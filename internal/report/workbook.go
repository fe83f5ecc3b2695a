// Package report exports tributary partitions as spreadsheets, GeoJSON and
// load map data.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gorcc/internal/tributary"
)

const (
	SupportsSheet = "Supports"
	LoadsSheet    = "Loads"
)

// WriteWorkbook saves the partition as an Excel workbook with one row per
// support. The Supports sheet carries geometry and occupancy fractions, the
// Loads sheet the force per load case and the combined load.
func WriteWorkbook(areas []*tributary.ColumnArea, table tributary.LoadTable, factors []float64, scale float64, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SupportsSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if _, err := f.NewSheet(LoadsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	categories := table.CategoryNames()
	cases := table.CaseNames()

	// Supports sheet
	headers := append([]string{"Support", "Kind", "X (mm)", "Y (mm)", "Area (m²)"}, categories...)
	if err := writeHeader(f, SupportsSheet, headers, headerStyle); err != nil {
		return err
	}
	for i, a := range areas {
		c := a.Centroid()
		row := []any{a.Support.Label, a.Support.Kind.String(), c[0], c[1], a.AreaM2()}
		for _, cat := range categories {
			row = append(row, a.Occupancies[cat])
		}
		if err := writeRow(f, SupportsSheet, i+2, row); err != nil {
			return err
		}
	}

	// Loads sheet
	headers = []string{"Support"}
	for _, c := range cases {
		headers = append(headers, c+" (kN)")
	}
	headers = append(headers, "Combined (kN)")
	if err := writeHeader(f, LoadsSheet, headers, headerStyle); err != nil {
		return err
	}
	for i, a := range areas {
		combined, err := a.CombinedLoad(factors, scale)
		if err != nil {
			return err
		}
		row := []any{a.Support.Label}
		for j := range cases {
			if j < len(a.Loads) {
				row = append(row, a.Loads[j])
			} else {
				row = append(row, 0.0)
			}
		}
		row = append(row, combined)
		if err := writeRow(f, LoadsSheet, i+2, row); err != nil {
			return err
		}
	}

	// Totals
	if len(areas) > 0 {
		totalRow := len(areas) + 2
		if err := setCellValue(f, LoadsSheet, 1, totalRow, "Total"); err != nil {
			return err
		}
		for col := 2; col <= len(headers); col++ {
			name, err := excelize.ColumnNumberToName(col)
			if err != nil {
				return err
			}
			cell := fmt.Sprintf("%s%d", name, totalRow)
			formula := fmt.Sprintf("SUM(%s2:%s%d)", name, name, totalRow-1)
			if err := f.SetCellFormula(LoadsSheet, cell, formula); err != nil {
				return fmt.Errorf("failed to set total formula: %w", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, 16); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	// Freeze header
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze panes: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		if err := setCellValue(f, sheet, i+1, row, v); err != nil {
			return fmt.Errorf("failed to set cell value at row %d, col %d: %w", row, i+1, err)
		}
	}
	return nil
}

func setCellValue(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}
