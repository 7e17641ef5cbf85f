package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const jobsSheetName = "Jobs"

// GenerateJobsExcel renders the jobs list as a workbook and returns the file
// contents.
func GenerateJobsExcel(data JobsExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), jobsSheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	sheet := jobsSheetName

	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"}
	lastCol := columns[len(columns)-1]

	widths := []float64{24, 40, 12, 14, 30, 10, 10, 12, 14, 14, 14, 14}
	for i, c := range columns {
		if err := f.SetColWidth(sheet, c, c, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", c, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	rowStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create row style: %w", err)
	}

	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	// Title and date.
	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheet, "A1", lastCol+"1", titleStyle)
	f.SetCellValue(sheet, "A2", "Date: "+data.CreatedDate)

	headers := []string{
		"Customer", "Install Address", "Status", "Scheduled", "Components",
		"Length (ft)", "Landings", "Distance (mi)",
		"Delivery Fee", "Install Fee", "Rental Rate", "Total Cost",
	}
	for i, h := range headers {
		f.SetCellValue(sheet, columns[i]+"4", h)
	}
	f.SetCellStyle(sheet, "A4", lastCol+"4", headerStyle)

	row := 5
	for _, r := range data.Rows {
		n := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "A"+n, sanitizeExcelCell(r.CustomerName))
		f.SetCellValue(sheet, "B"+n, sanitizeExcelCell(r.InstallAddress))
		f.SetCellValue(sheet, "C"+n, r.Status)
		f.SetCellValue(sheet, "D"+n, r.ScheduledDate)
		f.SetCellValue(sheet, "E"+n, r.Components)
		f.SetCellValue(sheet, "F"+n, r.RampLength)
		f.SetCellValue(sheet, "G"+n, r.Landings)
		f.SetCellValue(sheet, "H"+n, r.Distance)
		f.SetCellValue(sheet, "I"+n, FormatUSD(r.DeliveryFee))
		f.SetCellValue(sheet, "J"+n, FormatUSD(r.InstallFee))
		f.SetCellValue(sheet, "K"+n, FormatUSD(r.RentalRate))
		f.SetCellValue(sheet, "L"+n, FormatUSD(r.TotalCost))
		f.SetCellStyle(sheet, "A"+n, lastCol+n, rowStyle)
		row++
	}

	row++
	n := fmt.Sprintf("%d", row)
	f.SetCellValue(sheet, "K"+n, "Total:")
	f.SetCellValue(sheet, "L"+n, FormatUSD(data.TotalCost))
	f.SetCellStyle(sheet, "K"+n, "L"+n, totalStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
