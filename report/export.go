package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/warp/workforce/core"
	"github.com/xuri/excelize/v2"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

func (f Format) Valid() bool {
	return f == FormatCSV || f == FormatXLSX || f == FormatJSON
}

// ContentType returns the HTTP media type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}

// FileName is the suggested download name, e.g. payroll-2026-01.xlsx.
func (r *Report) FileName(f Format) string {
	return fmt.Sprintf("%s-%s.%s", r.Kind, r.Month, f)
}

// Export writes r to w in format f.
func Export(w io.Writer, r *Report, f Format) error {
	switch f {
	case FormatCSV:
		return writeCSV(w, r)
	case FormatXLSX:
		return writeXLSX(w, r)
	case FormatJSON:
		return writeJSON(w, r)
	}
	v := core.NewValidator()
	v.Add("format", core.ErrInvalidValue, fmt.Sprintf("Unknown export format %q", f))
	return v.Err()
}

func writeCSV(w io.Writer, r *Report) error {
	if err := gocsv.Marshal(r.Rows, w); err != nil {
		return fmt.Errorf("marshal %s csv: %w", r.Kind, err)
	}
	return nil
}

func writeJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Type  Kind   `json:"type"`
		Month string `json:"month"`
		Title string `json:"title"`
		Rows  any    `json:"rows"`
	}{r.Kind, r.Month.String(), r.Title, r.Rows})
}

// =============================================================================
// XLSX
// =============================================================================

// numericColumns are the CSV headers whose cells hold amounts, hours or
// counts. Every other column stays text, whatever it looks like.
var numericColumns = map[string]bool{
	"amount":             true,
	"worked_hours":       true,
	"monthly_salary":     true,
	"paid_so_far":        true,
	"remaining_dues":     true,
	"present":            true,
	"late":               true,
	"absent":             true,
	"vacation_used":      true,
	"vacation_remaining": true,
}

// writeXLSX renders the same table as the CSV export into a single sheet
// with a bold header row. Numeric columns become number cells.
func writeXLSX(w io.Writer, r *Report) error {
	records, err := tableOf(r)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(r.Kind)
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	var numeric []bool
	if len(records) > 0 {
		numeric = make([]bool, len(records[0]))
		for j, name := range records[0] {
			numeric[j] = numericColumns[name]
		}
	}

	for i, record := range records {
		row := make([]any, len(record))
		for j, cell := range record {
			row[j] = cell
			if i > 0 && j < len(numeric) && numeric[j] {
				if d, err := decimal.NewFromString(cell); err == nil {
					row[j], _ = d.Float64()
				}
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if len(records) > 0 {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return err
		}
		if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
			return err
		}
		last, err := excelize.ColumnNumberToName(len(records[0]))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "A", last, 16); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// tableOf returns the header plus rows exactly as the CSV export lays them out.
func tableOf(r *Report) ([][]string, error) {
	var buf bytes.Buffer
	if err := writeCSV(&buf, r); err != nil {
		return nil, err
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s table: %w", r.Kind, err)
	}
	return records, nil
}

func sheetName(k Kind) string {
	switch k {
	case KindPayroll:
		return "Payroll"
	case KindAttendance:
		return "Attendance"
	default:
		return "Employees"
	}
}
