// Package export writes the admin dashboard as a spreadsheet.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"volunteerhours/internal/application/projections"
)

// Sheet names, in workbook order.
const (
	SheetVolunteers = "Volunteers"
	SheetClosed     = "Sessions"
	SheetOpen       = "Open Sessions"
)

var (
	volunteerHeader = []any{"ID", "Name", "Sessions", "Open Sessions", "Total Hours"}
	closedHeader    = []any{"ID", "Volunteer", "Date", "Start", "End", "Hours"}
	openHeader      = []any{"ID", "Volunteer", "Date", "Start"}
)

// WriteWorkbook writes one sheet per dashboard table to w.
// PRE: d comes from QueryGetAdminDashboard
// POST: w holds a complete .xlsx file; header rows are bold and frozen
func WriteWorkbook(w io.Writer, d projections.GetAdminDashboardResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetVolunteers); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetClosed, SheetOpen} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	volunteers := make([][]any, 0, len(d.Volunteers))
	for _, v := range d.Volunteers {
		volunteers = append(volunteers, []any{v.ID, v.DisplayName, v.SessionCount, v.OpenCount, v.TotalHours})
	}
	closed := make([][]any, 0, len(d.ClosedSessions))
	for _, s := range d.ClosedSessions {
		closed = append(closed, []any{s.ID, s.VolunteerName, s.Date.String(), s.StartTime.String(), s.EndTime.String(), s.Hours})
	}
	open := make([][]any, 0, len(d.OpenSessions))
	for _, s := range d.OpenSessions {
		open = append(open, []any{s.ID, s.VolunteerName, s.Date.String(), s.StartTime.String()})
	}

	sheets := []struct {
		name   string
		header []any
		rows   [][]any
	}{
		{SheetVolunteers, volunteerHeader, volunteers},
		{SheetClosed, closedHeader, closed},
		{SheetOpen, openHeader, open},
	}
	for _, s := range sheets {
		if err := writeSheet(f, s.name, s.header, s.rows, bold); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []any, rows [][]any, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
