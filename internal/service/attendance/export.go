package attendance

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/clock"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Attendance"

var exportHeader = []string{"Date", "Employee ID", "Name", "Email", "Check In", "Check Out", "Hours", "Status"}

// ExportAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ExportAttendance(ctx context.Context, filter attendance.AttendanceFilter, w io.Writer) error {
	records, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list attendance: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	loc := a.calendar.Location()
	for i, r := range records {
		row := []interface{}{
			clock.FormatDate(r.Date),
			r.EmployeeID,
			deref(r.EmployeeName),
			deref(r.EmployeeEmail),
			formatInstant(r.CheckIn, loc),
			formatInstant(r.CheckOut, loc),
			"",
			string(r.Status),
		}
		if hours, ok := r.HoursWorked(); ok {
			row[6] = fmt.Sprintf("%.2f", hours)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	_, err = f.WriteTo(w)
	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatInstant(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format("2006-01-02 15:04:05")
}
