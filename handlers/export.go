package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"

	"student_admin_backend/attendance"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportReport sends the range report as an .xlsx download.
func (h *AttendanceHandler) ExportReport(c *gin.Context) {
	r, ok := h.bindRange(c)
	if !ok {
		return
	}

	report, err := attendance.BuildReport(c.Request.Context(), h.roster, h.store, r)
	if err != nil {
		internalError(c, h.logger, "Failed to build attendance report", err)
		return
	}

	buf, err := ReportWorkbook(report)
	if err != nil {
		internalError(c, h.logger, "Failed to generate spreadsheet", err)
		return
	}

	filename := fmt.Sprintf("attendance_%s_%s.xlsx", report.StartDate, report.EndDate)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ReportWorkbook renders a report as one sheet: a title row, a header row,
// one row per student and a totals row.
func ReportWorkbook(report attendance.Report) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Attendance report %s to %s", report.StartDate, report.EndDate))

	headers := []string{"Student ID", "Name", "Present", "Absent", "Late", "Total", "Attendance %"}
	for i, title := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		f.SetCellValue(sheet, cell, title)
	}
	f.SetCellStyle(sheet, "A3", "G3", headerStyle)
	f.SetColWidth(sheet, "A", "A", 14)
	f.SetColWidth(sheet, "B", "B", 28)
	f.SetColWidth(sheet, "C", "G", 12)

	row := 4
	for _, r := range report.Rows {
		values := []interface{}{r.StudentCode, r.StudentName, r.Present, r.Absent, r.Late, r.Total, r.Percentage}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	o := report.Overall
	totals := []interface{}{"Total", "", o.TotalPresent, o.TotalAbsent, o.TotalLate, o.TotalDays, o.AverageAttendance}
	for i, v := range totals {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, v)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return buf, nil
}
