package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"student_admin_backend/attendance"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultReportDays = 30

type AttendanceHandler struct {
	roster attendance.RosterProvider
	store  attendance.RecordStore
	logger *zap.Logger
	now    func() time.Time
}

func NewAttendanceHandler(roster attendance.RosterProvider, store attendance.RecordStore, logger *zap.Logger) *AttendanceHandler {
	return &AttendanceHandler{roster: roster, store: store, logger: logger, now: time.Now}
}

type markBulkRequest struct {
	AttendanceRecords []struct {
		StudentID string `json:"studentId" binding:"required"`
		Status    string `json:"status" binding:"required"`
		Remarks   string `json:"remarks"`
	} `json:"attendanceRecords" binding:"required"`
	Date string `json:"date" binding:"required"`
}

func (h *AttendanceHandler) GetByDate(c *gin.Context) {
	date := c.Param("date")
	if _, err := attendance.ParseDate(date); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.store.GetByDate(c.Request.Context(), date)
	if err != nil {
		internalError(c, h.logger, "Failed to fetch attendance records", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "date": date, "attendance": records})
}

// MarkBulk upserts the marks of one date. Rows with an unknown status or that
// the store rejects are listed in results.failed while the others stay saved.
func (h *AttendanceHandler) MarkBulk(c *gin.Context) {
	var req markBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := attendance.ParseDate(req.Date); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.AttendanceRecords) == 0 {
		fail(c, http.StatusBadRequest, "No attendance records provided")
		return
	}

	seen := make(map[string]bool, len(req.AttendanceRecords))
	rows := make([]attendance.Submission, 0, len(req.AttendanceRecords))
	var rejected []string
	for _, r := range req.AttendanceRecords {
		if seen[r.StudentID] {
			fail(c, http.StatusBadRequest, "Student "+r.StudentID+" appears more than once")
			return
		}
		seen[r.StudentID] = true

		status, err := attendance.ParseStatus(r.Status)
		if err != nil {
			rejected = append(rejected, r.StudentID)
			continue
		}
		rows = append(rows, attendance.Submission{
			StudentID: r.StudentID,
			Status:    status,
			Remarks:   r.Remarks,
			Date:      req.Date,
		})
	}

	result := attendance.BulkResult{Failed: []string{}}
	if len(rows) > 0 {
		var err error
		result, err = h.store.BulkUpsert(c.Request.Context(), rows)
		if err != nil {
			internalError(c, h.logger, "Failed to save attendance", err)
			return
		}
	}
	result.Failed = append(result.Failed, rejected...)

	h.logger.Info("attendance marked",
		zap.String("date", req.Date),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", len(result.Failed)),
	)
	message := fmt.Sprintf("Attendance saved for %d students", result.Succeeded)
	if len(result.Failed) > 0 {
		message = fmt.Sprintf("%s, %d records failed to save", message, len(result.Failed))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "results": result})
}

// GetRecords returns the raw rows between startDate and endDate.
func (h *AttendanceHandler) GetRecords(c *gin.Context) {
	r, ok := h.bindRange(c)
	if !ok {
		return
	}

	records, err := h.store.GetByRange(c.Request.Context(), r.StartString(), r.EndString())
	if err != nil {
		internalError(c, h.logger, "Failed to fetch attendance records", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "attendance": records})
}

func (h *AttendanceHandler) GetReport(c *gin.Context) {
	r, ok := h.bindRange(c)
	if !ok {
		return
	}

	report, err := attendance.BuildReport(c.Request.Context(), h.roster, h.store, r)
	if err != nil {
		internalError(c, h.logger, "Failed to build attendance report", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"startDate":    report.StartDate,
		"endDate":      report.EndDate,
		"studentStats": report.Rows,
		"overall":      report.Overall,
		"totalRecords": report.TotalRecords,
	})
}

// bindRange reads startDate/endDate, defaulting to the last 30 days.
func (h *AttendanceHandler) bindRange(c *gin.Context) (attendance.Range, bool) {
	start, end := c.Query("startDate"), c.Query("endDate")
	if start == "" && end == "" {
		return attendance.LastDays(h.now(), defaultReportDays), true
	}
	if start == "" || end == "" {
		fail(c, http.StatusBadRequest, "startDate and endDate must be given together")
		return attendance.Range{}, false
	}

	r, err := attendance.NewRange(start, end)
	if errors.Is(err, attendance.ErrInvalidDate) || errors.Is(err, attendance.ErrInvalidRange) {
		fail(c, http.StatusBadRequest, err.Error())
		return attendance.Range{}, false
	} else if err != nil {
		internalError(c, h.logger, "Failed to read date range", err)
		return attendance.Range{}, false
	}
	return r, true
}
