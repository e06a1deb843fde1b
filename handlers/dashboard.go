package handlers

import (
	"context"
	"net/http"
	"time"

	"student_admin_backend/attendance"
	"student_admin_backend/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type StudentCounter interface {
	Count(ctx context.Context) (int, error)
}

type MonthlyTotaler interface {
	SumForMonth(ctx context.Context, month string) (float64, int, error)
}

type DashboardHandler struct {
	students StudentCounter
	records  attendance.RecordStore
	payments MonthlyTotaler
	logger   *zap.Logger
	now      func() time.Time
}

func NewDashboardHandler(students StudentCounter, records attendance.RecordStore, payments MonthlyTotaler, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{students: students, records: records, payments: payments, logger: logger, now: time.Now}
}

// Summary returns the headline numbers of the dashboard.
func (h *DashboardHandler) Summary(c *gin.Context) {
	now := h.now()
	today := now.Format(attendance.DateLayout)
	summary := models.DashboardSummary{
		Greeting: greeting(now.Hour()),
		Date:     today,
	}

	var todays []attendance.Record
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		summary.TotalStudents, err = h.students.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		todays, err = h.records.GetByDate(ctx, today)
		return err
	})
	g.Go(func() (err error) {
		summary.MonthPayments, summary.MonthPaymentCount, err = h.payments.SumForMonth(ctx, now.Format("2006-01"))
		return err
	})
	if err := g.Wait(); err != nil {
		internalError(c, h.logger, "Failed to load dashboard", err)
		return
	}

	tally := attendance.TallyRecords(todays)
	summary.PresentToday = tally.Present
	summary.AbsentToday = tally.Absent
	summary.LateToday = tally.Late
	summary.MarkedToday = tally.Total()
	summary.AttendanceToday = tally.Percentage()

	c.JSON(http.StatusOK, gin.H{"success": true, "summary": summary})
}

func greeting(hour int) string {
	switch {
	case hour < 12:
		return "Good Morning"
	case hour < 18:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}
