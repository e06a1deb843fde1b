package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"student_admin_backend/models"
	"student_admin_backend/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StudentStore interface {
	List(ctx context.Context, search string) ([]models.Student, error)
	GetByID(ctx context.Context, id string) (models.Student, error)
	Create(ctx context.Context, req models.StudentRequest) (models.Student, error)
	Update(ctx context.Context, id string, req models.StudentRequest) (models.Student, error)
	Delete(ctx context.Context, id string) error
}

type AttendanceCounter interface {
	CountAttended(ctx context.Context, studentID string) (int, error)
}

type MonthlyFeeChecker interface {
	HasMonthlyFee(ctx context.Context, studentID, month string) (bool, error)
}

type StudentHandler struct {
	students   StudentStore
	attendance AttendanceCounter
	payments   MonthlyFeeChecker
	logger     *zap.Logger
	now        func() time.Time
}

func NewStudentHandler(students StudentStore, attendance AttendanceCounter, payments MonthlyFeeChecker, logger *zap.Logger) *StudentHandler {
	return &StudentHandler{
		students:   students,
		attendance: attendance,
		payments:   payments,
		logger:     logger,
		now:        time.Now,
	}
}

func (h *StudentHandler) GetStudents(c *gin.Context) {
	students, err := h.students.List(c.Request.Context(), strings.TrimSpace(c.Query("search")))
	if err != nil {
		internalError(c, h.logger, "Failed to fetch students", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "students": students, "count": len(students)})
}

// GetStudent returns the student with attendance and fee status for the edit page.
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		fail(c, http.StatusNotFound, "Student not found")
		return
	}
	ctx := c.Request.Context()

	student, err := h.students.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		fail(c, http.StatusNotFound, "Student not found")
		return
	} else if err != nil {
		internalError(c, h.logger, "Failed to fetch student", err)
		return
	}

	attended, err := h.attendance.CountAttended(ctx, id)
	if err != nil {
		internalError(c, h.logger, "Failed to count attendance", err)
		return
	}

	paid, err := h.payments.HasMonthlyFee(ctx, id, h.now().Format("2006-01"))
	if err != nil {
		internalError(c, h.logger, "Failed to check payment status", err)
		return
	}
	status := models.PaymentStatusPending
	if paid {
		status = models.PaymentStatusCompleted
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"student": models.StudentDetailResponse{
			Student:         student,
			TotalAttendance: attended,
			PaymentStatus:   status,
		},
	})
}

func (h *StudentHandler) CreateStudent(c *gin.Context) {
	req, ok := bindStudent(c)
	if !ok {
		return
	}

	student, err := h.students.Create(c.Request.Context(), req)
	if errors.Is(err, repository.ErrDuplicateStudentCode) {
		fail(c, http.StatusConflict, "Student ID already exists")
		return
	} else if err != nil {
		internalError(c, h.logger, "Failed to add student", err)
		return
	}

	h.logger.Info("student added", zap.String("id", student.ID), zap.String("student_code", student.StudentID))
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Student added successfully!", "student": student})
}

func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		fail(c, http.StatusNotFound, "Student not found")
		return
	}
	req, ok := bindStudent(c)
	if !ok {
		return
	}

	student, err := h.students.Update(c.Request.Context(), id, req)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		fail(c, http.StatusNotFound, "Student not found")
		return
	case errors.Is(err, repository.ErrDuplicateStudentCode):
		fail(c, http.StatusConflict, "Student ID already exists")
		return
	case err != nil:
		internalError(c, h.logger, "Failed to update student", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Student information updated successfully!", "student": student})
}

func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		fail(c, http.StatusNotFound, "Student not found")
		return
	}

	err := h.students.Delete(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		fail(c, http.StatusNotFound, "Student not found")
		return
	} else if err != nil {
		internalError(c, h.logger, "Failed to delete student", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Student deleted successfully"})
}

// bindStudent trims the form fields before validation.
func bindStudent(c *gin.Context) (models.StudentRequest, bool) {
	var req models.StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return req, false
	}
	req.StudentID = strings.TrimSpace(req.StudentID)
	req.StudentName = strings.TrimSpace(req.StudentName)
	req.Email = strings.TrimSpace(req.Email)
	req.PhoneNo = strings.TrimSpace(req.PhoneNo)
	req.Address = strings.TrimSpace(req.Address)

	if req.StudentID == "" || len(req.StudentName) < 2 || req.Address == "" {
		fail(c, http.StatusBadRequest, "Student ID, a name of at least 2 characters and an address are required")
		return req, false
	}
	return req, true
}
