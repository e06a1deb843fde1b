package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"student_admin_backend/models"
	"student_admin_backend/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentStore interface {
	List(ctx context.Context, search string) ([]models.Payment, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Payment, error)
	Create(ctx context.Context, req models.CreatePaymentRequest) (models.Payment, error)
	Delete(ctx context.Context, id string) error
	Statistics(ctx context.Context) (models.PaymentStatistics, error)
}

type PaymentHandler struct {
	payments PaymentStore
	logger   *zap.Logger
}

func NewPaymentHandler(payments PaymentStore, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, logger: logger}
}

func (h *PaymentHandler) GetPayments(c *gin.Context) {
	payments, err := h.payments.List(c.Request.Context(), strings.TrimSpace(c.Query("search")))
	if err != nil {
		internalError(c, h.logger, "Failed to load payments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "payments": payments})
}

func (h *PaymentHandler) GetStudentPayments(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		fail(c, http.StatusNotFound, "Student not found")
		return
	}

	payments, err := h.payments.ListByStudent(c.Request.Context(), id)
	if err != nil {
		internalError(c, h.logger, "Failed to load payments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "payments": payments})
}

func (h *PaymentHandler) GetStatistics(c *gin.Context) {
	stats, err := h.payments.Statistics(c.Request.Context())
	if err != nil {
		internalError(c, h.logger, "Failed to load payment statistics", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "statistics": stats})
}

func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Please fill in all required fields: "+err.Error())
		return
	}
	if req.PaymentType == models.PaymentTypeMonthlyFee && req.Month == "" {
		fail(c, http.StatusBadRequest, "Month is required for monthly fees")
		return
	}
	if _, err := uuid.Parse(req.StudentID); err != nil {
		fail(c, http.StatusNotFound, "Student not found")
		return
	}
	if req.PaymentType != models.PaymentTypeMonthlyFee {
		req.Month = ""
	}

	payment, err := h.payments.Create(c.Request.Context(), req)
	if errors.Is(err, repository.ErrStudentNotFound) {
		fail(c, http.StatusNotFound, "Student not found")
		return
	} else if err != nil {
		internalError(c, h.logger, "Failed to add payment", err)
		return
	}

	h.logger.Info("payment recorded",
		zap.String("receipt", payment.ReceiptNumber),
		zap.String("student_id", payment.StudentRefID),
		zap.Float64("amount", payment.Amount),
	)
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Payment added successfully!", "payment": payment})
}

func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		fail(c, http.StatusNotFound, "Payment not found")
		return
	}

	err := h.payments.Delete(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		fail(c, http.StatusNotFound, "Payment not found")
		return
	} else if err != nil {
		internalError(c, h.logger, "Failed to delete payment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment deleted successfully!"})
}
