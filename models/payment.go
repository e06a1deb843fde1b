package models

import "time"

const (
	PaymentTypeMonthlyFee = "monthly_fee"

	PaymentStatusCompleted = "completed"
	PaymentStatusPending   = "pending"
)

type Payment struct {
	ID            string    `json:"id" db:"id"`
	ReceiptNumber string    `json:"receiptNumber" db:"receipt_number"`
	StudentRefID  string    `json:"studentId" db:"student_id"`
	StudentID     string    `json:"StudentID" db:"student_code"`
	StudentName   string    `json:"StudentName" db:"student_name"`
	Amount        float64   `json:"amount" db:"amount"`
	PaymentMethod string    `json:"paymentMethod" db:"payment_method"`
	PaymentType   string    `json:"paymentType" db:"payment_type"`
	Month         string    `json:"month" db:"month"`
	Remarks       string    `json:"remarks" db:"remarks"`
	PaymentDate   time.Time `json:"paymentDate" db:"payment_date"`
}

type CreatePaymentRequest struct {
	StudentID     string  `json:"studentId" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" binding:"required,oneof=cash card bank_transfer online"`
	PaymentType   string  `json:"paymentType" binding:"required,oneof=monthly_fee registration exam_fee other"`
	Month         string  `json:"month" binding:"omitempty,datetime=2006-01"`
	Remarks       string  `json:"remarks"`
}

type PaymentStatistics struct {
	TotalAmount    float64 `json:"totalAmount" db:"total_amount"`
	TotalPayments  int     `json:"totalPayments" db:"total_payments"`
	UniqueStudents int     `json:"uniqueStudents" db:"unique_students"`
	AveragePayment float64 `json:"averagePayment" db:"-"`
}
