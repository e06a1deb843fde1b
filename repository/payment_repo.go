package repository

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"student_admin_backend/models"
)

const paymentSelect = `
    SELECT p.id, p.receipt_number, p.student_id, s.student_code, s.student_name,
           p.amount, p.payment_method, p.payment_type, p.month, p.remarks, p.payment_date
    FROM payments p
    JOIN students s ON s.id = p.student_id`

type PaymentRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db, now: time.Now}
}

// List returns payments newest first. search matches student name, code or receipt number.
func (r *PaymentRepository) List(ctx context.Context, search string) ([]models.Payment, error) {
	query := paymentSelect
	var args []interface{}
	if search != "" {
		query += ` WHERE s.student_name ILIKE $1 OR s.student_code ILIKE $1 OR p.receipt_number ILIKE $1`
		args = append(args, likePattern(search))
	}
	query += ` ORDER BY p.payment_date DESC`

	payments := []models.Payment{}
	if err := r.db.SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, fmt.Errorf("error listing payments: %w", err)
	}
	return payments, nil
}

func (r *PaymentRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Payment, error) {
	payments := []models.Payment{}
	err := r.db.SelectContext(ctx, &payments, paymentSelect+` WHERE p.student_id = $1 ORDER BY p.payment_date DESC`, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing student payments: %w", err)
	}
	return payments, nil
}

func (r *PaymentRepository) Create(ctx context.Context, req models.CreatePaymentRequest) (models.Payment, error) {
	id := uuid.New()
	var p models.Payment
	err := r.db.GetContext(ctx, &p, `
        WITH p AS (
            INSERT INTO payments (id, receipt_number, student_id, amount, payment_method, payment_type, month, remarks)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
            RETURNING *
        )
        SELECT p.id, p.receipt_number, p.student_id, s.student_code, s.student_name,
               p.amount, p.payment_method, p.payment_type, p.month, p.remarks, p.payment_date
        FROM p
        JOIN students s ON s.id = p.student_id`,
		id.String(), r.receiptNumber(id), req.StudentID, req.Amount,
		req.PaymentMethod, req.PaymentType, req.Month, req.Remarks,
	)
	if pqCode(err) == codeForeignKeyViolation {
		return models.Payment{}, ErrStudentNotFound
	}
	if err != nil {
		return models.Payment{}, fmt.Errorf("error creating payment: %w", err)
	}
	return p, nil
}

// receiptNumber has the form RCP-YYYYMMDD-XXXXXX.
func (r *PaymentRepository) receiptNumber(id uuid.UUID) string {
	suffix := strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:6])
	return fmt.Sprintf("RCP-%s-%s", r.now().Format("20060102"), suffix)
}

func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting payment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting payment: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PaymentRepository) Statistics(ctx context.Context) (models.PaymentStatistics, error) {
	var st models.PaymentStatistics
	err := r.db.GetContext(ctx, &st, `
        SELECT COALESCE(SUM(amount), 0) AS total_amount,
               COUNT(*) AS total_payments,
               COUNT(DISTINCT student_id) AS unique_students
        FROM payments`)
	if err != nil {
		return models.PaymentStatistics{}, fmt.Errorf("error computing payment statistics: %w", err)
	}
	if st.TotalPayments > 0 {
		st.AveragePayment = math.Round(st.TotalAmount/float64(st.TotalPayments)*100) / 100
	}
	return st, nil
}

// SumForMonth totals the payments received in month (YYYY-MM).
func (r *PaymentRepository) SumForMonth(ctx context.Context, month string) (float64, int, error) {
	var row struct {
		Total float64 `db:"total"`
		Count int     `db:"count"`
	}
	err := r.db.GetContext(ctx, &row, `
        SELECT COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count
        FROM payments
        WHERE to_char(payment_date, 'YYYY-MM') = $1`, month)
	if err != nil {
		return 0, 0, fmt.Errorf("error summing payments for %s: %w", month, err)
	}
	return row.Total, row.Count, nil
}

// HasMonthlyFee reports whether the student paid the monthly fee for month.
func (r *PaymentRepository) HasMonthlyFee(ctx context.Context, studentID, month string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
        SELECT EXISTS (
            SELECT 1 FROM payments
            WHERE student_id = $1 AND payment_type = $2 AND month = $3
        )`, studentID, models.PaymentTypeMonthlyFee, month)
	if err != nil {
		return false, fmt.Errorf("error checking monthly fee: %w", err)
	}
	return exists, nil
}
