package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"student_admin_backend/attendance"
)

const attendanceColumns = `student_id, to_char(date, 'YYYY-MM-DD') AS date, status, remarks`

// AttendanceRepository is the Postgres attendance.RecordStore.
type AttendanceRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db, logger: zap.NewNop()}
}

// WithLogger sets the logger used to report rejected bulk rows.
func (r *AttendanceRepository) WithLogger(l *zap.Logger) *AttendanceRepository {
	r.logger = l
	return r
}

func (r *AttendanceRepository) GetByDate(ctx context.Context, date string) ([]attendance.Record, error) {
	records := []attendance.Record{}
	err := r.db.SelectContext(ctx, &records,
		`SELECT `+attendanceColumns+` FROM attendance WHERE date = $1 ORDER BY student_id`, date)
	if err != nil {
		return nil, fmt.Errorf("error fetching attendance for %s: %w", date, err)
	}
	return records, nil
}

func (r *AttendanceRepository) GetByRange(ctx context.Context, start, end string) ([]attendance.Record, error) {
	records := []attendance.Record{}
	err := r.db.SelectContext(ctx, &records,
		`SELECT `+attendanceColumns+` FROM attendance WHERE date BETWEEN $1 AND $2 ORDER BY date, student_id`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("error fetching attendance between %s and %s: %w", start, end, err)
	}
	return records, nil
}

// BulkUpsert writes each row on its own. A rejected row lands in Failed and
// does not undo the rows that were saved. Any other error stops the batch and
// is returned.
func (r *AttendanceRepository) BulkUpsert(ctx context.Context, rows []attendance.Submission) (attendance.BulkResult, error) {
	res := attendance.BulkResult{Failed: []string{}}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		err := r.upsert(ctx, row)
		if err != nil && !rowRejected(err) {
			return res, fmt.Errorf("error saving attendance for %s: %w", row.StudentID, err)
		}
		if err != nil {
			r.logger.Warn("attendance row rejected",
				zap.String("student_id", row.StudentID),
				zap.String("date", row.Date),
				zap.Error(err),
			)
			res.Failed = append(res.Failed, row.StudentID)
			continue
		}
		res.Succeeded++
	}
	return res, nil
}

// rowRejected reports whether err is about the row itself rather than the database.
func rowRejected(err error) bool {
	switch {
	case errors.Is(err, attendance.ErrInvalidStatus),
		errors.Is(err, attendance.ErrInvalidDate),
		errors.Is(err, ErrStudentNotFound):
		return true
	}
	switch pqCode(err) {
	case codeForeignKeyViolation, codeCheckViolation, codeInvalidText:
		return true
	}
	return false
}

func (r *AttendanceRepository) upsert(ctx context.Context, row attendance.Submission) error {
	if !row.Status.Valid() {
		return attendance.ErrInvalidStatus
	}
	if _, err := attendance.ParseDate(row.Date); err != nil {
		return err
	}
	if _, err := uuid.Parse(row.StudentID); err != nil {
		return ErrStudentNotFound
	}

	_, err := r.db.ExecContext(ctx, `
        INSERT INTO attendance (student_id, date, status, remarks)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (student_id, date)
        DO UPDATE SET status = EXCLUDED.status, remarks = EXCLUDED.remarks, updated_at = NOW()
    `, row.StudentID, row.Date, string(row.Status), row.Remarks)
	if pqCode(err) == codeForeignKeyViolation {
		return ErrStudentNotFound
	}
	return err
}

// CountAttended counts the days a student was present or late.
func (r *AttendanceRepository) CountAttended(ctx context.Context, studentID string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM attendance WHERE student_id = $1 AND status IN ('present', 'late')`, studentID)
	if err != nil {
		return 0, fmt.Errorf("error counting attendance: %w", err)
	}
	return n, nil
}
