package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"student_admin_backend/models"
)

const studentColumns = `id, student_code, student_name, email, phone_no, address,
    to_char(date_of_birth, 'YYYY-MM-DD') AS date_of_birth, gender, created_at, updated_at`

type StudentRepository struct {
	db *sqlx.DB
}

func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students ordered by school code. A non-empty search matches
// name, code, phone or address case-insensitively.
func (r *StudentRepository) List(ctx context.Context, search string) ([]models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students`
	var args []interface{}
	if search != "" {
		query += ` WHERE student_name ILIKE $1 OR student_code ILIKE $1 OR phone_no ILIKE $1 OR address ILIKE $1`
		args = append(args, likePattern(search))
	}
	query += ` ORDER BY student_code ASC`

	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	return students, nil
}

// ListStudents returns the whole roster.
func (r *StudentRepository) ListStudents(ctx context.Context) ([]models.Student, error) {
	return r.List(ctx, "")
}

func (r *StudentRepository) GetByID(ctx context.Context, id string) (models.Student, error) {
	var s models.Student
	err := r.db.GetContext(ctx, &s, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Student{}, ErrNotFound
	}
	if err != nil {
		return models.Student{}, fmt.Errorf("error fetching student: %w", err)
	}
	return s, nil
}

func (r *StudentRepository) Create(ctx context.Context, req models.StudentRequest) (models.Student, error) {
	var s models.Student
	err := r.db.GetContext(ctx, &s, `
        INSERT INTO students (id, student_code, student_name, email, phone_no, address, date_of_birth, gender)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING `+studentColumns,
		uuid.NewString(), req.StudentID, req.StudentName, req.Email, req.PhoneNo, req.Address, req.DateOfBirth, req.Gender,
	)
	if pqCode(err) == codeUniqueViolation {
		return models.Student{}, ErrDuplicateStudentCode
	}
	if err != nil {
		return models.Student{}, fmt.Errorf("error creating student: %w", err)
	}
	return s, nil
}

func (r *StudentRepository) Update(ctx context.Context, id string, req models.StudentRequest) (models.Student, error) {
	var s models.Student
	err := r.db.GetContext(ctx, &s, `
        UPDATE students
        SET student_code = $2, student_name = $3, email = $4, phone_no = $5,
            address = $6, date_of_birth = $7, gender = $8, updated_at = NOW()
        WHERE id = $1
        RETURNING `+studentColumns,
		id, req.StudentID, req.StudentName, req.Email, req.PhoneNo, req.Address, req.DateOfBirth, req.Gender,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Student{}, ErrNotFound
	case pqCode(err) == codeUniqueViolation:
		return models.Student{}, ErrDuplicateStudentCode
	case err != nil:
		return models.Student{}, fmt.Errorf("error updating student: %w", err)
	}
	return s, nil
}

func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM students`); err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return n, nil
}
