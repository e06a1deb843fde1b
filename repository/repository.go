package repository

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrNotFound             = errors.New("record not found")
	ErrDuplicateStudentCode = errors.New("student ID already exists")
	ErrStudentNotFound      = errors.New("student not found")
)

// Postgres error codes
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeInvalidText         = "22P02"
)

// Repository groups the Postgres stores.
type Repository struct {
	Students   *StudentRepository
	Attendance *AttendanceRepository
	Payments   *PaymentRepository
	Admins     *AdminRepository
}

func New(db *sqlx.DB) *Repository {
	return &Repository{
		Students:   NewStudentRepository(db),
		Attendance: NewAttendanceRepository(db),
		Payments:   NewPaymentRepository(db),
		Admins:     NewAdminRepository(db),
	}
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func likePattern(search string) string {
	return "%" + search + "%"
}
