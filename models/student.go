package models

import "time"

type Student struct {
	ID          string    `json:"id" db:"id"`
	StudentID   string    `json:"StudentID" db:"student_code"`
	StudentName string    `json:"StudentName" db:"student_name"`
	Email       string    `json:"email" db:"email"`
	PhoneNo     string    `json:"phoneNo" db:"phone_no"`
	Address     string    `json:"address" db:"address"`
	DateOfBirth string    `json:"DateOfBirth" db:"date_of_birth"`
	Gender      string    `json:"gender" db:"gender"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// StudentRequest is shared by the add and update forms.
type StudentRequest struct {
	StudentID   string `json:"StudentID" binding:"required"`
	StudentName string `json:"StudentName" binding:"required,min=2"`
	Email       string `json:"email" binding:"omitempty,email"`
	PhoneNo     string `json:"phoneNo" binding:"required,phone10"`
	Address     string `json:"address" binding:"required"`
	DateOfBirth string `json:"DateOfBirth" binding:"required,datetime=2006-01-02"`
	Gender      string `json:"gender" binding:"required,oneof=male female other"`
}

type StudentDetailResponse struct {
	Student
	TotalAttendance int    `json:"totalAttendance"`
	PaymentStatus   string `json:"paymentStatus"`
}
