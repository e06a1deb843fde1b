package attendance

import (
	"context"
	"fmt"
	"time"

	"student_admin_backend/models"
)

// DateLayout is the wire and storage format of attendance dates.
const DateLayout = "2006-01-02"

type Record struct {
	StudentID string `json:"studentId" db:"student_id"`
	Date      string `json:"date" db:"date"`
	Status    Status `json:"status" db:"status"`
	Remarks   string `json:"remarks" db:"remarks"`
}

// Submission is one row of a bulk upsert.
type Submission struct {
	StudentID string `json:"studentId"`
	Status    Status `json:"status"`
	Remarks   string `json:"remarks"`
	Date      string `json:"date"`
}

type BulkResult struct {
	Succeeded int      `json:"succeeded"`
	Failed    []string `json:"failed"`
}

// RosterProvider supplies the enrolled students.
type RosterProvider interface {
	ListStudents(ctx context.Context) ([]models.Student, error)
}

// RecordStore persists daily attendance rows.
type RecordStore interface {
	GetByDate(ctx context.Context, date string) ([]Record, error)
	BulkUpsert(ctx context.Context, rows []Submission) (BulkResult, error)
	GetByRange(ctx context.Context, start, end string) ([]Record, error)
}

// ParseDate validates a YYYY-MM-DD date.
func ParseDate(v string) (time.Time, error) {
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, v)
	}
	return t, nil
}

// Range is an inclusive date interval.
type Range struct {
	Start time.Time
	End   time.Time
}

func NewRange(start, end string) (Range, error) {
	s, err := ParseDate(start)
	if err != nil {
		return Range{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return Range{}, err
	}
	if s.After(e) {
		return Range{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange, start, end)
	}
	return Range{Start: s, End: e}, nil
}

// LastDays returns the range from n days before end up to end, both inclusive.
func LastDays(end time.Time, n int) Range {
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return Range{Start: e.AddDate(0, 0, -n), End: e}
}

func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

func (r Range) StartString() string { return r.Start.Format(DateLayout) }
func (r Range) EndString() string   { return r.End.Format(DateLayout) }
