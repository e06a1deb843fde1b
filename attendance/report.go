package attendance

import (
	"fmt"
	"math"

	"student_admin_backend/models"
)

// Tally counts marks by status.
type Tally struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
}

func (t *Tally) add(s Status) {
	switch s {
	case StatusPresent:
		t.Present++
	case StatusAbsent:
		t.Absent++
	case StatusLate:
		t.Late++
	}
}

// TallyRecords counts the marks of records regardless of date or roster.
func TallyRecords(records []Record) Tally {
	var t Tally
	for _, r := range records {
		t.add(r.Status)
	}
	return t
}

func (t Tally) Total() int { return t.Present + t.Absent + t.Late }

// Percentage is present/total*100 rounded to one decimal, or 0 for an empty tally.
func (t Tally) Percentage() float64 {
	total := t.Total()
	if total == 0 {
		return 0
	}
	return round1(float64(t.Present) / float64(total) * 100)
}

type ReportRow struct {
	StudentID   string  `json:"studentId"`
	StudentCode string  `json:"StudentID"`
	StudentName string  `json:"StudentName"`
	Present     int     `json:"present"`
	Absent      int     `json:"absent"`
	Late        int     `json:"late"`
	Total       int     `json:"total"`
	Percentage  float64 `json:"attendancePercentage"`
}

type Overall struct {
	TotalPresent      int     `json:"totalPresent"`
	TotalAbsent       int     `json:"totalAbsent"`
	TotalLate         int     `json:"totalLate"`
	TotalDays         int     `json:"totalDays"`
	AverageAttendance float64 `json:"averageAttendance"`
}

type Report struct {
	StartDate    string      `json:"startDate"`
	EndDate      string      `json:"endDate"`
	Rows         []ReportRow `json:"studentStats"`
	Overall      Overall     `json:"overall"`
	TotalRecords int         `json:"totalRecords"`
}

// ComputeRangeStatistics tallies the records that fall inside r.
//
// Rows follow roster order. A student without any record in range gets no row,
// and records of students outside the roster are not counted anywhere.
func ComputeRangeStatistics(records []Record, roster []models.Student, r Range) (Report, error) {
	tallies := make(map[string]*Tally)
	counted := 0
	known := make(map[string]bool, len(roster))
	for _, s := range roster {
		known[s.ID] = true
	}

	for _, rec := range records {
		day, err := ParseDate(rec.Date)
		if err != nil {
			return Report{}, err
		}
		if !r.Contains(day) || !known[rec.StudentID] {
			continue
		}
		if !rec.Status.Valid() {
			return Report{}, fmt.Errorf("%w: %q for student %s", ErrInvalidStatus, rec.Status, rec.StudentID)
		}
		t, ok := tallies[rec.StudentID]
		if !ok {
			t = &Tally{}
			tallies[rec.StudentID] = t
		}
		t.add(rec.Status)
		counted++
	}

	rep := Report{
		StartDate:    r.StartString(),
		EndDate:      r.EndString(),
		Rows:         []ReportRow{},
		TotalRecords: counted,
	}
	var overall Tally
	for _, s := range roster {
		t, ok := tallies[s.ID]
		if !ok {
			continue
		}
		// guard against duplicate roster entries
		delete(tallies, s.ID)

		rep.Rows = append(rep.Rows, ReportRow{
			StudentID:   s.ID,
			StudentCode: s.StudentID,
			StudentName: s.StudentName,
			Present:     t.Present,
			Absent:      t.Absent,
			Late:        t.Late,
			Total:       t.Total(),
			Percentage:  t.Percentage(),
		})
		overall.Present += t.Present
		overall.Absent += t.Absent
		overall.Late += t.Late
	}

	rep.Overall = Overall{
		TotalPresent:      overall.Present,
		TotalAbsent:       overall.Absent,
		TotalLate:         overall.Late,
		TotalDays:         overall.Total(),
		AverageAttendance: overall.Percentage(),
	}
	return rep, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
