package attendance

import (
	"fmt"

	"student_admin_backend/models"
)

// Entry is the editable mark of one student in a draft.
type Entry struct {
	Status  Status `json:"status"`
	Remarks string `json:"remarks"`
}

// Draft holds the not-yet-submitted marks of every roster student for one date.
// A Draft is a value: every edit returns a new Draft and leaves the receiver untouched.
type Draft struct {
	order   []string
	entries map[string]Entry
}

// InitializeDraft marks every roster student present, then overlays the
// persisted records for the date. Records of students outside the roster are
// ignored. Duplicate roster IDs keep their first position.
func InitializeDraft(roster []models.Student, existing []Record) (Draft, error) {
	d := Draft{
		order:   make([]string, 0, len(roster)),
		entries: make(map[string]Entry, len(roster)),
	}
	for _, s := range roster {
		if _, dup := d.entries[s.ID]; dup {
			continue
		}
		d.order = append(d.order, s.ID)
		d.entries[s.ID] = Entry{Status: StatusPresent}
	}

	for _, r := range existing {
		if _, ok := d.entries[r.StudentID]; !ok {
			continue
		}
		if !r.Status.Valid() {
			return Draft{}, fmt.Errorf("%w: %q for student %s", ErrInvalidStatus, r.Status, r.StudentID)
		}
		d.entries[r.StudentID] = Entry{Status: r.Status, Remarks: r.Remarks}
	}
	return d, nil
}

func (d Draft) Len() int { return len(d.order) }

// StudentIDs returns the draft keys in roster order.
func (d Draft) StudentIDs() []string {
	ids := make([]string, len(d.order))
	copy(ids, d.order)
	return ids
}

func (d Draft) Entry(studentID string) (Entry, bool) {
	e, ok := d.entries[studentID]
	return e, ok
}

// SetStatus fails with ErrUnknownStudent for IDs that are not in the draft.
func (d Draft) SetStatus(studentID string, status Status) (Draft, error) {
	if !status.Valid() {
		return d, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	e, ok := d.entries[studentID]
	if !ok {
		return d, fmt.Errorf("%w: %s", ErrUnknownStudent, studentID)
	}
	next := d.clone()
	e.Status = status
	next.entries[studentID] = e
	return next, nil
}

func (d Draft) SetRemarks(studentID, remarks string) (Draft, error) {
	e, ok := d.entries[studentID]
	if !ok {
		return d, fmt.Errorf("%w: %s", ErrUnknownStudent, studentID)
	}
	next := d.clone()
	e.Remarks = remarks
	next.entries[studentID] = e
	return next, nil
}

// MarkAll sets every status and keeps remarks.
func (d Draft) MarkAll(status Status) (Draft, error) {
	if !status.Valid() {
		return d, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	next := d.clone()
	for id, e := range next.entries {
		e.Status = status
		next.entries[id] = e
	}
	return next, nil
}

// BuildSubmission returns one row per roster student, in roster order, stamped with date.
func (d Draft) BuildSubmission(date string) ([]Submission, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}
	rows := make([]Submission, 0, len(d.order))
	for _, id := range d.order {
		e := d.entries[id]
		rows = append(rows, Submission{
			StudentID: id,
			Status:    e.Status,
			Remarks:   e.Remarks,
			Date:      date,
		})
	}
	return rows, nil
}

// Stats counts the draft marks.
func (d Draft) Stats() Tally {
	var t Tally
	for _, id := range d.order {
		t.add(d.entries[id].Status)
	}
	return t
}

func (d Draft) clone() Draft {
	entries := make(map[string]Entry, len(d.entries))
	for id, e := range d.entries {
		entries[id] = e
	}
	// order is never written after InitializeDraft, sharing it is safe
	return Draft{order: d.order, entries: entries}
}
