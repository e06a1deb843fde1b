package client

import (
	"context"
	"fmt"

	"student_admin_backend/attendance"
	"student_admin_backend/models"
	"student_admin_backend/notify"
)

// AttendanceBoard is the marking page: pick a date, edit the draft, submit.
type AttendanceBoard struct {
	roster  attendance.RosterProvider
	store   attendance.RecordStore
	notify  notify.Notifier
	session *attendance.Session
}

func NewAttendanceBoard(roster attendance.RosterProvider, store attendance.RecordStore, n notify.Notifier) *AttendanceBoard {
	return &AttendanceBoard{
		roster:  roster,
		store:   store,
		notify:  n,
		session: attendance.NewSession(),
	}
}

// SelectDate switches to date and loads its roster and marks. A load that
// finishes after a newer selection is discarded.
func (b *AttendanceBoard) SelectDate(ctx context.Context, date string) error {
	ticket, err := b.session.Select(date)
	if err != nil {
		b.notify.Error("Please pick a valid date")
		return err
	}
	return b.load(ctx, ticket)
}

// load fetches the date of ticket and installs it only while ticket is current.
func (b *AttendanceBoard) load(ctx context.Context, ticket attendance.Ticket) error {
	students, existing, err := attendance.LoadDate(ctx, b.roster, b.store, ticket.Date())
	if !b.session.Current(ticket) {
		return nil
	}
	if err != nil {
		b.notify.Error("Failed to load attendance")
		return fmt.Errorf("error loading attendance for %s: %w", ticket.Date(), err)
	}

	if _, err := b.session.Load(ticket, students, existing); err != nil {
		b.notify.Error("Failed to load attendance")
		return err
	}
	return nil
}

func (b *AttendanceBoard) Date() string { return b.session.Date() }

func (b *AttendanceBoard) Draft() (attendance.Draft, error) { return b.session.Draft() }

// Roster is the student list the current draft was built from.
func (b *AttendanceBoard) Roster() []models.Student { return b.session.Roster() }

func (b *AttendanceBoard) SetStatus(studentID string, status attendance.Status) error {
	return b.session.Update(func(d attendance.Draft) (attendance.Draft, error) {
		return d.SetStatus(studentID, status)
	})
}

func (b *AttendanceBoard) SetRemarks(studentID, remarks string) error {
	return b.session.Update(func(d attendance.Draft) (attendance.Draft, error) {
		return d.SetRemarks(studentID, remarks)
	})
}

func (b *AttendanceBoard) MarkAll(status attendance.Status) error {
	err := b.session.Update(func(d attendance.Draft) (attendance.Draft, error) {
		return d.MarkAll(status)
	})
	if err != nil {
		return err
	}
	b.notify.Success(fmt.Sprintf("Marked all students as %s", status))
	return nil
}

// Submit saves the draft and reloads the date unless another date was picked
// meanwhile. Rejected rows come back as a *attendance.PartialSubmissionError;
// the saved rows stay saved.
func (b *AttendanceBoard) Submit(ctx context.Context) (attendance.BulkResult, error) {
	ticket, rows, err := b.session.Submission()
	if err != nil {
		return attendance.BulkResult{}, err
	}

	res, err := b.store.BulkUpsert(ctx, rows)
	if err != nil {
		b.notify.Error("Failed to save attendance")
		return res, fmt.Errorf("error saving attendance for %s: %w", ticket.Date(), err)
	}

	var partial error
	if res.Succeeded > 0 {
		b.notify.Success(fmt.Sprintf("Attendance saved for %d students", res.Succeeded))
	}
	if len(res.Failed) > 0 {
		b.notify.Error(fmt.Sprintf("%d records failed to save", len(res.Failed)))
		partial = &attendance.PartialSubmissionError{Succeeded: res.Succeeded, Failed: res.Failed}
	}

	if err := b.load(ctx, ticket); err != nil && partial == nil {
		return res, err
	}
	return res, partial
}

// Report computes the statistics of [start, end] from the roster and the raw records.
func (b *AttendanceBoard) Report(ctx context.Context, start, end string) (attendance.Report, error) {
	r, err := attendance.NewRange(start, end)
	if err != nil {
		return attendance.Report{}, err
	}
	return attendance.BuildReport(ctx, b.roster, b.store, r)
}
