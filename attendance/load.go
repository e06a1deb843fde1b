package attendance

import (
	"context"

	"golang.org/x/sync/errgroup"

	"student_admin_backend/models"
)

// BuildReport fetches the roster and the records of r concurrently and
// computes the range statistics once both have arrived.
func BuildReport(ctx context.Context, roster RosterProvider, store RecordStore, r Range) (Report, error) {
	var (
		students []models.Student
		records  []Record
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		students, err = roster.ListStudents(gctx)
		return err
	})
	g.Go(func() (err error) {
		records, err = store.GetByRange(gctx, r.StartString(), r.EndString())
		return err
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	return ComputeRangeStatistics(records, students, r)
}

// LoadDate fetches the roster and the records of one date concurrently.
func LoadDate(ctx context.Context, roster RosterProvider, store RecordStore, date string) ([]models.Student, []Record, error) {
	var (
		students []models.Student
		records  []Record
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		students, err = roster.ListStudents(gctx)
		return err
	})
	g.Go(func() (err error) {
		records, err = store.GetByDate(gctx, date)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return students, records, nil
}
