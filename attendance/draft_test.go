package attendance

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student_admin_backend/models"
)

func roster(ids ...string) []models.Student {
	out := make([]models.Student, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Student{ID: id, StudentID: "S-" + id, StudentName: "Student " + id})
	}
	return out
}

func TestInitializeDraftDefaultsToPresent(t *testing.T) {
	d, err := InitializeDraft(roster("a", "b", "c"), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, d.Len())
	for _, id := range []string{"a", "b", "c"} {
		e, ok := d.Entry(id)
		require.True(t, ok)
		assert.Equal(t, Entry{Status: StatusPresent}, e)
	}
}

func TestInitializeDraftOverlaysExisting(t *testing.T) {
	existing := []Record{
		{StudentID: "b", Date: "2024-03-01", Status: StatusLate, Remarks: "bus"},
		{StudentID: "ghost", Date: "2024-03-01", Status: StatusAbsent},
	}
	d, err := InitializeDraft(roster("a", "b"), existing)
	require.NoError(t, err)

	assert.Equal(t, 2, d.Len())
	e, _ := d.Entry("b")
	assert.Equal(t, StatusLate, e.Status)
	assert.Equal(t, "bus", e.Remarks)
	_, ok := d.Entry("ghost")
	assert.False(t, ok)
}

func TestInitializeDraftRejectsMalformedStatus(t *testing.T) {
	_, err := InitializeDraft(roster("a"), []Record{{StudentID: "a", Date: "2024-03-01", Status: "excused"}})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestInitializeDraftEmptyRoster(t *testing.T) {
	d, err := InitializeDraft(nil, []Record{{StudentID: "a", Date: "2024-03-01", Status: StatusAbsent}})
	require.NoError(t, err)
	assert.Equal(t, 0, d.Len())

	rows, err := d.BuildSubmission("2024-03-01")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestInitializeDraftDuplicateRosterIDs(t *testing.T) {
	d, err := InitializeDraft(roster("a", "b", "a"), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, d.StudentIDs())
}

func TestSetStatus(t *testing.T) {
	d, _ := InitializeDraft(roster("a", "b"), nil)

	tests := []struct {
		name    string
		id      string
		status  Status
		wantErr error
	}{
		{name: "absent", id: "a", status: StatusAbsent},
		{name: "late", id: "b", status: StatusLate},
		{name: "invalid status", id: "a", status: "excused", wantErr: ErrInvalidStatus},
		{name: "empty status", id: "a", status: "", wantErr: ErrInvalidStatus},
		{name: "upper case", id: "a", status: "Present", wantErr: ErrInvalidStatus},
		{name: "unknown student", id: "zz", status: StatusAbsent, wantErr: ErrUnknownStudent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := d.SetStatus(tt.id, tt.status)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			e, _ := next.Entry(tt.id)
			assert.Equal(t, tt.status, e.Status)

			orig, _ := d.Entry(tt.id)
			assert.Equal(t, StatusPresent, orig.Status, "receiver must not change")
		})
	}
}

func TestSetRemarks(t *testing.T) {
	d, _ := InitializeDraft(roster("a"), nil)

	next, err := d.SetRemarks("a", "sick note")
	require.NoError(t, err)
	e, _ := next.Entry("a")
	assert.Equal(t, "sick note", e.Remarks)
	assert.Equal(t, StatusPresent, e.Status)

	orig, _ := d.Entry("a")
	assert.Empty(t, orig.Remarks)

	_, err = d.SetRemarks("nobody", "x")
	assert.True(t, errors.Is(err, ErrUnknownStudent))
}

func TestMarkAllKeepsRemarks(t *testing.T) {
	d, _ := InitializeDraft(roster("a", "b"), []Record{{StudentID: "a", Date: "2024-03-01", Status: StatusLate, Remarks: "traffic"}})

	next, err := d.MarkAll(StatusAbsent)
	require.NoError(t, err)
	for _, id := range next.StudentIDs() {
		e, _ := next.Entry(id)
		assert.Equal(t, StatusAbsent, e.Status)
	}
	a, _ := next.Entry("a")
	assert.Equal(t, "traffic", a.Remarks)

	_, err = d.MarkAll("holiday")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	a, _ = d.Entry("a")
	assert.Equal(t, StatusLate, a.Status)
}

func TestBuildSubmission(t *testing.T) {
	d, _ := InitializeDraft(roster("c", "a", "b"), nil)
	d, _ = d.SetStatus("a", StatusAbsent)
	d, _ = d.SetRemarks("a", "flu")

	rows, err := d.BuildSubmission("2024-03-05")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{rows[0].StudentID, rows[1].StudentID, rows[2].StudentID})
	for _, r := range rows {
		assert.Equal(t, "2024-03-05", r.Date)
	}
	assert.Equal(t, Submission{StudentID: "a", Status: StatusAbsent, Remarks: "flu", Date: "2024-03-05"}, rows[1])

	_, err = d.BuildSubmission("05/03/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDraftStats(t *testing.T) {
	d, _ := InitializeDraft(roster("a", "b", "c", "d"), nil)
	d, _ = d.SetStatus("b", StatusAbsent)
	d, _ = d.SetStatus("c", StatusLate)

	assert.Equal(t, Tally{Present: 2, Absent: 1, Late: 1}, d.Stats())
}

// memStore is an in-memory RecordStore keyed by (student, date).
type memStore struct {
	rows  map[[2]string]Record
	known map[string]bool
}

func newMemStore(r []models.Student) *memStore {
	m := &memStore{rows: map[[2]string]Record{}, known: map[string]bool{}}
	for _, s := range r {
		m.known[s.ID] = true
	}
	return m
}

func (m *memStore) GetByDate(_ context.Context, date string) ([]Record, error) {
	var out []Record
	for k, r := range m.rows {
		if k[1] == date {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) BulkUpsert(_ context.Context, rows []Submission) (BulkResult, error) {
	res := BulkResult{Failed: []string{}}
	for _, r := range rows {
		if !m.known[r.StudentID] || !r.Status.Valid() {
			res.Failed = append(res.Failed, r.StudentID)
			continue
		}
		m.rows[[2]string{r.StudentID, r.Date}] = Record{StudentID: r.StudentID, Date: r.Date, Status: r.Status, Remarks: r.Remarks}
		res.Succeeded++
	}
	return res, nil
}

func (m *memStore) GetByRange(_ context.Context, start, end string) ([]Record, error) {
	var out []Record
	for k, r := range m.rows {
		if k[1] >= start && k[1] <= end {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestSubmissionRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := roster("a", "b", "c")
	store := newMemStore(r)

	d, _ := InitializeDraft(r, nil)
	d, _ = d.SetStatus("b", StatusLate)
	d, _ = d.SetRemarks("b", "doctor")
	d, _ = d.SetStatus("c", StatusAbsent)

	rows, err := d.BuildSubmission("2024-04-10")
	require.NoError(t, err)
	res, err := store.BulkUpsert(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Succeeded)
	assert.Empty(t, res.Failed)

	persisted, err := store.GetByDate(ctx, "2024-04-10")
	require.NoError(t, err)
	reloaded, err := InitializeDraft(r, persisted)
	require.NoError(t, err)
	for _, id := range d.StudentIDs() {
		want, _ := d.Entry(id)
		got, _ := reloaded.Entry(id)
		assert.Equal(t, want, got, id)
	}
}
