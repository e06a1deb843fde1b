package attendance

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionDiscardsStaleLoad(t *testing.T) {
	s := NewSession()
	r := roster("a", "b")

	first, err := s.Select("2024-06-01")
	require.NoError(t, err)
	second, err := s.Select("2024-06-02")
	require.NoError(t, err)

	// the newer fetch resolves first
	ok, err := s.Load(second, r, []Record{{StudentID: "a", Date: "2024-06-02", Status: StatusLate}})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Load(first, r, []Record{{StudentID: "a", Date: "2024-06-01", Status: StatusAbsent}})
	require.NoError(t, err)
	assert.False(t, ok)

	d, err := s.Draft()
	require.NoError(t, err)
	e, _ := d.Entry("a")
	assert.Equal(t, StatusLate, e.Status)
	assert.Equal(t, "2024-06-02", s.Date())
}

func TestSessionStaleLoadSkipsMalformedData(t *testing.T) {
	s := NewSession()
	stale, err := s.Select("2024-06-01")
	require.NoError(t, err)
	_, err = s.Select("2024-06-02")
	require.NoError(t, err)
	assert.False(t, s.Current(stale))

	ok, err := s.Load(stale, roster("a"), []Record{{StudentID: "a", Date: "2024-06-01", Status: "excused"}})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionNotLoaded(t *testing.T) {
	s := NewSession()
	_, err := s.Draft()
	assert.ErrorIs(t, err, ErrNotLoaded)

	_, err = s.Select("2024-06-01")
	require.NoError(t, err)
	_, _, err = s.Submission()
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.ErrorIs(t, s.Update(func(d Draft) (Draft, error) { return d, nil }), ErrNotLoaded)

	_, err = s.Select("June 1st")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestSessionUpdateAndSubmission(t *testing.T) {
	s := NewSession()
	tk, _ := s.Select("2024-06-03")
	_, err := s.Load(tk, roster("a", "b"), nil)
	require.NoError(t, err)

	require.NoError(t, s.Update(func(d Draft) (Draft, error) { return d.SetStatus("b", StatusAbsent) }))
	err = s.Update(func(d Draft) (Draft, error) { return d.MarkAll("gone") })
	assert.ErrorIs(t, err, ErrInvalidStatus)

	sub, rows, err := s.Submission()
	require.NoError(t, err)
	assert.Equal(t, tk, sub)
	assert.True(t, s.Current(sub))
	require.Len(t, rows, 2)
	assert.Equal(t, StatusPresent, rows[0].Status)
	assert.Equal(t, StatusAbsent, rows[1].Status)
	assert.Equal(t, "2024-06-03", rows[1].Date)
}

func TestSessionConcurrentSelects(t *testing.T) {
	s := NewSession()
	r := roster("a")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tk, err := s.Select("2024-06-04")
			if err != nil {
				return
			}
			_, _ = s.Load(tk, r, nil)
		}()
	}
	wg.Wait()

	last, _ := s.Select("2024-06-05")
	ok, err := s.Load(last, r, nil)
	require.NoError(t, err)
	assert.True(t, ok)
}
