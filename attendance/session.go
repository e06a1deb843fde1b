package attendance

import (
	"sync"

	"student_admin_backend/models"
)

// Ticket identifies one date selection. Data fetched under a ticket is only
// applied while that ticket is still the latest one.
type Ticket struct {
	gen  uint64
	date string
}

func (t Ticket) Date() string { return t.date }

// Session is the state container behind the marking page: the selected
// date, the roster it was built from and the current draft.
type Session struct {
	mu     sync.Mutex
	gen    uint64
	date   string
	roster []models.Student
	draft  Draft
	loaded bool
}

func NewSession() *Session {
	return &Session{}
}

// Select switches to date and drops the current draft. Fetches started for an
// earlier selection become stale.
func (s *Session) Select(date string) (Ticket, error) {
	if _, err := ParseDate(date); err != nil {
		return Ticket{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.date = date
	s.roster = nil
	s.draft = Draft{}
	s.loaded = false
	return Ticket{gen: s.gen, date: date}, nil
}

// Load installs a draft built from roster and existing. It reports false and
// changes nothing when t is stale, whatever the fetched data holds.
func (s *Session) Load(t Ticket, roster []models.Student, existing []Record) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.gen != s.gen {
		return false, nil
	}

	d, err := InitializeDraft(roster, existing)
	if err != nil {
		return false, err
	}
	s.roster = roster
	s.draft = d
	s.loaded = true
	return true, nil
}

// Current reports whether t is still the latest selection.
func (s *Session) Current(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t.gen == s.gen
}

func (s *Session) Date() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.date
}

func (s *Session) Roster() []models.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster
}

func (s *Session) Draft() (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return Draft{}, ErrNotLoaded
	}
	return s.draft, nil
}

// Update replaces the draft with fn's result. On error the draft is kept.
func (s *Session) Update(fn func(Draft) (Draft, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	next, err := fn(s.draft)
	if err != nil {
		return err
	}
	s.draft = next
	return nil
}

// Submission builds the bulk upsert payload for the selected date, together
// with the ticket of that selection.
func (s *Session) Submission() (Ticket, []Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return Ticket{}, nil, ErrNotLoaded
	}
	rows, err := s.draft.BuildSubmission(s.date)
	if err != nil {
		return Ticket{}, nil, err
	}
	return Ticket{gen: s.gen, date: s.date}, rows, nil
}
