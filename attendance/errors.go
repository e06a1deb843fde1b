package attendance

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidStatus  = errors.New("invalid attendance status")
	ErrUnknownStudent = errors.New("student is not in the roster")
	ErrInvalidDate    = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidRange   = errors.New("start date is after end date")
	ErrNotLoaded      = errors.New("no attendance draft loaded")
)

// PartialSubmissionError reports the students whose rows the store rejected.
// Rows that were saved are not rolled back.
type PartialSubmissionError struct {
	Succeeded int
	Failed    []string
}

func (e *PartialSubmissionError) Error() string {
	return fmt.Sprintf("%d records failed to save: %s", len(e.Failed), strings.Join(e.Failed, ", "))
}
