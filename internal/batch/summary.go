package batch

import "time"

// Status is the outcome of processing one file.
type Status string

const (
	StatusUpdated   Status = "updated"
	StatusCreated   Status = "created"
	StatusUnchanged Status = "unchanged"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// File kinds reported in Result.Kind.
const (
	KindContainer = "container"
	KindVideo     = "video"
)

// Result describes what happened to one discovered file.
type Result struct {
	Path       string
	Kind       string
	Output     string
	Action     string
	Status     Status
	Diagnostic string
	Err        error
	Deleted    []string
}

// Summary aggregates a batch run.
type Summary struct {
	Succeeded int
	Unchanged int
	Skipped   int
	Failed    int
	Deleted   int
	Duration  time.Duration
	Results   []Result
}

func (s *Summary) add(res Result) {
	switch res.Status {
	case StatusUpdated, StatusCreated:
		s.Succeeded++
	case StatusUnchanged:
		s.Unchanged++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
	s.Deleted += len(res.Deleted)
	s.Results = append(s.Results, res)
}

// Processed is the number of files that reached a verdict.
func (s Summary) Processed() int {
	return s.Succeeded + s.Unchanged + s.Failed
}
