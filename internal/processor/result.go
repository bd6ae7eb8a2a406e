package processor

import (
	"fmt"
	"time"
)

type Outcome string

const (
	OutcomeTranscribed Outcome = "transcribed"
	OutcomeSkipped     Outcome = "skipped"
	OutcomeFailed      Outcome = "failed"
)

// Stage names the step a per-file failure happened in.
type Stage string

const (
	StageCheck      Stage = "check"
	StageCreate     Stage = "create"
	StageTranscribe Stage = "transcribe"
	StageWrite      Stage = "write"
)

// TranscriptError is a per-file failure. It never aborts a run.
type TranscriptError struct {
	Path  string
	Stage Stage
	Err   error
}

func (e *TranscriptError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *TranscriptError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(stage Stage, path string, err error) *TranscriptError {
	return &TranscriptError{Path: path, Stage: stage, Err: err}
}

// Result is the outcome of processing one file.
type Result struct {
	File           MediaFile
	TranscriptPath string
	Outcome        Outcome
	Err            *TranscriptError
	Started        time.Time
	Finished       time.Time
}

// Failure returns Err as an error, or nil when the file did not fail.
func (r Result) Failure() error {
	if r.Err == nil {
		return nil
	}
	return r.Err
}

// Summary aggregates the results of a run.
type Summary struct {
	Total       int
	Transcribed int
	Skipped     int
	Failed      int
	Results     []Result
}

func (s *Summary) add(r Result) {
	s.Results = append(s.Results, r)
	switch r.Outcome {
	case OutcomeTranscribed:
		s.Transcribed++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	}
}

// Processed is the number of files that were looked at before the run ended.
func (s Summary) Processed() int {
	return len(s.Results)
}
