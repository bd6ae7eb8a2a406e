package transcriber

import (
	"context"
	"strings"
	"time"
)

// Transcriber converts one audio/video file into timed text segments.
type Transcriber interface {
	Transcribe(ctx context.Context, mediaPath string, opts Options) (*Result, error)
}

// Options configures a single transcription call.
type Options struct {
	Language string
	BeamSize int
}

// Segment is one timed chunk of transcribed text. Text keeps whatever
// leading/trailing whitespace the engine produced.
type Segment struct {
	Index int
	Start time.Duration
	End   time.Duration
	Text  string
}

// Result is the ordered output of a transcription.
type Result struct {
	Segments []Segment
	Language string
	Duration time.Duration
}

// Text concatenates segment texts in order with no separator.
func (r *Result) Text() string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	for _, s := range r.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}
