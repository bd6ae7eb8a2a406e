package processor

import "context"

// Processor turns discovered media files into sibling transcript files.
type Processor interface {
	// Process handles one file in isolation. It never panics on per-file
	// failures; they are reported in the Result.
	Process(ctx context.Context, mediaPath string) Result
	// Run processes files sequentially and returns the run summary. It stops
	// early only when ctx is cancelled.
	Run(ctx context.Context, mediaPaths []string) Summary
}
