package executor

import "context"

// Executor runs external commands such as ffmpeg and whisper.cpp.
type Executor interface {
	// Execute runs name with args and returns its stdout. On failure the
	// error carries the trimmed stderr.
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// LookPath reports where name resolves on PATH.
	LookPath(name string) (string, error)
}
