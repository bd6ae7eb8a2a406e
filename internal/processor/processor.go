package processor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/nguyentantai21042004/transcript-flow/internal/sentence"
	"github.com/nguyentantai21042004/transcript-flow/internal/transcriber"
)

const timestampFormat = "2006-01-02 15:04:05"

// Process transcribes one media file unless its transcript already exists.
func (p *implProcessor) Process(ctx context.Context, mediaPath string) Result {
	file := NewMediaFile(mediaPath)
	res := Result{
		File:           file,
		TranscriptPath: file.TranscriptPath(p.cfg.Output.Suffix),
	}

	// Step 1: Idempotence check
	done, err := p.alreadyTranscribed(res.TranscriptPath)
	if err != nil {
		return p.fail(ctx, res, newError(StageCheck, mediaPath, err))
	}
	if done {
		p.logger.Info(ctx, "Transcript already exists for: %s", res.TranscriptPath)
		res.Outcome = OutcomeSkipped
		return res
	}

	res.Started = p.now()
	p.logger.Info(ctx, "%s", mediaPath)
	p.logger.Info(ctx, "Start: %s", res.Started.Format(timestampFormat))

	// Step 2: Transcribe, reformat and persist
	var text string
	var terr *TranscriptError
	if p.cfg.Output.Atomic {
		text, terr = p.writeAtomic(ctx, file, res.TranscriptPath)
	} else {
		text, terr = p.writeInPlace(ctx, file, res.TranscriptPath)
	}
	if terr != nil {
		return p.fail(ctx, res, terr)
	}

	res.Finished = p.now()
	res.Outcome = OutcomeTranscribed
	p.logger.Info(ctx, "End: %s", res.Finished.Format(timestampFormat))

	// Step 3: Optional companion document
	p.exportDocx(ctx, file, res.TranscriptPath, text)

	return res
}

// Run processes every file one after the other. A failed file never stops
// the run; a cancelled context does.
func (p *implProcessor) Run(ctx context.Context, mediaPaths []string) Summary {
	summary := Summary{Total: len(mediaPaths)}

	p.logger.Info(ctx, "Found %d media files", len(mediaPaths))

	for i, path := range mediaPaths {
		if ctx.Err() != nil {
			p.logger.Warn(ctx, "Interrupted after %d of %d files", i, len(mediaPaths))
			break
		}
		summary.add(p.Process(ctx, path))
	}

	p.logger.Info(ctx, "Done: %d transcribed, %d skipped, %d failed",
		summary.Transcribed, summary.Skipped, summary.Failed)
	return summary
}

// transcribe calls the external engine and returns the reformatted text.
func (p *implProcessor) transcribe(ctx context.Context, file MediaFile) (string, *TranscriptError) {
	result, err := p.transcriber.Transcribe(ctx, file.Path, transcriber.Options{
		Language: p.cfg.Transcriber.Language,
		BeamSize: p.cfg.Transcriber.BeamSize,
	})
	if err != nil {
		return "", newError(StageTranscribe, file.Path, err)
	}
	return sentence.Reformat(result.Text()), nil
}

// alreadyTranscribed reports whether a transcript exists at path. Content is
// not inspected, except that atomic mode treats an empty file as missing.
func (p *implProcessor) alreadyTranscribed(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat transcript: %w", err)
	}
	if p.cfg.Output.Atomic && info.Mode().IsRegular() && info.Size() == 0 {
		return false, nil
	}
	return true, nil
}

func (p *implProcessor) fail(ctx context.Context, res Result, err *TranscriptError) Result {
	p.logger.Error(ctx, "%v", err.Err)
	res.Outcome = OutcomeFailed
	res.Err = err
	res.Finished = p.now()
	return res
}
