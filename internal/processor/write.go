package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// transcriptPerm matches what os.Create yields under the common 022 umask.
const transcriptPerm = 0644

// writeInPlace creates the transcript before transcribing. If transcription
// fails the empty file stays behind and the next run skips it.
func (p *implProcessor) writeInPlace(ctx context.Context, file MediaFile, transcriptPath string) (string, *TranscriptError) {
	f, err := os.Create(transcriptPath)
	if err != nil {
		return "", newError(StageCreate, file.Path, fmt.Errorf("create transcript: %w", err))
	}
	defer f.Close()

	text, terr := p.transcribe(ctx, file)
	if terr != nil {
		return "", terr
	}

	if _, err := f.WriteString(text); err != nil {
		return "", newError(StageWrite, file.Path, fmt.Errorf("write transcript: %w", err))
	}
	if err := f.Close(); err != nil {
		return "", newError(StageWrite, file.Path, fmt.Errorf("close transcript: %w", err))
	}
	return text, nil
}

// writeAtomic transcribes first, writes a hidden temp file next to the
// target and renames it into place. Nothing is left at transcriptPath on
// failure.
func (p *implProcessor) writeAtomic(ctx context.Context, file MediaFile, transcriptPath string) (string, *TranscriptError) {
	text, terr := p.transcribe(ctx, file)
	if terr != nil {
		return "", terr
	}

	tmp, err := os.CreateTemp(filepath.Dir(transcriptPath), "."+filepath.Base(transcriptPath)+".*.tmp")
	if err != nil {
		return "", newError(StageCreate, file.Path, fmt.Errorf("create temp transcript: %w", err))
	}
	tmpName := tmp.Name()

	werr := tmp.Chmod(transcriptPerm)
	if werr == nil {
		_, werr = tmp.WriteString(text)
	}
	cerr := tmp.Close()
	if werr == nil {
		werr = cerr
	}
	if werr == nil {
		werr = os.Rename(tmpName, transcriptPath)
	}
	if werr != nil {
		p.cleanupTempFile(ctx, tmpName)
		return "", newError(StageWrite, file.Path, fmt.Errorf("write transcript: %w", werr))
	}
	return text, nil
}

// exportDocx renders the companion .docx. Failures are warnings only: the
// text transcript is already in place.
func (p *implProcessor) exportDocx(ctx context.Context, file MediaFile, transcriptPath, text string) {
	if !p.cfg.Output.Docx || p.exporter == nil {
		return
	}

	docxPath := strings.TrimSuffix(transcriptPath, filepath.Ext(transcriptPath)) + ".docx"
	if err := p.exporter.WriteDocx(ctx, file.BaseNoExt(), text, docxPath); err != nil {
		p.logger.Warn(ctx, "Failed to write docx for %s: %v", file.Path, err)
		return
	}
	p.logger.Info(ctx, "Docx: %s", docxPath)
}

// cleanupTempFile removes a temporary file, logs warning if fails
func (p *implProcessor) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp file: %s", filePath)
	}
}
