package transcriber

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/pkg/executor"
)

type implWhisper struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
}

// whisperOutput mirrors the JSON written by whisper.cpp with -oj.
type whisperOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// Transcribe runs ffmpeg then whisper.cpp in a private temp directory that is
// removed afterwards.
func (w *implWhisper) Transcribe(ctx context.Context, mediaPath string, opts Options) (*Result, error) {
	if mediaPath == "" {
		return nil, fmt.Errorf("whisper: media path is required")
	}

	tempDir, err := os.MkdirTemp(w.cfg.Paths.Temp, "transcribe-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer w.cleanupTempDir(ctx, tempDir)

	audioPath, err := w.extractAudio(ctx, mediaPath, tempDir)
	if err != nil {
		return nil, err
	}

	outputPrefix := filepath.Join(tempDir, "transcript")
	args := w.buildArgs(audioPath, outputPrefix, opts)

	w.logger.Debug(ctx, "Running %s %s", w.cfg.Whisper.BinaryPath, strings.Join(args, " "))

	if _, err := w.executor.Execute(ctx, w.cfg.Whisper.BinaryPath, args...); err != nil {
		return nil, fmt.Errorf("whisper transcribe: %s: %w", w.describeFailure(err, opts), err)
	}

	data, err := os.ReadFile(outputPrefix + ".json")
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}

	return parseWhisperJSON(data)
}

// buildArgs assembles the whisper.cpp command line.
//
//	-m: model path
//	-f: input WAV
//	-l: pinned language (prevents drifting into translation)
//	-bs: beam search width
//	-oj -of: JSON output at prefix.json
//	-np: no progress prints
func (w *implWhisper) buildArgs(audioPath, outputPrefix string, opts Options) []string {
	args := []string{
		"-m", w.cfg.Whisper.ModelPath,
		"-f", audioPath,
		"-l", opts.Language,
		"-bs", strconv.Itoa(opts.BeamSize),
		"-oj",
		"-of", outputPrefix,
		"-np",
	}
	if w.cfg.Whisper.Threads > 0 {
		args = append(args, "-t", strconv.Itoa(w.cfg.Whisper.Threads))
	}
	return args
}

func parseWhisperJSON(data []byte) (*Result, error) {
	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	res := &Result{
		Language: out.Result.Language,
		Segments: make([]Segment, 0, len(out.Transcription)),
	}
	for i, seg := range out.Transcription {
		s := Segment{
			Index: i,
			Start: time.Duration(seg.Offsets.From) * time.Millisecond,
			End:   time.Duration(seg.Offsets.To) * time.Millisecond,
			Text:  seg.Text,
		}
		res.Segments = append(res.Segments, s)
		if s.End > res.Duration {
			res.Duration = s.End
		}
	}
	return res, nil
}

// describeFailure maps common whisper.cpp failures to an actionable message.
func (w *implWhisper) describeFailure(err error, opts Options) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "executable file not found"):
		return fmt.Sprintf("whisper binary %q not found, install whisper.cpp or set whisper.binary_path", w.cfg.Whisper.BinaryPath)
	case strings.Contains(msg, "failed to load model") || strings.Contains(msg, "failed to open"):
		return fmt.Sprintf("cannot load model %q", w.cfg.Whisper.ModelPath)
	case strings.Contains(msg, "unknown language"):
		return fmt.Sprintf("unsupported language %q", opts.Language)
	case strings.Contains(msg, "failed to read audio") || strings.Contains(msg, "failed to read WAV"):
		return "audio could not be decoded"
	default:
		return fmt.Sprintf("model %q failed", filepath.Base(w.cfg.Whisper.ModelPath))
	}
}

func (w *implWhisper) cleanupTempDir(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		w.logger.Warn(ctx, "Failed to cleanup temp dir %s: %v", dir, err)
	} else {
		w.logger.Debug(ctx, "Cleaned up temp dir: %s", dir)
	}
}
