package transcriber

import (
	"context"
	"fmt"
	"path/filepath"
)

// extractAudio converts any audio/video input into 16kHz mono WAV, the only
// format whisper.cpp reads.
func (w *implWhisper) extractAudio(ctx context.Context, mediaPath, tempDir string) (string, error) {
	audioPath := filepath.Join(tempDir, "audio.wav")

	w.logger.Debug(ctx, "Extracting audio: %s", mediaPath)

	// -vn: drop video
	// -ar 16000 -ac 1: 16kHz mono
	// -c:a pcm_s16le: 16-bit PCM
	args := []string{
		"-nostdin",
		"-hide_banner",
		"-loglevel", "error",
		"-i", mediaPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := w.executor.Execute(ctx, w.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	return audioPath, nil
}
