package transcriber

import (
	"fmt"
	"time"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/pkg/executor"
)

// New builds the Transcriber selected by cfg.Transcriber.Backend.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) (Transcriber, error) {
	switch cfg.Transcriber.Backend {
	case config.BackendWhisper, "":
		for _, bin := range []string{cfg.FFmpeg.BinaryPath, cfg.Whisper.BinaryPath} {
			if _, err := exec.LookPath(bin); err != nil {
				return nil, fmt.Errorf("transcriber: %q not found, install it or set its binary_path: %w", bin, err)
			}
		}
		return &implWhisper{
			cfg:      cfg,
			executor: exec,
			logger:   log,
		}, nil
	case config.BackendGemini:
		if len(cfg.Gemini.APIKeys) == 0 {
			return nil, fmt.Errorf("transcriber: gemini backend needs at least one API key")
		}
		return &implGemini{
			apiKeys:      cfg.Gemini.APIKeys,
			model:        cfg.Gemini.Model,
			logger:       log,
			pollInterval: 2 * time.Second,
		}, nil
	default:
		return nil, fmt.Errorf("transcriber: unknown backend %q", cfg.Transcriber.Backend)
	}
}
