package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultSuffix      = "_auto_transcript.txt"
	DefaultBackend     = BackendWhisper
	DefaultLanguage    = "en"
	DefaultBeamSize    = 2
	DefaultWhisperBin  = "whisper-cli"
	DefaultFFmpegBin   = "ffmpeg"
	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultSettleDelay = 500 * time.Millisecond
	DefaultLogLevel    = "info"

	BackendWhisper = "whisper"
	BackendGemini  = "gemini"

	extensionSeparator = "."
)

type Config struct {
	Paths       PathsConfig       `yaml:"paths"`
	Scan        ScanConfig        `yaml:"scan"`
	Output      OutputConfig      `yaml:"output"`
	Transcriber TranscriberConfig `yaml:"transcriber"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Watch       WatchConfig       `yaml:"watch"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type PathsConfig struct {
	Root string `yaml:"root"`
	Temp string `yaml:"temp"`
}

type ScanConfig struct {
	Extensions []string `yaml:"extensions"`
}

// OutputConfig controls where and how transcripts are written.
// WARNING: changing Suffix makes every previously transcribed file look new.
type OutputConfig struct {
	Suffix string `yaml:"suffix"`
	Atomic bool   `yaml:"atomic"`
	Docx   bool   `yaml:"docx"`
}

type TranscriberConfig struct {
	Backend  string `yaml:"backend"`
	Language string `yaml:"language"`
	BeamSize int    `yaml:"beam_size"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelPath  string `yaml:"model_path"`
	Threads    int    `yaml:"threads"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"api_keys"`
}

type WatchConfig struct {
	SettleDelay time.Duration `yaml:"settle_delay"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ValidateScan checks only what directory scanning needs: the root and the
// extension allow-list, which is normalised to lower case.
func (c *Config) ValidateScan() error {
	if c.Paths.Root == "" {
		return fmt.Errorf("paths.root is required (AUDIO_VIDEO_PATH)")
	}
	if len(c.Scan.Extensions) == 0 {
		return fmt.Errorf("scan.extensions is required (INCLUDE_EXTENSIONS)")
	}

	exts := make([]string, 0, len(c.Scan.Extensions))
	for _, ext := range c.Scan.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, extensionSeparator) || len(ext) < 2 {
			return fmt.Errorf("scan.extensions: %q must start with %q", ext, extensionSeparator)
		}
		exts = append(exts, ext)
	}
	c.Scan.Extensions = exts
	return nil
}

// Validate checks required fields and fills in defaults.
func (c *Config) Validate() error {
	if err := c.ValidateScan(); err != nil {
		return err
	}

	if c.Output.Suffix == "" {
		c.Output.Suffix = DefaultSuffix
	}
	if strings.ContainsAny(c.Output.Suffix, `/\`) {
		return fmt.Errorf("output.suffix must not contain path separators: %q", c.Output.Suffix)
	}

	if c.Transcriber.Backend == "" {
		c.Transcriber.Backend = DefaultBackend
	}
	if c.Transcriber.Language == "" {
		c.Transcriber.Language = DefaultLanguage
	}
	if c.Transcriber.BeamSize == 0 {
		c.Transcriber.BeamSize = DefaultBeamSize
	}
	if c.Transcriber.BeamSize < 1 {
		return fmt.Errorf("transcriber.beam_size must be >= 1, got %d", c.Transcriber.BeamSize)
	}

	switch c.Transcriber.Backend {
	case BackendWhisper:
		if c.Whisper.ModelPath == "" {
			return fmt.Errorf("whisper.model_path is required")
		}
		if c.Whisper.BinaryPath == "" {
			c.Whisper.BinaryPath = DefaultWhisperBin
		}
		if c.Whisper.Threads < 0 {
			return fmt.Errorf("whisper.threads must be >= 0, got %d", c.Whisper.Threads)
		}
		if c.FFmpeg.BinaryPath == "" {
			c.FFmpeg.BinaryPath = DefaultFFmpegBin
		}
	case BackendGemini:
		if len(c.Gemini.APIKeys) == 0 {
			return fmt.Errorf("gemini.api_keys is required for the gemini backend")
		}
		if c.Gemini.Model == "" {
			c.Gemini.Model = DefaultGeminiModel
		}
	default:
		return fmt.Errorf("transcriber.backend: unknown backend %q (supported: %s, %s)",
			c.Transcriber.Backend, BackendWhisper, BackendGemini)
	}

	if c.Watch.SettleDelay <= 0 {
		c.Watch.SettleDelay = DefaultSettleDelay
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}

	return nil
}
