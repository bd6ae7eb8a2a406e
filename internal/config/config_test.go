package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid whisper config",
			config: Config{
				Paths:   PathsConfig{Root: "/media"},
				Scan:    ScanConfig{Extensions: []string{".mp4"}},
				Whisper: WhisperConfig{ModelPath: "models/ggml-small.en.bin"},
			},
			wantErr: false,
		},
		{
			name: "valid gemini config",
			config: Config{
				Paths:       PathsConfig{Root: "/media"},
				Scan:        ScanConfig{Extensions: []string{".wav"}},
				Transcriber: TranscriberConfig{Backend: BackendGemini},
				Gemini:      GeminiConfig{APIKeys: []string{"key"}},
			},
			wantErr: false,
		},
		{
			name: "missing root",
			config: Config{
				Scan:    ScanConfig{Extensions: []string{".mp4"}},
				Whisper: WhisperConfig{ModelPath: "m.bin"},
			},
			wantErr: true,
		},
		{
			name: "missing extensions",
			config: Config{
				Paths:   PathsConfig{Root: "/media"},
				Whisper: WhisperConfig{ModelPath: "m.bin"},
			},
			wantErr: true,
		},
		{
			name: "extension without dot",
			config: Config{
				Paths:   PathsConfig{Root: "/media"},
				Scan:    ScanConfig{Extensions: []string{"mp4"}},
				Whisper: WhisperConfig{ModelPath: "m.bin"},
			},
			wantErr: true,
		},
		{
			name: "missing whisper model",
			config: Config{
				Paths: PathsConfig{Root: "/media"},
				Scan:  ScanConfig{Extensions: []string{".mp4"}},
			},
			wantErr: true,
		},
		{
			name: "gemini without keys",
			config: Config{
				Paths:       PathsConfig{Root: "/media"},
				Scan:        ScanConfig{Extensions: []string{".mp4"}},
				Transcriber: TranscriberConfig{Backend: BackendGemini},
			},
			wantErr: true,
		},
		{
			name: "unknown backend",
			config: Config{
				Paths:       PathsConfig{Root: "/media"},
				Scan:        ScanConfig{Extensions: []string{".mp4"}},
				Transcriber: TranscriberConfig{Backend: "vosk"},
			},
			wantErr: true,
		},
		{
			name: "suffix with separator",
			config: Config{
				Paths:   PathsConfig{Root: "/media"},
				Scan:    ScanConfig{Extensions: []string{".mp4"}},
				Output:  OutputConfig{Suffix: "/out.txt"},
				Whisper: WhisperConfig{ModelPath: "m.bin"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{
		Paths:   PathsConfig{Root: "/media"},
		Scan:    ScanConfig{Extensions: []string{" .MP4", ".Wav"}},
		Whisper: WhisperConfig{ModelPath: "m.bin"},
	}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{".mp4", ".wav"}, cfg.Scan.Extensions)
	assert.Equal(t, DefaultSuffix, cfg.Output.Suffix)
	assert.Equal(t, BackendWhisper, cfg.Transcriber.Backend)
	assert.Equal(t, "en", cfg.Transcriber.Language)
	assert.Equal(t, 2, cfg.Transcriber.BeamSize)
	assert.Equal(t, DefaultWhisperBin, cfg.Whisper.BinaryPath)
	assert.Equal(t, DefaultFFmpegBin, cfg.FFmpeg.BinaryPath)
	assert.Equal(t, DefaultSettleDelay, cfg.Watch.SettleDelay)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Output.Atomic)
}

func TestLoad(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
paths:
  root: "/srv/media"

scan:
  extensions: [".mp4", ".mov"]

output:
  suffix: "_transcript.txt"
  docx: true

whisper:
  model_path: "models/ggml-small.en.bin"
  threads: 4

watch:
  settle_delay: 2s

logging:
  level: "debug"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	loader := Loader{Lookup: mapLookup(nil)}
	cfg, err := loader.Load(tmpfile.Name())
	require.NoError(t, err)

	assert.Equal(t, "/srv/media", cfg.Paths.Root)
	assert.Equal(t, []string{".mp4", ".mov"}, cfg.Scan.Extensions)
	assert.Equal(t, "_transcript.txt", cfg.Output.Suffix)
	assert.True(t, cfg.Output.Docx)
	assert.Equal(t, "models/ggml-small.en.bin", cfg.Whisper.ModelPath)
	assert.Equal(t, 4, cfg.Whisper.Threads)
	assert.Equal(t, 2*time.Second, cfg.Watch.SettleDelay)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	loader := Loader{Lookup: mapLookup(map[string]string{
		"AUDIO_VIDEO_PATH":    "/data/videos",
		"INCLUDE_EXTENSIONS":  `[".mp4", ".wav"]`,
		"TRANSCRIPT_SUFFIX":   "_t.txt",
		"TRANSCRIBER_BACKEND": "gemini",
		"GEMINI_API_KEYS":     "k1, k2,,",
		"LOG_LEVEL":           "  warn ",
	})}

	cfg, err := loader.Load("")
	require.NoError(t, err)

	assert.Equal(t, "/data/videos", cfg.Paths.Root)
	assert.Equal(t, []string{".mp4", ".wav"}, cfg.Scan.Extensions)
	assert.Equal(t, "_t.txt", cfg.Output.Suffix)
	assert.Equal(t, BackendGemini, cfg.Transcriber.Backend)
	assert.Equal(t, []string{"k1", "k2"}, cfg.Gemini.APIKeys)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"AUDIO_VIDEO_PATH=/from/dotenv\nINCLUDE_EXTENSIONS=[\".mp3\"]\nWHISPER_MODEL=base.bin\n",
	), 0644))

	loader := Loader{
		Lookup:   mapLookup(map[string]string{"AUDIO_VIDEO_PATH": "/from/env"}),
		EnvFiles: []string{filepath.Join(dir, "missing.env"), envFile},
	}

	cfg, err := loader.Load("")
	require.NoError(t, err)

	assert.Equal(t, "/from/env", cfg.Paths.Root, "process environment wins over .env")
	assert.Equal(t, []string{".mp3"}, cfg.Scan.Extensions)
	assert.Equal(t, "base.bin", cfg.Whisper.ModelPath)
}

func TestParseExtensions(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{"json list", `[".mp4", ".wav"]`, []string{".mp4", ".wav"}, false},
		{"comma separated", ".mp4, .mov", []string{".mp4", ".mov"}, false},
		{"single", ".m4a", []string{".m4a"}, false},
		{"broken list", `[".mp4"`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseExtensions(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func mapLookup(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestValidateScan(t *testing.T) {
	cfg := Config{
		Paths: PathsConfig{Root: "/media"},
		Scan:  ScanConfig{Extensions: []string{".MOV"}},
	}
	require.NoError(t, cfg.ValidateScan(), "scanning needs no transcriber settings")
	assert.Equal(t, []string{".mov"}, cfg.Scan.Extensions)
	assert.Empty(t, cfg.Transcriber.Backend, "ValidateScan applies no transcriber defaults")

	assert.Error(t, (&Config{Scan: ScanConfig{Extensions: []string{".mp4"}}}).ValidateScan())
}
