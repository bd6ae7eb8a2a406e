package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Loader reads configuration from an optional YAML file, optional .env files
// and the process environment, in increasing order of precedence. Tests can
// override Lookup to inject deterministic maps.
type Loader struct {
	Lookup   func(string) (string, bool)
	EnvFiles []string
}

// Load reads the YAML file at path using the process environment.
func Load(path string) (*Config, error) {
	return Loader{}.Load(path)
}

// Load returns the merged configuration. The result is not validated; call
// Validate after applying any command-line overrides.
func (l Loader) Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	lookup, err := l.lookup()
	if err != nil {
		return nil, err
	}

	overrideString(lookup, "AUDIO_VIDEO_PATH", &cfg.Paths.Root)
	overrideString(lookup, "TRANSCRIPT_SUFFIX", &cfg.Output.Suffix)
	overrideString(lookup, "TRANSCRIBE_TEMP_DIR", &cfg.Paths.Temp)
	overrideString(lookup, "TRANSCRIBER_BACKEND", &cfg.Transcriber.Backend)
	overrideString(lookup, "WHISPER_BINARY", &cfg.Whisper.BinaryPath)
	overrideString(lookup, "WHISPER_MODEL", &cfg.Whisper.ModelPath)
	overrideString(lookup, "FFMPEG_BINARY", &cfg.FFmpeg.BinaryPath)
	overrideString(lookup, "GEMINI_MODEL", &cfg.Gemini.Model)
	overrideString(lookup, "LOG_LEVEL", &cfg.Logging.Level)

	if raw, ok := lookup("INCLUDE_EXTENSIONS"); ok && strings.TrimSpace(raw) != "" {
		exts, err := ParseExtensions(raw)
		if err != nil {
			return nil, err
		}
		cfg.Scan.Extensions = exts
	}
	if raw, ok := lookup("GEMINI_API_KEYS"); ok && strings.TrimSpace(raw) != "" {
		cfg.Gemini.APIKeys = splitList(raw)
	}

	return cfg, nil
}

// lookup layers the .env files underneath the real environment, so an
// exported variable always wins over the file.
func (l Loader) lookup() (func(string) (string, bool), error) {
	base := l.Lookup
	if base == nil {
		base = os.LookupEnv
	}
	if len(l.EnvFiles) == 0 {
		return base, nil
	}

	dotenv := make(map[string]string)
	for _, file := range l.EnvFiles {
		values, err := godotenv.Read(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read env file %s: %w", file, err)
		}
		for k, v := range values {
			if _, seen := dotenv[k]; !seen {
				dotenv[k] = v
			}
		}
	}

	return func(key string) (string, bool) {
		if v, ok := base(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}, nil
}

// ParseExtensions accepts either a JSON/YAML list (`[".mp4", ".wav"]`) or a
// comma-separated string (`.mp4,.wav`).
func ParseExtensions(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "[") {
		var exts []string
		if err := yaml.Unmarshal([]byte(raw), &exts); err != nil {
			return nil, fmt.Errorf("parse INCLUDE_EXTENSIONS: %w", err)
		}
		return exts, nil
	}
	return splitList(raw), nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func overrideString(lookup func(string) (string, bool), key string, target *string) {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		*target = strings.TrimSpace(value)
	}
}
