package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
)

// loadConfig merges config file, .env, environment and flags, in that order
// of increasing precedence. full=false validates only what scanning needs.
func loadConfig(cmd *cobra.Command, full bool) (*config.Config, error) {
	flags := cmd.Flags()

	path, _ := flags.GetString("config")
	if !flags.Changed("config") {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	envFile, _ := flags.GetString("env-file")

	cfg, err := config.Loader{EnvFiles: []string{envFile}}.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if flags.Changed("root") {
		cfg.Paths.Root, _ = flags.GetString("root")
	}
	if flags.Changed("ext") {
		cfg.Scan.Extensions, _ = flags.GetStringSlice("ext")
	}
	if flags.Changed("suffix") {
		cfg.Output.Suffix, _ = flags.GetString("suffix")
	}
	if flags.Changed("backend") {
		cfg.Transcriber.Backend, _ = flags.GetString("backend")
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("atomic") {
		cfg.Output.Atomic, _ = flags.GetBool("atomic")
	}
	if flags.Changed("docx") {
		cfg.Output.Docx, _ = flags.GetBool("docx")
	}

	validate := cfg.Validate
	if !full {
		validate = cfg.ValidateScan
	}
	if err := validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
