package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/export"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/processor"
	"github.com/nguyentantai21042004/transcript-flow/internal/scanner"
	"github.com/nguyentantai21042004/transcript-flow/internal/transcriber"
	"github.com/nguyentantai21042004/transcript-flow/pkg/executor"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "transcribe",
		Short: "Transcribe every audio/video file under a directory",
		Long: `Recursively scan a directory for audio/video files and write a plain-text
transcript next to each one. Files that already have a transcript are skipped,
so the command can be re-run safely.

WARNING: changing the transcript suffix makes every file look untranscribed.`,
		SilenceUsage: true,
		RunE:         runTranscribe,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "config.yaml", "YAML config file (ignored if the default is absent)")
	flags.String("env-file", ".env", "dotenv file with AUDIO_VIDEO_PATH, INCLUDE_EXTENSIONS, ...")
	flags.StringP("root", "r", "", "Root directory to scan (AUDIO_VIDEO_PATH)")
	flags.StringSliceP("ext", "e", nil, "Extensions to include, e.g. --ext .mp4 --ext .wav (INCLUDE_EXTENSIONS)")
	flags.StringP("suffix", "s", "", "Transcript filename suffix (TRANSCRIPT_SUFFIX)")
	flags.StringP("backend", "b", "", "Transcriber backend: whisper or gemini")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.Bool("atomic", false, "Write transcripts via temp file + rename; empty transcripts are retried")
	flags.Bool("docx", false, "Also write a .docx copy of each new transcript")

	rootCmd.AddCommand(newScanCmd(), newWatchCmd(), newReformatCmd())
	return rootCmd
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, true)
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logBanner(ctx, log, cfg)

	res, err := scanner.New(cfg.Scan.Extensions).Scan(cfg.Paths.Root)
	if err != nil {
		return err
	}

	proc, err := buildProcessor(cfg, log)
	if err != nil {
		return err
	}

	proc.Run(ctx, res.Files)
	return nil
}

// newTranscriber is replaced in tests.
var newTranscriber = func(cfg *config.Config, log logger.Logger) (transcriber.Transcriber, error) {
	return transcriber.New(cfg, executor.New(), log)
}

// buildProcessor wires the transcriber backend and optional exporter.
func buildProcessor(cfg *config.Config, log logger.Logger) (processor.Processor, error) {
	tr, err := newTranscriber(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("create transcriber: %w", err)
	}

	var exp export.Exporter
	if cfg.Output.Docx {
		exp = export.New(log)
	}

	return processor.New(cfg, tr, exp, log), nil
}

func logBanner(ctx context.Context, log logger.Logger, cfg *config.Config) {
	log.Info(ctx, "========================================")
	log.Info(ctx, "Root: %s", cfg.Paths.Root)
	log.Info(ctx, "Extensions: %v", cfg.Scan.Extensions)
	log.Info(ctx, "Transcript suffix: %s", cfg.Output.Suffix)
	log.Info(ctx, "Backend: %s (language %s, beam %d)",
		cfg.Transcriber.Backend, cfg.Transcriber.Language, cfg.Transcriber.BeamSize)
	if cfg.Output.Atomic {
		log.Info(ctx, "Atomic writes: on")
	}
	if cfg.Output.Docx {
		log.Info(ctx, "Docx export: on")
	}
	log.Info(ctx, "========================================")
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
