package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/processor"
	"github.com/nguyentantai21042004/transcript-flow/internal/scanner"
	"github.com/nguyentantai21042004/transcript-flow/internal/watcher"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Transcribe everything, then keep transcribing new files as they appear",
		Long: `Run a normal pass over the root directory, then watch it (and every
subdirectory) for newly created media files. New files go through the same
pipeline, one at a time. Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, true)
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logging.Level)

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	logBanner(ctx, log, cfg)

	sc := scanner.New(cfg.Scan.Extensions)
	res, err := sc.Scan(cfg.Paths.Root)
	if err != nil {
		return err
	}

	proc, err := buildProcessor(cfg, log)
	if err != nil {
		return err
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			log.Info(ctx, "Shutdown signal received")
			cancel()
		case <-ctx.Done():
		}
	}()

	proc.Run(ctx, res.Files)
	if ctx.Err() != nil {
		return nil
	}

	dirs := append([]string{cfg.Paths.Root}, res.Subdirectories...)
	w, err := watcher.New(dirs, sc.Match, processHandler(proc), log, cfg.Watch.SettleDelay)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	log.Info(ctx, "Press Ctrl+C to stop")

	if err := w.Start(ctx); err != nil && err != context.Canceled {
		return fmt.Errorf("watcher: %w", err)
	}

	log.Info(ctx, "Watcher stopped")
	return nil
}

// processHandler feeds watched files to the pipeline. Per-file failures are
// already logged by the processor, so they are not reported again.
func processHandler(proc processor.Processor) watcher.EventHandler {
	return func(ctx context.Context, path string) error {
		proc.Process(ctx, path)
		return nil
	}
}
